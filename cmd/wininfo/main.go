// Command wininfo prints the overlap-add behaviour of the analysis windows
// the exciter can use.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints info for all known window types. A window
// whose overlap sum is flat at 1.0 reconstructs the input exactly when all
// harmonic gains are zero.
//
// Examples:
//
//	wininfo hann
//	wininfo -size 16384 hann hamming
//	wininfo -symmetric hann
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-exciter/dsp/window"
)

func main() {
	size := flag.Int("size", 1024, "window length in samples")
	list := flag.Bool("list", false, "list available window names")
	symmetric := flag.Bool("symmetric", false, "use symmetric form instead of periodic (FFT) form")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the 50%% overlap-add sum of analysis windows.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all windows.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wininfo hann\n")
		fmt.Fprintf(os.Stderr, "  wininfo -size 16384 hann hamming\n")
		fmt.Fprintf(os.Stderr, "  wininfo -list\n")
	}
	flag.Parse()

	if *list {
		for _, t := range window.Types() {
			fmt.Println(t)
		}
		return
	}

	if *size < 2 || *size%2 != 0 {
		fmt.Fprintf(os.Stderr, "error: size must be even and >= 2: %d\n", *size)
		os.Exit(2)
	}

	types, err := resolveTypes(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v (use -list to see available)\n", err)
		os.Exit(1)
	}

	var opts []window.Option
	if !*symmetric {
		opts = append(opts, window.WithPeriodic())
	}

	if err := printOverlap(os.Stdout, types, *size, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolveTypes(names []string) ([]window.Type, error) {
	if len(names) == 0 {
		return window.Types(), nil
	}

	types := make([]window.Type, 0, len(names))
	for _, name := range names {
		t, err := window.ParseType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, nil
}

type overlapRow struct {
	typ    window.Type
	size   int
	hop    int
	gain   float64
	lo, hi float64
}

func (r overlapRow) rippledB() float64 {
	if r.lo <= 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(r.hi/r.lo)
}

func analyze(t window.Type, size int, opts []window.Option) (overlapRow, error) {
	coeffs := window.Generate(t, size, opts...)

	lo, hi, err := window.OverlapSum(coeffs, size/2)
	if err != nil {
		return overlapRow{}, err
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return overlapRow{
		typ:  t,
		size: size,
		hop:  size / 2,
		gain: sum / float64(size),
		lo:   lo,
		hi:   hi,
	}, nil
}

func printOverlap(w io.Writer, types []window.Type, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tHop\tCoherent Gain\tOLA Min\tOLA Max\tRipple [dB]\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t---\t-------------\t-------\t-------\t-----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, t := range types {
		row, err := analyze(t, size, opts)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.6f\t%.6f\t%.4f\n",
			row.typ, row.size, row.hop, row.gain, row.lo, row.hi, row.rippledB(),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	return tw.Flush()
}
