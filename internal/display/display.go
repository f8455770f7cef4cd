// Package display renders the operator status panel and a text spectrum
// view to the terminal.
package display

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
	"github.com/cwbudde/algo-exciter/internal/control"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	clearScreen   = "\033[2J\033[H"
	rule          = "----------------------------------------------------"
)

// Display draws to a terminal. Draw and Run must not be called
// concurrently.
type Display struct {
	w      io.Writer
	fd     int
	keys   control.KeyMap
	params *exciter.Params
	snap   *exciter.Snapshot
	visual bool
	binHz  float64

	frame exciter.Frame
}

// New returns a Display writing to w. fd is the terminal used for size
// queries; a negative fd uses the default size. snap may be nil, which
// disables the spectrum view.
func New(w io.Writer, fd int, keys control.KeyMap, params *exciter.Params,
	snap *exciter.Snapshot, visual bool,
) *Display {
	return &Display{
		w:      w,
		fd:     fd,
		keys:   keys,
		params: params,
		snap:   snap,
		visual: visual && snap != nil,
	}
}

// SetBinWidth enables the spectral centroid readout. binHz is the spacing
// of the published spectrum bins, sample rate over frame size.
func (d *Display) SetBinWidth(binHz float64) { d.binHz = binHz }

// Size returns the terminal size, or 80x24 when fd is not a terminal.
func (d *Display) Size() (width, height int) {
	if d.fd < 0 || !term.IsTerminal(d.fd) {
		return defaultWidth, defaultHeight
	}

	w, h, err := term.GetSize(d.fd)
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}

	return w, h
}

// Draw clears the screen and draws the status panel, followed by the
// spectrum and level view when enabled.
func (d *Display) Draw() error {
	var b strings.Builder

	b.WriteString(clearScreen)
	b.WriteString(Status(d.params.Values(), d.keys))

	if d.visual {
		width, height := d.Size()

		d.snap.Read(&d.frame)

		rows := max(4, height-strings.Count(b.String(), "\n")-4)
		for _, line := range Spectrum(d.frame.Spectrum, d.frame.Curve, width, rows) {
			b.WriteString(line)
			b.WriteByte('\n')
		}

		in := Level(d.frame.Input)
		out := Level(d.frame.Output)
		fmt.Fprintf(&b, "in  rms %6.1f dB peak %6.1f dB crest %5.2f\n",
			in.RMSdB(), in.PeakdB(), in.Crest())
		fmt.Fprintf(&b, "out rms %6.1f dB peak %6.1f dB crest %5.2f",
			out.RMSdB(), out.PeakdB(), out.Crest())
		if d.binHz > 0 {
			fmt.Fprintf(&b, "  centroid %7.1f Hz", Centroid(d.frame.Spectrum, d.binHz))
		}
		fmt.Fprintf(&b, "  blocks %d skipped %d\n", d.frame.Blocks, d.frame.Skipped)
	}

	_, err := io.WriteString(d.w, strings.ReplaceAll(b.String(), "\n", "\r\n"))

	return err
}

// Run redraws every interval until ctx is cancelled.
func (d *Display) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Draw(); err != nil {
				return err
			}
		}
	}
}

// Status formats the current values and the key help.
func Status(v exciter.Values, keys control.KeyMap) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "2nd Order: %1.6f 3rd Order: %1.6f\n", v.Gain2, v.Gain3)
	fmt.Fprintf(&b, "5th Order: %1.6f Sensitivity: %1.6f", v.Gain5, v.Sensitivity)
	if !v.Enabled {
		b.WriteString("  [injection off]")
	}
	b.WriteString("\n")

	for _, line := range helpLines(keys) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(rule + "\n")

	return b.String()
}

// helpLines groups adjust/adjust/reset triples on one line, as in
// "[a/s/z] 2nd", and lists the remaining keys individually.
func helpLines(keys control.KeyMap) []string {
	type group struct {
		dec, inc, reset rune
	}

	groups := map[exciter.Param]*group{}
	var order []exciter.Param
	var rest []control.Binding

	for _, b := range keys.Bindings() {
		if b.Action != control.ActionAdjust && b.Action != control.ActionReset {
			rest = append(rest, b)
			continue
		}

		g, ok := groups[b.Param]
		if !ok {
			g = &group{}
			groups[b.Param] = g
			order = append(order, b.Param)
		}

		switch {
		case b.Action == control.ActionReset:
			g.reset = b.Key
		case b.Delta < 0:
			g.dec = b.Key
		default:
			g.inc = b.Key
		}
	}

	var lines []string

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, p := range order {
		g := groups[p]
		ks := []string{string(g.dec), string(g.inc)}
		verbs := "decrease/increase"
		if g.reset != 0 {
			ks = append(ks, string(g.reset))
			verbs += "/reset"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s %s", strings.Join(ks, "/"), verbs, p))
	}

	for _, b := range rest {
		lines = append(lines, fmt.Sprintf("[%c] %s", b.Key, b.Help))
	}

	return lines
}
