// Command exciter plays an audio file through a real-time spectral
// harmonic exciter.
//
// Usage:
//
//	exciter [flags] <audio-file>
//
// The file (WAV, Ogg Opus, MP3 or FLAC) is decoded into memory and looped
// forever. Keys adjust the 2nd, 3rd and 5th order harmonic gains and the
// peak sensitivity while audio plays; q quits.
//
// Examples:
//
//	exciter song.wav
//	exciter -variant adaptive -visual song.flac
//	exciter -buffer 65536 -backend oto song.mp3
//	exciter -backend wav -out excited.wav -seconds 30 song.opus
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/cwbudde/algo-exciter/dsp/core"
	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
	"github.com/cwbudde/algo-exciter/dsp/peaks"
	"github.com/cwbudde/algo-exciter/dsp/transform"
	"github.com/cwbudde/algo-exciter/dsp/window"
	"github.com/cwbudde/algo-exciter/internal/audio/sink"
	"github.com/cwbudde/algo-exciter/internal/audio/source"
	"github.com/cwbudde/algo-exciter/internal/control"
	"github.com/cwbudde/algo-exciter/internal/cpu"
	"github.com/cwbudde/algo-exciter/internal/display"
	"github.com/cwbudde/algo-exciter/internal/engine"
)

const refreshInterval = 100 * time.Millisecond

var errUsage = errors.New("usage")

type options struct {
	variant  string
	backend  string
	fft      string
	buffer   int
	window   string
	out      string
	seconds  float64
	visual   bool
	logLevel string
	path     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("exciter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.variant, "variant", string(control.VariantFixed), "peak detection: fixed or adaptive")
	fs.StringVar(&opts.backend, "backend", string(sink.KindPortAudio), "output: portaudio, oto or wav")
	fs.StringVar(&opts.fft, "fft", string(transform.BackendAlgoFFT), "FFT backend: algofft or gonum")
	fs.IntVar(&opts.buffer, "buffer", core.DefaultGeometry().BufferSize, "driver buffer in frames; the FFT frame is a quarter of it")
	fs.StringVar(&opts.window, "window", window.TypeHann.String(), "analysis window")
	fs.StringVar(&opts.out, "out", "", "output file for -backend wav")
	fs.Float64Var(&opts.seconds, "seconds", 10, "render length for -backend wav")
	fs.BoolVar(&opts.visual, "visual", false, "show the live spectrum and levels")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: exciter [flags] <audio-file>\n\n")
		fmt.Fprintf(stderr, "Plays an audio file in a loop with live harmonic excitation.\n")
		fmt.Fprintf(stderr, "Supported formats: wav, opus/ogg, mp3, flac.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  exciter song.wav\n")
		fmt.Fprintf(stderr, "  exciter -variant adaptive -visual song.flac\n")
		fmt.Fprintf(stderr, "  exciter -backend wav -out excited.wav -seconds 30 song.opus\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errUsage
	}

	opts.path = fs.Arg(0)

	return opts, nil
}

func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	return log, nil
}

// app holds everything built from the options before audio starts.
type app struct {
	log    *logrus.Logger
	params *exciter.Params
	keys   control.KeyMap
	engine *engine.Engine
	proc   *exciter.Resynthesizer
	sink   sink.Sink
}

func setup(opts options, log *logrus.Logger) (*app, error) {
	variant := control.Variant(strings.ToLower(opts.variant))

	keys, err := control.KeyMapFor(variant)
	if err != nil {
		return nil, err
	}

	factory, err := peaks.FactoryFor(peaks.Kind(variant))
	if err != nil {
		return nil, err
	}

	wt, err := window.ParseType(opts.window)
	if err != nil {
		return nil, err
	}

	out, err := sink.New(sink.Config{
		Kind:    sink.Kind(strings.ToLower(opts.backend)),
		Path:    opts.out,
		Seconds: opts.seconds,
	}, log)
	if err != nil {
		return nil, err
	}

	clip, err := source.Open(opts.path)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":        opts.path,
		"format":      clip.Format,
		"frames":      clip.Frames(),
		"channels":    clip.Channels,
		"sample_rate": clip.SampleRate,
		"seconds":     fmt.Sprintf("%.2f", clip.Seconds()),
	}).Info("audio file loaded")

	if clip.Channels > 1 {
		log.WithField("channels", clip.Channels).Info("using the first channel")
	}

	g, err := core.NewGeometry(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBufferSize(opts.buffer),
	)
	if err != nil {
		return nil, err
	}

	tr, err := transform.New(transform.Backend(strings.ToLower(opts.fft)), g.FrameSize)
	if err != nil {
		return nil, err
	}

	params := exciter.NewParams(variant.DefaultSensitivity())

	eng, proc, err := engine.NewFromClip(clip, g, params, log,
		exciter.WithTransform(tr),
		exciter.WithDetectors(factory),
		exciter.WithWindow(wt),
	)
	if err != nil {
		return nil, err
	}

	features := cpu.DetectFeatures()

	log.WithFields(logrus.Fields{
		"variant": variant,
		"fft":     opts.fft,
		"window":  wt,
		"buffer":  g.BufferSize,
		"frame":   g.FrameSize,
		"hop":     g.HopSize,
		"arch":    features.Architecture,
		"simd":    features.List(),
	}).Debug("processing configured")

	return &app{
		log:    log,
		params: params,
		keys:   keys,
		engine: eng,
		proc:   proc,
		sink:   out,
	}, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	log, err := newLogger(opts.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	a, err := setup(opts, log)
	if err != nil {
		log.WithError(err).Error("setup failed")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if sink.Kind(strings.ToLower(opts.backend)) != sink.KindWAV {
		a.startOperator(ctx, cancel, stdout, opts.visual)
	}

	go a.engine.Watch(ctx, time.Second)

	err = a.sink.Run(ctx, a.engine)
	a.engine.ReportFailure()
	if err != nil {
		log.WithError(err).Error("audio output failed")
		return 1
	}

	cancel()

	log.WithFields(logrus.Fields{
		"blocks":   a.engine.Blocks(),
		"failures": a.engine.Failures(),
	}).Info("stopped")

	return 0
}

// startOperator starts key polling and the terminal view. Keyboard errors
// are logged and playback continues until a signal arrives.
func (a *app) startOperator(ctx context.Context, cancel context.CancelFunc, stdout io.Writer, visual bool) {
	fd := -1
	if f, ok := stdout.(*os.File); ok {
		fd = int(f.Fd())
	}

	view := display.New(stdout, fd, a.keys, a.params, a.proc.Snapshot(), visual)
	g := a.proc.Geometry()
	view.SetBinWidth(g.SampleRate / float64(g.FrameSize))

	ctrl := control.NewController(a.keys, a.params, a.log)
	if !visual {
		ctrl.OnChange = func(control.Result) {
			if err := view.Draw(); err != nil {
				a.log.WithError(err).Warn("display failed")
			}
		}
	}

	if err := view.Draw(); err != nil {
		a.log.WithError(err).Warn("display failed")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		a.log.Warn("stdin is not a terminal, keyboard control disabled")
	} else {
		go func() {
			if err := ctrl.Run(ctx); err != nil {
				a.log.WithError(err).Warn("keyboard control stopped")
				return
			}
			cancel()
		}()
	}

	if visual {
		go func() {
			if err := view.Run(ctx, refreshInterval); err != nil {
				a.log.WithError(err).Warn("display stopped")
			}
		}()
	}
}
