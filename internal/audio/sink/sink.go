// Package sink plays or records rendered audio.
//
// A Sink pulls mono float32 buffers from a Renderer until its context is
// cancelled (device sinks) or until the requested length is written (file
// sinks).
package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Renderer produces mono samples on demand. Render is called from the
// sink's audio goroutine only.
type Renderer interface {
	Render(dst []float32)
	SampleRate() float64
	BufferSize() int
}

// Sink delivers rendered audio somewhere.
type Sink interface {
	Run(ctx context.Context, r Renderer) error
}

// Kind names a Sink implementation.
type Kind string

const (
	KindPortAudio Kind = "portaudio"
	KindOto       Kind = "oto"
	KindWAV       Kind = "wav"
)

// Config selects and configures a sink.
type Config struct {
	Kind    Kind
	Path    string  // output file for KindWAV
	Seconds float64 // render length for KindWAV
}

// New returns the sink described by cfg.
func New(cfg Config, log logrus.FieldLogger) (Sink, error) {
	if log == nil {
		log = discardLogger()
	}

	switch cfg.Kind {
	case KindPortAudio, "":
		return &PortAudio{log: log}, nil
	case KindOto:
		return &Oto{log: log}, nil
	case KindWAV:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sink: wav output requires a path")
		}
		if cfg.Seconds <= 0 {
			return nil, fmt.Errorf("sink: wav output requires seconds > 0: %g", cfg.Seconds)
		}
		return &WAV{Path: cfg.Path, Seconds: cfg.Seconds, log: log}, nil
	default:
		return nil, fmt.Errorf("sink: unknown backend %q", cfg.Kind)
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
