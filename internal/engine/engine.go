// Package engine connects a looping source to the exciter and renders
// float32 device buffers.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-exciter/dsp/core"
	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
	"github.com/cwbudde/algo-exciter/internal/audio/source"
)

// Processor renders one block of output from block+hop input samples.
type Processor interface {
	Geometry() core.Geometry
	ProcessBlock(dst, src []float64) error
}

// Engine renders audio on the driver goroutine. Render may be called with
// any length; whole driver buffers are processed and the remainder is kept
// for the next call.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	loop *source.Loop
	proc Processor
	log  logrus.FieldLogger

	in      []float64
	out     []float64
	pending []float32
	offset  int

	blocks   atomic.Uint64
	failures atomic.Uint64
	firstErr atomic.Pointer[error]
	reported atomic.Bool
}

// New returns an Engine. A nil logger discards log output.
func New(loop *source.Loop, proc Processor, log logrus.FieldLogger) (*Engine, error) {
	if loop == nil || proc == nil {
		return nil, errors.New("engine: source and processor are required")
	}

	if log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		log = discard
	}

	g := proc.Geometry()

	return &Engine{
		loop:    loop,
		proc:    proc,
		log:     log,
		in:      make([]float64, g.BufferSize+g.HopSize),
		out:     make([]float64, g.BufferSize),
		pending: make([]float32, g.BufferSize),
		offset:  g.BufferSize,
	}, nil
}

// NewFromClip builds the Resynthesizer for clip and wraps it in an Engine.
func NewFromClip(clip *source.Clip, g core.Geometry, params *exciter.Params,
	log logrus.FieldLogger, opts ...exciter.Option,
) (*Engine, *exciter.Resynthesizer, error) {
	loop, err := source.NewLoop(clip.Samples)
	if err != nil {
		return nil, nil, err
	}

	proc, err := exciter.NewResynthesizer(g, params, opts...)
	if err != nil {
		return nil, nil, err
	}

	e, err := New(loop, proc, log)
	if err != nil {
		return nil, nil, err
	}

	return e, proc, nil
}

// SampleRate returns the output sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.proc.Geometry().SampleRate }

// BufferSize returns the driver buffer size in frames.
func (e *Engine) BufferSize() int { return e.proc.Geometry().BufferSize }

// Blocks returns the number of driver buffers processed.
func (e *Engine) Blocks() uint64 { return e.blocks.Load() }

// Failures returns the number of buffers replaced by silence after a
// processing error.
func (e *Engine) Failures() uint64 { return e.failures.Load() }

// Render fills dst with mono output samples.
func (e *Engine) Render(dst []float32) {
	for len(dst) > 0 {
		if e.offset == len(e.pending) {
			e.renderBlock()
		}

		n := copy(dst, e.pending[e.offset:])
		e.offset += n
		dst = dst[n:]
	}
}

func (e *Engine) renderBlock() {
	hop := e.proc.Geometry().HopSize

	e.loop.Fill(e.in, hop)

	if err := e.proc.ProcessBlock(e.out, e.in); err != nil {
		// The driver goroutine never logs; ReportFailure does that later.
		if e.failures.Add(1) == 1 {
			e.firstErr.Store(&err)
		}
		core.Zero(e.out)
	}

	core.ToFloat32(e.pending, e.out)
	e.offset = 0
	e.blocks.Add(1)
}

// Err returns the first processing failure, or nil.
func (e *Engine) Err() error {
	if p := e.firstErr.Load(); p != nil {
		return *p
	}
	return nil
}

// ReportFailure logs the first processing failure once and reports whether
// it did. Call it from outside the driver goroutine.
func (e *Engine) ReportFailure() bool {
	err := e.Err()
	if err == nil || !e.reported.CompareAndSwap(false, true) {
		return false
	}

	e.log.WithError(err).WithField("failures", e.failures.Load()).
		Error("processing failed, emitting silence")

	return true
}

// Watch calls ReportFailure every interval until ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.ReportFailure()
		}
	}
}
