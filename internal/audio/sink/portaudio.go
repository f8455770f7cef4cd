package sink

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// stream is the part of *portaudio.Stream the sink drives.
type stream interface {
	Start() error
	Stop() error
	Close() error
}

// driver opens callback streams. A PortAudio with a zero driver uses the
// PortAudio library.
type driver struct {
	initialize func() error
	terminate  func() error
	open       func(rate float64, frames int, cb func([]float32)) (stream, error)
}

func portaudioDriver() driver {
	return driver{
		initialize: portaudio.Initialize,
		terminate:  portaudio.Terminate,
		open: func(rate float64, frames int, cb func([]float32)) (stream, error) {
			return portaudio.OpenDefaultStream(0, 1, rate, frames, cb)
		},
	}
}

// PortAudio plays through the default output device with a callback
// stream. The callback runs on PortAudio's audio thread.
type PortAudio struct {
	log logrus.FieldLogger
	drv driver
}

// Run opens the device and plays until ctx is cancelled. Initialization
// and device open failures are returned. A stream that fails to start is
// logged and Run still waits for ctx, so the operator can quit normally.
func (p *PortAudio) Run(ctx context.Context, r Renderer) error {
	drv := p.drv
	if drv.open == nil {
		drv = portaudioDriver()
	}

	if err := drv.initialize(); err != nil {
		return fmt.Errorf("sink: portaudio initialize: %w", err)
	}
	defer func() {
		if err := drv.terminate(); err != nil {
			p.log.WithError(err).Warn("portaudio terminate failed")
		}
	}()

	s, err := drv.open(r.SampleRate(), r.BufferSize(), func(out []float32) {
		r.Render(out)
	})
	if err != nil {
		return fmt.Errorf("sink: open default stream: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			p.log.WithError(err).Warn("stream close failed")
		}
	}()

	fields := logrus.Fields{
		"backend":     KindPortAudio,
		"sample_rate": r.SampleRate(),
		"buffer":      r.BufferSize(),
	}

	if err := s.Start(); err != nil {
		p.log.WithFields(fields).WithError(err).Error("stream start failed, no audio will play")
		<-ctx.Done()
		return nil
	}

	p.log.WithFields(fields).Info("stream started")

	<-ctx.Done()

	if err := s.Stop(); err != nil {
		p.log.WithError(err).Warn("stream stop failed")
	}

	return nil
}
