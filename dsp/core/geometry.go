package core

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when a Geometry violates the STFT framing rules.
var ErrInvalidGeometry = errors.New("invalid frame geometry")

const minFrameSize = 16

// Geometry defines the fixed framing used by the streaming resynthesis path.
//
// BufferSize is the number of frames the audio driver requests per callback.
// FrameSize is the analysis window length N and HopSize is always N/2.
type Geometry struct {
	SampleRate float64
	BufferSize int
	FrameSize  int
	HopSize    int
}

// GeometryOption mutates a Geometry.
type GeometryOption func(*Geometry)

// DefaultGeometry returns 44.1 kHz, 4096-frame buffers and a 1024-sample
// window with 50% overlap.
func DefaultGeometry() Geometry {
	return Geometry{
		SampleRate: 44100,
		BufferSize: 4096,
		FrameSize:  1024,
		HopSize:    512,
	}
}

// WithSampleRate sets the stream sample rate.
func WithSampleRate(sampleRate float64) GeometryOption {
	return func(g *Geometry) {
		if sampleRate > 0 {
			g.SampleRate = sampleRate
		}
	}
}

// WithBufferSize sets the driver buffer size. The frame size follows as
// BufferSize/4 unless WithFrameSize is applied afterwards.
func WithBufferSize(size int) GeometryOption {
	return func(g *Geometry) {
		if size > 0 {
			g.BufferSize = size
			g.FrameSize = size / 4
			g.HopSize = g.FrameSize / 2
		}
	}
}

// WithFrameSize sets the analysis window length. The hop follows as N/2.
func WithFrameSize(size int) GeometryOption {
	return func(g *Geometry) {
		if size > 0 {
			g.FrameSize = size
			g.HopSize = size / 2
		}
	}
}

// NewGeometry applies options to the default geometry and validates the result.
func NewGeometry(opts ...GeometryOption) (Geometry, error) {
	g := DefaultGeometry()
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}

	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}

	return g, nil
}

// Bins returns the number of analyzed spectrum bins (N/2).
func (g Geometry) Bins() int { return g.FrameSize / 2 }

// SearchBins returns the length of the harmonic search region (N/4).
func (g Geometry) SearchBins() int { return g.FrameSize / 4 }

// HopsPerBuffer returns how many hops one driver buffer spans.
func (g Geometry) HopsPerBuffer() int { return g.BufferSize / g.HopSize }

// Validate checks the framing invariants.
func (g Geometry) Validate() error {
	if g.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidGeometry, g.SampleRate)
	}

	if g.FrameSize < minFrameSize || !IsPowerOf2(g.FrameSize) {
		return fmt.Errorf("%w: frame size must be a power of two >= %d: %d",
			ErrInvalidGeometry, minFrameSize, g.FrameSize)
	}

	if g.HopSize != g.FrameSize/2 {
		return fmt.Errorf("%w: hop size must be frame size / 2: %d", ErrInvalidGeometry, g.HopSize)
	}

	if g.BufferSize <= 0 || g.BufferSize%g.HopSize != 0 {
		return fmt.Errorf("%w: buffer size must be a positive multiple of %d: %d",
			ErrInvalidGeometry, g.HopSize, g.BufferSize)
	}

	return nil
}
