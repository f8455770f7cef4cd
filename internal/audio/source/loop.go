// Package source decodes audio files into memory and serves them as an
// endlessly looping mono sample stream.
package source

import "errors"

// ErrEmptySource is returned when a clip holds no samples.
var ErrEmptySource = errors.New("source: no samples")

// Loop serves a decoded clip forever, wrapping to the first sample when the
// end is reached. It never performs I/O.
//
// A Loop is not safe for concurrent use.
type Loop struct {
	samples []float64
	pos     int
}

// NewLoop wraps samples. The slice is not copied.
func NewLoop(samples []float64) (*Loop, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySource
	}
	return &Loop{samples: samples}, nil
}

// Len returns the clip length in samples.
func (l *Loop) Len() int { return len(l.samples) }

// Pos returns the index of the next sample to be read.
func (l *Loop) Pos() int { return l.pos }

// Read fills dst with the next len(dst) samples, wrapping as often as
// needed.
func (l *Loop) Read(dst []float64) {
	for len(dst) > 0 {
		n := copy(dst, l.samples[l.pos:])
		dst = dst[n:]
		l.pos += n
		if l.pos == len(l.samples) {
			l.pos = 0
		}
	}
}

// Rewind moves the read position back n samples, wrapping below zero.
func (l *Loop) Rewind(n int) {
	size := len(l.samples)
	l.pos = ((l.pos-n)%size + size) % size
}

// Fill reads len(dst) samples and rewinds overlap samples, so the next
// Fill starts overlap samples before the end of this one.
func (l *Loop) Fill(dst []float64, overlap int) {
	l.Read(dst)
	l.Rewind(overlap)
}
