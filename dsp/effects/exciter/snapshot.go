package exciter

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-exciter/dsp/buffer"
)

// DefaultHistory is the number of output buffers kept for scrolling views.
const DefaultHistory = 60

// Snapshot holds the most recent visualization state.
//
// The audio path publishes with TryLock and skips the update if a reader
// holds the lock, so readers can never stall audio.
type Snapshot struct {
	mu sync.Mutex

	input    []float64
	output   []float64
	spectrum []float64
	curve    []float64
	hasCurve bool
	history  *buffer.Ring
	blocks   uint64
	skipped  atomic.Uint64
}

// Frame is a reader-owned copy of a Snapshot.
type Frame struct {
	Input    []float64
	Output   []float64
	Spectrum []float64
	Curve    []float64 // nil unless an adaptive detector is active
	History  []float64 // oldest buffer first
	Blocks   uint64
	Skipped  uint64 // spectrum and block updates dropped while a reader held the lock
}

// NewSnapshot sizes a snapshot for block-sample buffers, bins spectrum
// bins and history past buffers.
func NewSnapshot(block, bins, history int) *Snapshot {
	if history < 1 {
		history = DefaultHistory
	}
	return &Snapshot{
		input:    make([]float64, block),
		output:   make([]float64, block),
		spectrum: make([]float64, bins),
		curve:    make([]float64, bins),
		history:  buffer.NewRing(history, block),
	}
}

// HistoryLen returns the number of buffers the scroll history holds.
func (s *Snapshot) HistoryLen() int { return s.history.Cap() }

// Read copies the current state into dst, growing its slices as needed.
func (s *Snapshot) Read(dst *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst.Input = append(dst.Input[:0], s.input...)
	dst.Output = append(dst.Output[:0], s.output...)
	dst.Spectrum = append(dst.Spectrum[:0], s.spectrum...)

	if s.hasCurve {
		dst.Curve = append(dst.Curve[:0], s.curve...)
	} else {
		dst.Curve = nil
	}

	n := s.history.Len() * s.history.BlockLen()
	if cap(dst.History) < n {
		dst.History = make([]float64, n)
	}
	dst.History = dst.History[:n]
	s.history.CopyTo(dst.History)

	dst.Blocks = s.blocks
	dst.Skipped = s.skipped.Load()
}

func (s *Snapshot) publishSpectrum(mag, curve []float64) {
	if !s.mu.TryLock() {
		s.skipped.Add(1)
		return
	}
	defer s.mu.Unlock()

	copy(s.spectrum, mag)
	s.hasCurve = curve != nil
	if curve != nil {
		copy(s.curve, curve)
	}
}

func (s *Snapshot) publishBlock(in, out []float64) {
	if !s.mu.TryLock() {
		s.skipped.Add(1)
		return
	}
	defer s.mu.Unlock()

	copy(s.input, in)
	copy(s.output, out)
	s.history.Push(out)
	s.blocks++
}
