package exciter

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-exciter/dsp/core"
	"github.com/cwbudde/algo-exciter/dsp/peaks"
	"github.com/cwbudde/algo-exciter/dsp/spectrum"
	"github.com/cwbudde/algo-exciter/dsp/transform"
	"github.com/cwbudde/algo-exciter/dsp/window"
)

// ErrLength is returned by ProcessBlock for inconsistent buffer lengths.
var ErrLength = errors.New("exciter: invalid block length")

// Option configures a Resynthesizer.
type Option func(*config)

type config struct {
	transform  transform.Transform
	factory    peaks.Factory
	windowType window.Type
	history    int
}

// WithTransform sets the FFT backend. Its size must equal the frame size.
func WithTransform(t transform.Transform) Option {
	return func(c *config) {
		if t != nil {
			c.transform = t
		}
	}
}

// WithDetectors sets the factory used to build the per-chain peak detectors.
func WithDetectors(f peaks.Factory) Option {
	return func(c *config) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithWindow sets the analysis window. Only a periodic Hann window sums to
// one at 50% overlap; other types colour the output.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
	}
}

// WithHistory sets how many output buffers the snapshot keeps.
func WithHistory(buffers int) Option {
	return func(c *config) {
		if buffers > 0 {
			c.history = buffers
		}
	}
}

// chain holds the scratch for one pass through the spectral pipeline.
type chain struct {
	detector peaks.Detector
	time     []float64
	spec     []complex128
	mag      []float64
	phase    []float64
	mask     []bool
}

func newChain(g core.Geometry, d peaks.Detector) *chain {
	return &chain{
		detector: d,
		time:     make([]float64, g.FrameSize),
		spec:     make([]complex128, transform.Bins(g.FrameSize)),
		mag:      make([]float64, g.Bins()),
		phase:    make([]float64, g.Bins()),
		mask:     make([]bool, g.SearchBins()),
	}
}

// Resynthesizer runs the dual-chain STFT exciter.
//
// Chain A processes the current windowed frame. Chain B re-processes the
// previous hop's chain A output without a window. The output hop is
// B[hop:N) + A[0:hop), after which A becomes the next B. With all gains at
// zero the output reproduces the input.
//
// This processor is mono, allocation free after construction, and not
// thread-safe. Only Params may be touched concurrently.
type Resynthesizer struct {
	geom     core.Geometry
	params   *Params
	tr       transform.Transform
	window   []float64
	polar    *spectrum.Polar
	current  *chain
	previous *chain
	carry    []float64
	snapshot *Snapshot
}

// NewResynthesizer builds a processor for geometry g driven by params.
// The defaults are the algo-fft backend, fixed-threshold detection, a
// periodic Hann window and DefaultHistory buffers of history.
func NewResynthesizer(g core.Geometry, params *Params, opts ...Option) (*Resynthesizer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if params == nil {
		return nil, errors.New("exciter: params must not be nil")
	}

	cfg := config{
		factory:    func(int) peaks.Detector { return peaks.NewFixed() },
		windowType: window.TypeHann,
		history:    DefaultHistory,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.transform == nil {
		fft, err := transform.NewFFT(g.FrameSize)
		if err != nil {
			return nil, fmt.Errorf("exciter: %w", err)
		}
		cfg.transform = fft
	}

	if cfg.transform.Size() != g.FrameSize {
		return nil, fmt.Errorf("exciter: transform size %d does not match frame size %d",
			cfg.transform.Size(), g.FrameSize)
	}

	coeffs := window.Generate(cfg.windowType, g.FrameSize, window.WithPeriodic())
	if len(coeffs) != g.FrameSize {
		return nil, fmt.Errorf("exciter: window generation failed for size %d", g.FrameSize)
	}

	return &Resynthesizer{
		geom:     g,
		params:   params,
		tr:       cfg.transform,
		window:   coeffs,
		polar:    spectrum.NewPolar(g.Bins()),
		current:  newChain(g, cfg.factory(g.SearchBins())),
		previous: newChain(g, cfg.factory(g.SearchBins())),
		carry:    make([]float64, g.FrameSize),
		snapshot: NewSnapshot(g.BufferSize, g.SearchBins(), cfg.history),
	}, nil
}

// Geometry returns the processing geometry.
func (r *Resynthesizer) Geometry() core.Geometry { return r.geom }

// Params returns the live controls.
func (r *Resynthesizer) Params() *Params { return r.params }

// Snapshot returns the visualization state.
func (r *Resynthesizer) Snapshot() *Snapshot { return r.snapshot }

// Reset clears the carried chain and any adaptive curves.
func (r *Resynthesizer) Reset() {
	core.Zero(r.carry)
	r.resetCurves()
}

// ProcessBlock renders len(dst) output samples from src.
//
// len(dst) must be a positive multiple of the hop size and src must hold
// len(dst)+hop samples: hop h reads the frame src[h*hop : h*hop+N].
func (r *Resynthesizer) ProcessBlock(dst, src []float64) error {
	hop := r.geom.HopSize

	if len(dst) == 0 || len(dst)%hop != 0 || len(src) != len(dst)+hop {
		return fmt.Errorf("%w: dst %d, src %d, hop %d", ErrLength, len(dst), len(src), hop)
	}

	r.resetCurvesIfRequested()

	v := r.params.Values()
	n := r.geom.FrameSize
	a := r.current
	b := r.previous

	for off := 0; off < len(dst); off += hop {
		copy(a.time, src[off:off+n])
		if err := window.ApplyInPlace(a.time, r.window); err != nil {
			return fmt.Errorf("exciter: %w", err)
		}

		if err := r.excite(a, v, true); err != nil {
			return err
		}

		copy(b.time, r.carry)
		if err := r.excite(b, v, false); err != nil {
			return err
		}

		out := dst[off : off+hop]
		for i := range out {
			out[i] = b.time[hop+i] + a.time[i]
		}

		copy(r.carry, a.time)
	}

	r.snapshot.publishBlock(src[:len(dst)], dst)

	return nil
}

// excite runs one chain in place: forward, polar split, detection,
// injection, polar join, inverse.
func (r *Resynthesizer) excite(c *chain, v Values, publish bool) error {
	if err := r.tr.Forward(c.spec, c.time); err != nil {
		return fmt.Errorf("exciter: %w", err)
	}

	// The Nyquist bin stays in c.spec untouched.
	if err := r.polar.Split(c.mag, c.phase, c.spec); err != nil {
		return fmt.Errorf("exciter: %w", err)
	}

	if v.Enabled {
		if err := c.detector.Detect(c.mask, c.mag, v.Sensitivity); err != nil {
			return fmt.Errorf("exciter: %w", err)
		}
	}

	if publish {
		r.snapshot.publishSpectrum(c.mag[:len(c.mask)], curveOf(c.detector))
	}

	if v.Enabled {
		InjectAll(c.mag, c.mask, v)
	}

	if err := r.polar.Join(c.spec, c.mag, c.phase); err != nil {
		return fmt.Errorf("exciter: %w", err)
	}

	if err := r.tr.Inverse(c.time, c.spec); err != nil {
		return fmt.Errorf("exciter: %w", err)
	}

	return nil
}

func (r *Resynthesizer) resetCurvesIfRequested() {
	if r.params.TakeCurveReset() {
		r.resetCurves()
	}
}

func (r *Resynthesizer) resetCurves() {
	for _, c := range []*chain{r.current, r.previous} {
		if cd, ok := c.detector.(peaks.CurveDetector); ok {
			cd.Reset()
		}
	}
}

func curveOf(d peaks.Detector) []float64 {
	if cd, ok := d.(peaks.CurveDetector); ok {
		return cd.Curve()
	}
	return nil
}
