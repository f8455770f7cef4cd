package exciter

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-exciter/dsp/core"
)

const (
	// GainStep is the per-key increment of a harmonic gain.
	GainStep = 1e-6
	// SensitivityStep is the per-key increment of the peak sensitivity.
	SensitivityStep = 1e-4
	// DefaultFixedSensitivity is the initial and reset sensitivity of the
	// fixed-threshold variant.
	DefaultFixedSensitivity = 0.0001
)

// Param identifies a live control.
type Param int

const (
	ParamGain2 Param = iota
	ParamGain3
	ParamGain5
	ParamSensitivity
	numParams
)

// String returns a short label.
func (p Param) String() string {
	switch p {
	case ParamGain2:
		return "2nd"
	case ParamGain3:
		return "3rd"
	case ParamGain5:
		return "5th"
	case ParamSensitivity:
		return "sensitivity"
	default:
		return "unknown"
	}
}

// Step returns the increment used by the operator keys.
func (p Param) Step() float64 {
	if p == ParamSensitivity {
		return SensitivityStep
	}
	return GainStep
}

// Order returns the harmonic order a gain parameter controls, or 0.
func (p Param) Order() int {
	switch p {
	case ParamGain2:
		return 2
	case ParamGain3:
		return 3
	case ParamGain5:
		return 5
	default:
		return 0
	}
}

// Values is a point-in-time copy of all controls. The fields are read
// individually, so a copy taken during an edit may mix old and new values.
type Values struct {
	Gain2       float64
	Gain3       float64
	Gain5       float64
	Sensitivity float64
	Enabled     bool
}

// Gain returns the gain for a harmonic order, or 0 for other orders.
func (v Values) Gain(order int) float64 {
	switch order {
	case 2:
		return v.Gain2
	case 3:
		return v.Gain3
	case 5:
		return v.Gain5
	default:
		return 0
	}
}

// Params holds the live exciter controls. All values are clamped to [0,1].
// Methods never block and are safe for one writer and any number of readers.
type Params struct {
	vals       [numParams]atomic.Uint64
	defaults   [numParams]float64
	enabled    atomic.Bool
	curveReset atomic.Bool
}

// NewParams returns controls with zero gains, injection enabled and the
// given default sensitivity.
func NewParams(sensitivity float64) *Params {
	p := &Params{}
	p.defaults[ParamSensitivity] = core.ClampUnit(sensitivity)

	for i := range p.vals {
		p.vals[i].Store(math.Float64bits(p.defaults[i]))
	}

	p.enabled.Store(true)

	return p
}

// Get returns the current value of a control.
func (p *Params) Get(param Param) float64 {
	if !valid(param) {
		return 0
	}
	return math.Float64frombits(p.vals[param].Load())
}

// Set stores v clamped to [0,1] and returns the stored value.
func (p *Params) Set(param Param, v float64) float64 {
	if !valid(param) {
		return 0
	}
	v = core.ClampUnit(v)
	p.vals[param].Store(math.Float64bits(v))
	return v
}

// Adjust adds delta to a control, clamps, and returns the new value.
func (p *Params) Adjust(param Param, delta float64) float64 {
	if !valid(param) {
		return 0
	}

	slot := &p.vals[param]
	for {
		old := slot.Load()
		v := core.ClampUnit(math.Float64frombits(old) + delta)
		if slot.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}

// Reset restores a control to its default and returns it.
func (p *Params) Reset(param Param) float64 {
	if !valid(param) {
		return 0
	}
	return p.Set(param, p.defaults[param])
}

// Default returns the reset value of a control.
func (p *Params) Default(param Param) float64 {
	if !valid(param) {
		return 0
	}
	return p.defaults[param]
}

// Values returns a copy of all controls.
func (p *Params) Values() Values {
	return Values{
		Gain2:       p.Get(ParamGain2),
		Gain3:       p.Get(ParamGain3),
		Gain5:       p.Get(ParamGain5),
		Sensitivity: p.Get(ParamSensitivity),
		Enabled:     p.enabled.Load(),
	}
}

// Enabled reports whether harmonic injection runs.
func (p *Params) Enabled() bool { return p.enabled.Load() }

// SetEnabled turns harmonic injection on or off.
func (p *Params) SetEnabled(on bool) { p.enabled.Store(on) }

// ToggleEnabled flips the injection switch and returns the new state.
func (p *Params) ToggleEnabled() bool {
	for {
		old := p.enabled.Load()
		if p.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RequestCurveReset asks the audio path to clear adaptive curves before
// the next block.
func (p *Params) RequestCurveReset() { p.curveReset.Store(true) }

// TakeCurveReset reports and clears a pending curve reset request.
func (p *Params) TakeCurveReset() bool { return p.curveReset.Swap(false) }

func valid(param Param) bool { return param >= 0 && param < numParams }
