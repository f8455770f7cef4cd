// Package control maps operator key presses to exciter parameter edits.
package control

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
)

// Action is what a key does.
type Action int

const (
	ActionNone Action = iota
	ActionAdjust
	ActionReset
	ActionToggle
	ActionCurveReset
	ActionQuit
)

// Variant selects the key map and the default sensitivity.
type Variant string

const (
	VariantFixed    Variant = "fixed"
	VariantAdaptive Variant = "adaptive"
)

// DefaultSensitivity returns the initial sensitivity for a variant.
func (v Variant) DefaultSensitivity() float64 {
	if v == VariantAdaptive {
		return 0
	}
	return exciter.DefaultFixedSensitivity
}

// Binding describes one key.
type Binding struct {
	Key    rune
	Action Action
	Param  exciter.Param
	Delta  float64
	Help   string
}

// KeyMap binds runes to actions.
type KeyMap map[rune]Binding

// Result reports what a key press changed.
type Result struct {
	Binding Binding
	Value   float64 // new parameter value for adjust and reset
	Enabled bool    // new state for toggle
}

// Quit reports whether the key asks to exit.
func (r Result) Quit() bool { return r.Binding.Action == ActionQuit }

// KeyMapFor returns the key map of a variant.
func KeyMapFor(v Variant) (KeyMap, error) {
	switch v {
	case VariantFixed:
		return FixedKeyMap(), nil
	case VariantAdaptive:
		return AdaptiveKeyMap(), nil
	default:
		return nil, fmt.Errorf("control: unknown variant %q", v)
	}
}

func gainBindings(m KeyMap) {
	rows := []struct {
		dec, inc, reset rune
		p               exciter.Param
	}{
		{'a', 's', 'z', exciter.ParamGain2},
		{'d', 'f', 'c', exciter.ParamGain3},
		{'g', 'h', 'b', exciter.ParamGain5},
	}

	for _, row := range rows {
		step := row.p.Step()
		m.add(Binding{Key: row.dec, Action: ActionAdjust, Param: row.p, Delta: -step,
			Help: fmt.Sprintf("decrease %s harmonic", row.p)})
		m.add(Binding{Key: row.inc, Action: ActionAdjust, Param: row.p, Delta: step,
			Help: fmt.Sprintf("increase %s harmonic", row.p)})
		m.add(Binding{Key: row.reset, Action: ActionReset, Param: row.p,
			Help: fmt.Sprintf("reset %s harmonic", row.p)})
	}

	m.add(Binding{Key: 'q', Action: ActionQuit, Help: "quit"})
}

// FixedKeyMap is the fixed-threshold variant: the sensitivity keys move the
// relative peak threshold.
func FixedKeyMap() KeyMap {
	m := KeyMap{}
	gainBindings(m)

	step := exciter.ParamSensitivity.Step()
	m.add(Binding{Key: 'l', Action: ActionAdjust, Param: exciter.ParamSensitivity, Delta: -step,
		Help: "decrease sensitivity"})
	m.add(Binding{Key: ';', Action: ActionAdjust, Param: exciter.ParamSensitivity, Delta: step,
		Help: "increase sensitivity"})
	m.add(Binding{Key: '.', Action: ActionReset, Param: exciter.ParamSensitivity,
		Help: "reset sensitivity"})

	return m
}

// AdaptiveKeyMap is the adaptive-curve variant: the sensitivity keys shift
// the curve, '.' toggles injection and '/' resets the curve.
func AdaptiveKeyMap() KeyMap {
	m := KeyMap{}
	gainBindings(m)

	step := exciter.ParamSensitivity.Step()
	m.add(Binding{Key: 'l', Action: ActionAdjust, Param: exciter.ParamSensitivity, Delta: -step,
		Help: "lower adaptive curve"})
	m.add(Binding{Key: ';', Action: ActionAdjust, Param: exciter.ParamSensitivity, Delta: step,
		Help: "raise adaptive curve"})
	m.add(Binding{Key: '.', Action: ActionToggle, Help: "toggle harmonic injection"})
	m.add(Binding{Key: '/', Action: ActionCurveReset, Param: exciter.ParamSensitivity,
		Help: "reset adaptive curve"})

	return m
}

func (m KeyMap) add(b Binding) { m[b.Key] = b }

// Bindings returns the bindings sorted by key.
func (m KeyMap) Bindings() []Binding {
	out := make([]Binding, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Apply performs the action bound to key. Unbound keys return ok=false and
// change nothing.
func (m KeyMap) Apply(p *exciter.Params, key rune) (Result, bool) {
	b, ok := m[key]
	if !ok {
		return Result{}, false
	}

	res := Result{Binding: b}

	switch b.Action {
	case ActionAdjust:
		res.Value = p.Adjust(b.Param, b.Delta)
	case ActionReset:
		res.Value = p.Reset(b.Param)
	case ActionToggle:
		res.Enabled = p.ToggleEnabled()
	case ActionCurveReset:
		res.Value = p.Set(b.Param, 0)
		p.RequestCurveReset()
	}

	return res, true
}
