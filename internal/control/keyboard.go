package control

import (
	"context"
	"fmt"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-exciter/dsp/effects/exciter"
)

// Controller polls the terminal keyboard and applies key presses to the
// exciter parameters.
type Controller struct {
	keys   KeyMap
	params *exciter.Params
	log    logrus.FieldLogger

	// OnChange, when set, is called after every bound key press.
	OnChange func(Result)
}

// NewController returns a Controller for keys and params.
func NewController(keys KeyMap, params *exciter.Params, log logrus.FieldLogger) *Controller {
	return &Controller{keys: keys, params: params, log: log}
}

// Handle applies one key event and reports whether it asks to quit.
// Esc and Ctrl-C always quit.
func (c *Controller) Handle(char rune, key keyboard.Key) bool {
	if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
		c.notify(Result{Binding: Binding{Action: ActionQuit, Help: "quit"}})
		return true
	}

	res, ok := c.keys.Apply(c.params, char)
	if !ok {
		return false
	}

	if c.log != nil {
		entry := c.log.WithField("key", string(char))
		switch res.Binding.Action {
		case ActionAdjust, ActionReset, ActionCurveReset:
			entry.WithFields(logrus.Fields{
				"param": res.Binding.Param.String(),
				"value": res.Value,
			}).Debug(res.Binding.Help)
		case ActionToggle:
			entry.WithField("enabled", res.Enabled).Debug(res.Binding.Help)
		}
	}

	c.notify(res)

	return res.Quit()
}

func (c *Controller) notify(res Result) {
	if c.OnChange != nil {
		c.OnChange(res)
	}
}

// Run reads keys until a quit key is pressed or ctx is cancelled.
// A quit key returns nil.
func (c *Controller) Run(ctx context.Context) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("control: keyboard open: %w", err)
	}

	closeOnce := &sync.Once{}
	closeKeyboard := func() {
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}
	defer closeKeyboard()

	go func() {
		<-ctx.Done()
		closeKeyboard()
	}()

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("control: read key: %w", err)
		}

		if ctx.Err() != nil {
			return nil
		}

		if c.Handle(char, key) {
			return nil
		}
	}
}
