package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ActionRunner executes individual macro actions against the keyboard and
// shell adapters.
type ActionRunner struct {
	keyboard contracts.Keyboard
	shell    contracts.Shell
	sleep    func(time.Duration)
}

// NewActionRunner creates a runner on top of the given adapters.
func NewActionRunner(keyboard contracts.Keyboard, shell contracts.Shell) *ActionRunner {
	return &ActionRunner{
		keyboard: keyboard,
		shell:    shell,
		sleep:    time.Sleep,
	}
}

// Run executes a single action. Control actions are not acted on here; the
// corresponding signal is returned for the event-loop owner to interpret. A
// non-nil error means the rest of the current macro's actions should be
// skipped.
func (r *ActionRunner) Run(a macros.Action) (Signal, error) {
	switch act := a.(type) {
	case macros.KeySequence:
		return SignalNone, r.runKeySequence(act)

	case macros.EnterText:
		return SignalNone, r.runEnterText(act)

	case macros.Shell:
		if err := r.shell.Spawn(act.Command, act.Args, act.Env); err != nil {
			return SignalNone, fmt.Errorf("spawn %s: %w", act.Command, err)
		}
		return SignalNone, nil

	case macros.Wait:
		if act.Duration > 0 {
			r.sleep(act.Duration)
		}
		return SignalNone, nil

	case macros.Control:
		switch act.Action {
		case macros.ControlReloadMacros:
			return SignalReload, nil
		case macros.ControlRestart:
			return SignalRestart, nil
		case macros.ControlExit:
			return SignalExit, nil
		}
	}

	return SignalNone, fmt.Errorf("unknown action %T", a)
}

// runKeySequence splits the sequence into space-separated chords and
// synthesizes them in order, sleeping between chords, repeating the whole
// sequence Count times.
func (r *ActionRunner) runKeySequence(act macros.KeySequence) error {
	chords := strings.Fields(act.Sequence)
	if len(chords) == 0 {
		return nil
	}

	for rep := 0; rep < act.Count; rep++ {
		for i, chord := range chords {
			if (rep > 0 || i > 0) && act.Delay > 0 {
				r.sleep(act.Delay)
			}
			if err := r.keyboard.PressKeys(chord); err != nil {
				return fmt.Errorf("key sequence %q: %w", chord, err)
			}
		}
	}
	return nil
}

func (r *ActionRunner) runEnterText(act macros.EnterText) error {
	for rep := 0; rep < act.Count; rep++ {
		if rep > 0 && act.Delay > 0 {
			r.sleep(act.Delay)
		}
		if err := r.keyboard.EnterText(act.Text, act.Delay); err != nil {
			return fmt.Errorf("enter text: %w", err)
		}
	}
	return nil
}
