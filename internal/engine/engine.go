// Package engine contains the dispatcher that turns incoming MIDI messages
// into executed macro actions, plus the monitor sink and the runtime-control
// signals both report back to the event-loop owner.
package engine

import (
	"errors"
	"sync/atomic"

	"github.com/leandrodaf/macropad/internal/config"
	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/internal/state"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ReloadFunc reparses the configuration source. It returns
// config.ErrNoMacros when the reloaded file defines no macros.
type ReloadFunc func() (*macros.Config, error)

// Engine is the per-message dispatcher. It owns the MIDI state tracker and
// the active configuration, queries the focus probe once per message,
// selects the applicable macros and runs their action sequences in order.
//
// All dispatching happens on the goroutine that calls Run; the only
// concurrent access is the atomic configuration pointer, swapped between
// dispatch cycles on reload.
type Engine struct {
	log    contracts.Logger
	focus  contracts.FocusProbe
	runner *ActionRunner

	tracker *state.Tracker
	cfg     atomic.Pointer[macros.Config]
	reload  ReloadFunc
}

// New creates an Engine dispatching against the given configuration.
func New(
	cfg *macros.Config,
	focus contracts.FocusProbe,
	keyboard contracts.Keyboard,
	shell contracts.Shell,
	log contracts.Logger,
) *Engine {
	e := &Engine{
		log:     log,
		focus:   focus,
		runner:  NewActionRunner(keyboard, shell),
		tracker: state.NewTracker(),
	}
	e.cfg.Store(cfg)
	return e
}

// SetReloadFunc installs the callback used to honor reload_macros actions.
// Without one, reload requests are logged and ignored.
func (e *Engine) SetReloadFunc(f ReloadFunc) {
	e.reload = f
}

// Run drains the event channel until a control action asks for restart or
// exit, or the channel closes (the transport is gone). Reloads are handled
// in place: the tracker and the loop keep running.
func (e *Engine) Run(events <-chan contracts.Message) Signal {
	for msg := range events {
		switch sig := e.Dispatch(msg); sig {
		case SignalReload:
			if done := e.applyReload(); done != SignalNone {
				return done
			}
		case SignalRestart, SignalExit:
			return sig
		}
	}

	e.log.Warn("event channel closed; shutting down")
	return SignalExit
}

// Dispatch processes one message: updates tracked state, selects macros in
// scope order followed by globals, and executes the actions of every macro
// that matches. A reload or restart signal is returned once the whole
// dispatch cycle has finished; exit aborts the cycle immediately.
func (e *Engine) Dispatch(msg contracts.Message) Signal {
	e.tracker.Process(msg)

	if msg.Type() == contracts.MessageOther {
		return SignalNone
	}

	cfg := e.cfg.Load()
	window := e.focusedWindow()

	// Macros are independent: every macro that matched this cycle runs, so
	// reload and restart requests are only recorded here and take effect
	// once the cycle completes. Exit is the one signal that cuts the cycle
	// short.
	pending := SignalNone
	for _, m := range e.applicableMacros(cfg, window) {
		if !m.Matches(msg, e.tracker) {
			continue
		}
		switch sig := e.runActions(m); sig {
		case SignalExit:
			return SignalExit
		case SignalNone:
		default:
			pending = sig
		}
	}

	return pending
}

// applicableMacros concatenates, in source order, the macros of every scope
// accepting the window, followed by the global macros. A nil window matches
// no scope, so only globals apply.
func (e *Engine) applicableMacros(cfg *macros.Config, window *contracts.FocusedWindow) []*macros.Macro {
	var out []*macros.Macro
	for si := range cfg.Scopes {
		s := &cfg.Scopes[si]
		if !s.Matches(window) {
			continue
		}
		for mi := range s.Macros {
			out = append(out, &s.Macros[mi])
		}
	}
	for mi := range cfg.GlobalMacros {
		out = append(out, &cfg.GlobalMacros[mi])
	}
	return out
}

// runActions executes a matched macro's action sequence in order. An
// adapter error skips the macro's remaining actions but keeps the loop
// alive. Exit aborts the sequence immediately; reload and restart are
// reported only once the sequence has finished.
func (e *Engine) runActions(m *macros.Macro) Signal {
	if m.Name != "" {
		e.log.Info("executing macro", "name", m.Name)
	} else {
		e.log.Info("executing macro")
	}

	pending := SignalNone
	for _, a := range m.Actions {
		s, err := e.runner.Run(a)
		if err != nil {
			e.log.Warn("action failed; skipping rest of macro", "macro", m.Name, "error", err)
			return pending
		}
		if s == SignalExit {
			return SignalExit
		}
		if s != SignalNone {
			pending = s
		}
	}
	return pending
}

func (e *Engine) focusedWindow() *contracts.FocusedWindow {
	window, err := e.focus.FocusedWindow()
	if err != nil {
		e.log.Warn("focused window probe failed", "error", err)
		return nil
	}
	return window
}

// applyReload swaps in a freshly parsed configuration. A reload that yields
// no macros ends the loop cleanly; any other failure keeps the previous
// configuration. Tracked MIDI state is preserved either way.
func (e *Engine) applyReload() Signal {
	if e.reload == nil {
		e.log.Warn("reload requested but no reload function configured")
		return SignalNone
	}

	cfg, err := e.reload()
	if err != nil {
		if errors.Is(err, config.ErrNoMacros) {
			e.log.Info("reloaded configuration has no macros; exiting")
			return SignalExit
		}
		e.log.Error("configuration reload failed; keeping previous macros", "error", err)
		return SignalNone
	}

	e.cfg.Store(cfg)
	e.log.Info("configuration reloaded", "macros", cfg.MacroCount())
	return SignalNone
}
