// Package macros holds the evaluated configuration model: scopes with
// compiled window matchers, macros with their event matchers, preconditions
// and actions. Everything here is immutable once the configuration parser
// has produced it.
package macros

import (
	"github.com/leandrodaf/macropad/internal/match"
	"github.com/leandrodaf/macropad/internal/state"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// Scope is a predicate on the focused window plus the macros that apply when
// the predicate holds. At least one of the matchers is always set; a scope
// with none is rejected at parse time.
type Scope struct {
	WindowClass        *match.StringMatch
	WindowName         *match.StringMatch
	ExecutablePath     *match.StringMatch
	ExecutableBasename *match.StringMatch

	Macros []Macro
}

// Matches reports whether every specified matcher accepts the corresponding
// window field. A nil window never matches a scope.
func (s *Scope) Matches(w *contracts.FocusedWindow) bool {
	if w == nil {
		return false
	}
	if s.WindowClass != nil && !s.WindowClass.Matches(w.WindowClass) {
		return false
	}
	if s.WindowName != nil && !s.WindowName.Matches(w.WindowName) {
		return false
	}
	if s.ExecutablePath != nil {
		if w.ExecutablePath == "" || !s.ExecutablePath.Matches(w.ExecutablePath) {
			return false
		}
	}
	if s.ExecutableBasename != nil {
		if w.ExecutableBasename == "" || !s.ExecutableBasename.Matches(w.ExecutableBasename) {
			return false
		}
	}
	return true
}

// Macro bundles event matchers, preconditions and an ordered action list.
// MatchingEvents and Actions are non-empty; the parser enforces it.
type Macro struct {
	// Name optionally identifies the macro in log output.
	Name string

	MatchingEvents []EventMatcher
	Preconditions  []Precondition
	Actions        []Action
}

// Matches reports whether msg triggers this macro: at least one event
// matcher (with its own preconditions) accepts the message, and every
// macro-level precondition is satisfied.
func (m *Macro) Matches(msg contracts.Message, t *state.Tracker) bool {
	for _, p := range m.Preconditions {
		if !p.SatisfiedBy(t) {
			return false
		}
	}
	for i := range m.MatchingEvents {
		if m.MatchingEvents[i].Matches(msg, t) {
			return true
		}
	}
	return false
}

// Config is the evaluated configuration.
type Config struct {
	Version      int
	Scopes       []Scope
	GlobalMacros []Macro
}

// MacroCount returns the total number of macros across all scopes and the
// global list.
func (c *Config) MacroCount() int {
	n := len(c.GlobalMacros)
	for i := range c.Scopes {
		n += len(c.Scopes[i].Macros)
	}
	return n
}
