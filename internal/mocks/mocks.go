// Package mocks provides hand-written test doubles for the adapter
// contracts. Each mock records its calls and delegates to an optional
// function field for custom behavior.
package mocks

import (
	"time"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// MockKeyboard implements contracts.Keyboard, recording every synthesized
// chord and text entry.
type MockKeyboard struct {
	PressKeysFunc func(chord string) error
	EnterTextFunc func(text string, delay time.Duration) error

	Chords []string
	Texts  []TextCall
}

// TextCall records one EnterText invocation.
type TextCall struct {
	Text  string
	Delay time.Duration
}

var _ contracts.Keyboard = (*MockKeyboard)(nil)

// NewMockKeyboard creates a keyboard mock that succeeds on every call.
func NewMockKeyboard() *MockKeyboard {
	return &MockKeyboard{}
}

func (m *MockKeyboard) PressKeys(chord string) error {
	m.Chords = append(m.Chords, chord)
	if m.PressKeysFunc != nil {
		return m.PressKeysFunc(chord)
	}
	return nil
}

func (m *MockKeyboard) EnterText(text string, delay time.Duration) error {
	m.Texts = append(m.Texts, TextCall{Text: text, Delay: delay})
	if m.EnterTextFunc != nil {
		return m.EnterTextFunc(text, delay)
	}
	return nil
}

// MockShell implements contracts.Shell, recording every spawn.
type MockShell struct {
	SpawnFunc func(command string, args []string, env map[string]string) error

	Spawns []SpawnCall
}

// SpawnCall records one Spawn invocation.
type SpawnCall struct {
	Command string
	Args    []string
	Env     map[string]string
}

var _ contracts.Shell = (*MockShell)(nil)

// NewMockShell creates a shell mock that succeeds on every call.
func NewMockShell() *MockShell {
	return &MockShell{}
}

func (m *MockShell) Spawn(command string, args []string, env map[string]string) error {
	m.Spawns = append(m.Spawns, SpawnCall{Command: command, Args: args, Env: env})
	if m.SpawnFunc != nil {
		return m.SpawnFunc(command, args, env)
	}
	return nil
}

// MockFocusProbe implements contracts.FocusProbe, returning a fixed window.
type MockFocusProbe struct {
	FocusedWindowFunc func() (*contracts.FocusedWindow, error)

	Window *contracts.FocusedWindow
	Err    error
}

var _ contracts.FocusProbe = (*MockFocusProbe)(nil)

// NewMockFocusProbe creates a probe reporting the given window; pass nil for
// "no window focused".
func NewMockFocusProbe(window *contracts.FocusedWindow) *MockFocusProbe {
	return &MockFocusProbe{Window: window}
}

func (m *MockFocusProbe) FocusedWindow() (*contracts.FocusedWindow, error) {
	if m.FocusedWindowFunc != nil {
		return m.FocusedWindowFunc()
	}
	return m.Window, m.Err
}

// NopLogger implements contracts.Logger and discards everything.
type NopLogger struct{}

var _ contracts.Logger = NopLogger{}

func (NopLogger) Debug(string, ...any)          {}
func (NopLogger) Info(string, ...any)           {}
func (NopLogger) Warn(string, ...any)           {}
func (NopLogger) Error(string, ...any)          {}
func (NopLogger) SetLevel(_ contracts.LogLevel) {}
