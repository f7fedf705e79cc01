package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/internal/match"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

func mustParse(t *testing.T, doc string) *macros.Config {
	t.Helper()
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

func parseErrors(t *testing.T, doc string) []error {
	t.Helper()
	cfg, err := Parse([]byte(doc))
	if err == nil {
		t.Fatalf("expected parse errors, got config with %d macros", cfg.MacroCount())
	}
	if cfg != nil {
		t.Fatal("a failed parse should not return a configuration")
	}
	return multierr.Errors(err)
}

func TestParseFullConfig(t *testing.T) {
	cfg := mustParse(t, `
version: 1
scopes:
  - window_class:
      contains: gedit
    macros:
      - name: new tab
        matching_events:
          - type: midi
            data:
              message_type: note_on
              key: 33
        actions:
          - type: key_sequence
            data: ctrl+t
global_macros:
  - matching_events:
      - type: midi
        data:
          message_type: control_change
          control: 7
          value: {min: 64}
    required_preconditions:
      - type: midi
        invert: true
        data:
          condition_type: note_on
          channel: 0
          key: 60
    actions:
      - type: enter_text
        data:
          text: hello
          count: 2
          delay_ms: 5
      - type: wait
        data: 2000
      - type: control
        data: exit
`)

	if len(cfg.Scopes) != 1 || len(cfg.GlobalMacros) != 1 {
		t.Fatalf("got %d scopes, %d global macros", len(cfg.Scopes), len(cfg.GlobalMacros))
	}
	if cfg.MacroCount() != 2 {
		t.Errorf("MacroCount = %d; want 2", cfg.MacroCount())
	}

	s := cfg.Scopes[0]
	if s.WindowClass == nil || s.WindowClass.Kind != match.MatchContains || s.WindowClass.Pattern != "gedit" {
		t.Errorf("unexpected window_class matcher: %+v", s.WindowClass)
	}
	if s.Macros[0].Name != "new tab" {
		t.Errorf("macro name = %q", s.Macros[0].Name)
	}

	ev := s.Macros[0].MatchingEvents[0]
	if ev.Midi.MessageType != contracts.MessageNoteOn {
		t.Errorf("message type = %q", ev.Midi.MessageType)
	}
	if !reflect.DeepEqual(ev.Midi.Key, match.Single(33)) {
		t.Errorf("key matcher = %#v; want Single(33)", ev.Midi.Key)
	}
	if ev.Midi.Channel != nil {
		t.Error("unspecified channel should compile to nil (any)")
	}

	ks, ok := s.Macros[0].Actions[0].(macros.KeySequence)
	if !ok {
		t.Fatalf("action 0 = %T; want KeySequence", s.Macros[0].Actions[0])
	}
	want := macros.KeySequence{Sequence: "ctrl+t", Count: 1, Delay: 100 * time.Microsecond}
	if ks != want {
		t.Errorf("KeySequence = %+v; want %+v", ks, want)
	}

	g := cfg.GlobalMacros[0]
	if len(g.Preconditions) != 1 || !g.Preconditions[0].Invert {
		t.Fatalf("unexpected preconditions: %+v", g.Preconditions)
	}
	if g.Preconditions[0].Midi.Kind != macros.ConditionNoteOn || g.Preconditions[0].Midi.Key != 60 {
		t.Errorf("unexpected precondition data: %+v", g.Preconditions[0].Midi)
	}

	et, ok := g.Actions[0].(macros.EnterText)
	if !ok || et.Count != 2 || et.Delay != 5*time.Millisecond {
		t.Errorf("EnterText = %+v", g.Actions[0])
	}
	w, ok := g.Actions[1].(macros.Wait)
	if !ok || w.Duration != 2000*time.Microsecond {
		t.Errorf("Wait = %+v", g.Actions[1])
	}
	c, ok := g.Actions[2].(macros.Control)
	if !ok || c.Action != macros.ControlExit {
		t.Errorf("Control = %+v", g.Actions[2])
	}
}

func TestParseShorthandEquivalence(t *testing.T) {
	short := mustParse(t, `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - {type: enter_text, data: Hi}
      - {type: wait, data: 2000}
      - {type: control, data: reload_macros}
`)
	long := mustParse(t, `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - {type: enter_text, data: {text: Hi, count: 1, delay: 100}}
      - {type: wait, data: {duration: 2000}}
      - {type: control, data: {action: reload_macros}}
`)

	if !reflect.DeepEqual(short.GlobalMacros[0].Actions, long.GlobalMacros[0].Actions) {
		t.Errorf("shorthand actions differ from expanded form:\n%+v\n%+v",
			short.GlobalMacros[0].Actions, long.GlobalMacros[0].Actions)
	}
}

func TestParseVersion(t *testing.T) {
	for _, doc := range []string{
		"scopes: []",
		"version: 2\nglobal_macros: []",
		"version: one\nglobal_macros: []",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected version error for %q", doc)
		}
	}
}

func TestParseNoMacros(t *testing.T) {
	for _, doc := range []string{
		"version: 1",
		"version: 1\nglobal_macros: []",
		"version: 1\nscopes:\n  - window_class: {is: x}\n    macros: []",
	} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrNoMacros) {
			t.Errorf("Parse(%q) = %v; want ErrNoMacros", doc, err)
		}
	}
}

const macroTail = `
    actions:
      - type: wait
        data: 1
`

func wrapEvent(data string) string {
	return `
version: 1
global_macros:
  - matching_events:
      - type: midi
        data:
` + data + macroTail
}

func TestParseFieldBounds(t *testing.T) {
	bad := []string{
		wrapEvent("          message_type: note_on\n          channel: 16"),
		wrapEvent("          message_type: note_on\n          key: 128"),
		wrapEvent("          message_type: note_on\n          velocity: 128"),
		wrapEvent("          message_type: control_change\n          control: -1"),
		wrapEvent("          message_type: pitch_bend_change\n          value: 16384"),
		wrapEvent("          message_type: program_change\n          program: 200"),
	}
	for _, doc := range bad {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected out-of-range error for:\n%s", doc)
		}
	}

	good := []string{
		wrapEvent("          message_type: note_on\n          channel: 15\n          key: 127"),
		wrapEvent("          message_type: pitch_bend_change\n          value: 16383"),
	}
	for _, doc := range good {
		if _, err := Parse([]byte(doc)); err != nil {
			t.Errorf("unexpected error for boundary values: %v", err)
		}
	}
}

func TestParseFieldApplicability(t *testing.T) {
	// velocity does not apply to control_change, key does not apply to
	// program_change.
	for _, doc := range []string{
		wrapEvent("          message_type: control_change\n          velocity: 1"),
		wrapEvent("          message_type: program_change\n          key: 1"),
		wrapEvent("          message_type: note_on\n          bogus: 1"),
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected field applicability error for:\n%s", doc)
		}
	}
}

func TestParseUnknownTypes(t *testing.T) {
	docs := []string{
		// Unknown message_type.
		wrapEvent("          message_type: note_maybe"),
		// Unknown event matcher type.
		`
version: 1
global_macros:
  - matching_events:
      - type: osc
        data: {message_type: note_on}
` + macroTail,
	}
	for _, doc := range docs {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected unknown-type error for:\n%s", doc)
		}
	}
}

func TestParseValueMatchShapes(t *testing.T) {
	cfg := mustParse(t, wrapEvent(
		"          message_type: note_on\n"+
			"          key: [12, 14, {min: 32, max: 34}]\n"+
			"          velocity: {min: 64}"))

	m := cfg.GlobalMacros[0].MatchingEvents[0].Midi

	for _, v := range []int{12, 14, 32, 33, 34} {
		if !m.Key.Matches(v) {
			t.Errorf("key union should match %d", v)
		}
	}
	for _, v := range []int{13, 31, 35} {
		if m.Key.Matches(v) {
			t.Errorf("key union should not match %d", v)
		}
	}

	if m.Velocity.Matches(63) || !m.Velocity.Matches(64) || !m.Velocity.Matches(127) {
		t.Error("velocity {min: 64} should match 64..127 only")
	}

	// All-scalar sequences compile to a List.
	cfg = mustParse(t, wrapEvent(
		"          message_type: note_on\n          key: [1, 2, 3]"))
	if _, ok := cfg.GlobalMacros[0].MatchingEvents[0].Midi.Key.(match.List); !ok {
		t.Errorf("all-scalar sequence should compile to List, got %#v",
			cfg.GlobalMacros[0].MatchingEvents[0].Midi.Key)
	}
}

func TestParseValueMatchErrors(t *testing.T) {
	bad := []string{
		// Empty sequence.
		wrapEvent("          message_type: note_on\n          key: []"),
		// Range without bounds.
		wrapEvent("          message_type: note_on\n          key: {}"),
		// Unknown range key.
		wrapEvent("          message_type: note_on\n          key: {min: 1, step: 2}"),
		// min > max.
		wrapEvent("          message_type: note_on\n          key: {min: 10, max: 5}"),
		// Range bound out of field range.
		wrapEvent("          message_type: note_on\n          key: {max: 128}"),
		// Strings are not value matchers.
		wrapEvent("          message_type: note_on\n          key: high"),
	}
	for _, doc := range bad {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected value-match error for:\n%s", doc)
		}
	}
}

func TestParseScopeWithoutMatchers(t *testing.T) {
	errs := parseErrors(t, `
version: 1
scopes:
  - macros:
      - matching_events:
          - {type: midi, data: {message_type: note_on}}
        actions:
          - {type: wait, data: 1}
`)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Error(), "no window matchers") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected scope-without-matchers error, got %v", errs)
	}
}

func TestParseStringMatcherErrors(t *testing.T) {
	for _, matcher := range []string{
		"{is: a, contains: b}", // more than one key
		"{glob: a}",            // unknown kind
		"{regex: '('}",         // invalid regex
		"plain",                // not a mapping
	} {
		doc := `
version: 1
scopes:
  - window_class: ` + matcher + `
    macros:
      - matching_events:
          - {type: midi, data: {message_type: note_on}}
        actions:
          - {type: wait, data: 1}
`
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected string matcher error for %s", matcher)
		}
	}
}

func TestParseEmptyEventAndActionLists(t *testing.T) {
	for _, doc := range []string{
		`
version: 1
global_macros:
  - matching_events: []
    actions:
      - {type: wait, data: 1}
`,
		`
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions: []
`,
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected error for empty list in:\n%s", doc)
		}
	}
}

func TestParseDelayPrecedence(t *testing.T) {
	cfg := mustParse(t, `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - {type: key_sequence, data: {sequence: a, delay: 33, delay_ms: 20}}
      - {type: key_sequence, data: {sequence: a, delay: -1, delay_ms: 20}}
      - {type: key_sequence, data: {sequence: a, delay_ms: 20}}
      - {type: key_sequence, data: {sequence: a}}
`)

	wants := []time.Duration{
		33 * time.Microsecond, // delay wins over delay_ms
		20 * time.Millisecond, // negative delay is discarded
		20 * time.Millisecond,
		100 * time.Microsecond, // default
	}
	for i, want := range wants {
		got := cfg.GlobalMacros[0].Actions[i].(macros.KeySequence).Delay
		if got != want {
			t.Errorf("action %d delay = %v; want %v", i, got, want)
		}
	}
}

func TestParseWaitDurationPrecedence(t *testing.T) {
	cfg := mustParse(t, `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - {type: wait, data: {duration: 500, duration_ms: 2}}
      - {type: wait, data: {duration: -1, duration_ms: 2}}
      - {type: wait, data: {duration: 0}}
`)

	wants := []time.Duration{
		500 * time.Microsecond,
		2 * time.Millisecond,
		0,
	}
	for i, want := range wants {
		got := cfg.GlobalMacros[0].Actions[i].(macros.Wait).Duration
		if got != want {
			t.Errorf("action %d duration = %v; want %v", i, got, want)
		}
	}

	for _, doc := range []string{
		`{type: wait, data: {}}`,
		`{type: wait, data: -5}`,
		`{type: wait, data: {duration_ms: -5}}`,
	} {
		full := `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - ` + doc + `
`
		if _, err := Parse([]byte(full)); err == nil {
			t.Errorf("expected wait error for %s", doc)
		}
	}
}

func TestParseCount(t *testing.T) {
	for _, doc := range []string{
		`{type: key_sequence, data: {sequence: a, count: 0}}`,
		`{type: enter_text, data: {text: a, count: -3}}`,
	} {
		full := `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - ` + doc + `
`
		if _, err := Parse([]byte(full)); err == nil {
			t.Errorf("expected count error for %s", doc)
		}
	}
}

func TestParseShellAction(t *testing.T) {
	cfg := mustParse(t, `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - type: shell
        data:
          command: /usr/bin/notify-send
          args: [done, "macro ran"]
          env_vars:
            LANG: C
`)

	sh := cfg.GlobalMacros[0].Actions[0].(macros.Shell)
	if sh.Command != "/usr/bin/notify-send" {
		t.Errorf("command = %q", sh.Command)
	}
	if !reflect.DeepEqual(sh.Args, []string{"done", "macro ran"}) {
		t.Errorf("args = %v", sh.Args)
	}
	if sh.Env["LANG"] != "C" {
		t.Errorf("env = %v", sh.Env)
	}

	// Relative commands are rejected.
	if _, err := Parse([]byte(`
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    actions:
      - {type: shell, data: {command: notify-send}}
`)); err == nil {
		t.Error("expected error for relative shell command")
	}
}

func TestParsePreconditionErrors(t *testing.T) {
	for _, data := range []string{
		`{condition_type: note_on, channel: 0}`,                         // missing key
		`{condition_type: note_on, channel: 16, key: 0}`,                // channel out of range
		`{condition_type: note_on, channel: 0, key: 0, value: 1}`,       // value does not apply
		`{condition_type: control, channel: 0}`,                         // missing control
		`{condition_type: humidity, channel: 0}`,                        // unknown kind
		`{condition_type: pitch_bend, channel: 0, value: {min: 20000}}`, // out of pitch range
	} {
		doc := `
version: 1
global_macros:
  - matching_events:
      - {type: midi, data: {message_type: note_on}}
    required_preconditions:
      - type: midi
        data: ` + data + `
    actions:
      - {type: wait, data: 1}
`
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected precondition error for %s", data)
		}
	}
}

func TestParseCollectsMultipleErrors(t *testing.T) {
	errs := parseErrors(t, `
version: 1
global_macros:
  - matching_events:
      - type: midi
        data:
          message_type: note_on
          channel: 16
          key: 128
    actions:
      - {type: wait, data: -1}
`)
	if len(errs) < 3 {
		t.Errorf("expected at least 3 collected errors, got %d: %v", len(errs), errs)
	}
}

func TestParseErrorsNameLocation(t *testing.T) {
	errs := parseErrors(t, "version: 1\nglobal_macros:\n  - matching_events:\n      - {type: midi, data: {message_type: note_on, channel: 99}}\n    actions:\n      - {type: wait, data: 1}\n")

	found := false
	for _, e := range errs {
		var ce *Error
		if errors.As(e, &ce) && ce.Line == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error located on line 4, got %v", errs)
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	doc := `
version: 1
scopes:
  - window_class: {contains: gedit}
    window_name: {regex: '.*[.]txt'}
    macros:
      - name: tab
        matching_events:
          - type: midi
            data:
              message_type: note_on
              key: [12, 14, {min: 32, max: 34}]
            required_preconditions:
              - type: midi
                data: {condition_type: program, channel: 1, program: {min: 5}}
        actions:
          - {type: key_sequence, data: ctrl+t}
global_macros:
  - matching_events:
      - type: midi
        data: {message_type: pitch_bend_change, value: {max: 8192}}
    required_preconditions:
      - type: midi
        invert: true
        data: {condition_type: control, channel: 2, control: 42, value: {min: 64}}
    actions:
      - {type: enter_text, data: Hi}
      - {type: shell, data: {command: /bin/true, args: [a], env_vars: {K: v}}}
      - {type: wait, data: 2000}
      - {type: control, data: restart}
`

	cfg := mustParse(t, doc)

	first, err := Canonical(cfg)
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}

	reparsed, err := Parse(first)
	if err != nil {
		t.Fatalf("reparsing canonical output: %v\n%s", err, first)
	}

	second, err := Canonical(reparsed)
	if err != nil {
		t.Fatalf("Canonical (second): %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("canonical form not stable under reparse:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}

	if !reflect.DeepEqual(stripRegex(cfg), stripRegex(reparsed)) {
		t.Error("reparsed configuration differs from original")
	}
}

// stripRegex clears compiled regexp internals so configurations can be
// compared with DeepEqual; Kind and Pattern still identify the matcher.
func stripRegex(c *macros.Config) *macros.Config {
	out := *c
	out.Scopes = append([]macros.Scope(nil), c.Scopes...)
	for i := range out.Scopes {
		for _, sm := range []**match.StringMatch{
			&out.Scopes[i].WindowClass, &out.Scopes[i].WindowName,
			&out.Scopes[i].ExecutablePath, &out.Scopes[i].ExecutableBasename,
		} {
			if *sm != nil {
				cp := match.StringMatch{Kind: (*sm).Kind, Pattern: (*sm).Pattern}
				*sm = &cp
			}
		}
	}
	return &out
}
