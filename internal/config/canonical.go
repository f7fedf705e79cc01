package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/internal/match"
)

// Canonical serializes an evaluated configuration back to YAML in a fixed
// shape: shorthands expanded, defaults explicit, field order stable.
// Parsing the output yields an equal configuration.
func Canonical(c *macros.Config) ([]byte, error) {
	doc := canonicalConfig{Version: c.Version}

	for i := range c.Scopes {
		doc.Scopes = append(doc.Scopes, canonicalScope(&c.Scopes[i]))
	}
	for i := range c.GlobalMacros {
		doc.GlobalMacros = append(doc.GlobalMacros, canonicalMacro(&c.GlobalMacros[i]))
	}

	return yaml.Marshal(doc)
}

type canonicalConfig struct {
	Version      int         `yaml:"version"`
	Scopes       []yamlScope `yaml:"scopes,omitempty"`
	GlobalMacros []yamlMacro `yaml:"global_macros,omitempty"`
}

type yamlScope struct {
	WindowClass        map[string]string `yaml:"window_class,omitempty"`
	WindowName         map[string]string `yaml:"window_name,omitempty"`
	ExecutablePath     map[string]string `yaml:"executable_path,omitempty"`
	ExecutableBasename map[string]string `yaml:"executable_basename,omitempty"`
	Macros             []yamlMacro       `yaml:"macros,omitempty"`
}

type yamlMacro struct {
	Name                  string          `yaml:"name,omitempty"`
	MatchingEvents        []yamlEvent     `yaml:"matching_events"`
	RequiredPreconditions []yamlCondition `yaml:"required_preconditions,omitempty"`
	Actions               []yamlAction    `yaml:"actions"`
}

type yamlEvent struct {
	Type                  string          `yaml:"type"`
	Data                  map[string]any  `yaml:"data"`
	RequiredPreconditions []yamlCondition `yaml:"required_preconditions,omitempty"`
}

type yamlCondition struct {
	Type   string         `yaml:"type"`
	Invert bool           `yaml:"invert,omitempty"`
	Data   map[string]any `yaml:"data"`
}

type yamlAction struct {
	Type string         `yaml:"type"`
	Data map[string]any `yaml:"data"`
}

func canonicalScope(s *macros.Scope) yamlScope {
	out := yamlScope{
		WindowClass:        stringMatchMap(s.WindowClass),
		WindowName:         stringMatchMap(s.WindowName),
		ExecutablePath:     stringMatchMap(s.ExecutablePath),
		ExecutableBasename: stringMatchMap(s.ExecutableBasename),
	}
	for i := range s.Macros {
		out.Macros = append(out.Macros, canonicalMacro(&s.Macros[i]))
	}
	return out
}

func stringMatchMap(m *match.StringMatch) map[string]string {
	if m == nil {
		return nil
	}
	return map[string]string{string(m.Kind): m.Pattern}
}

func canonicalMacro(m *macros.Macro) yamlMacro {
	out := yamlMacro{Name: m.Name}

	for i := range m.MatchingEvents {
		out.MatchingEvents = append(out.MatchingEvents, canonicalEvent(&m.MatchingEvents[i]))
	}
	for _, p := range m.Preconditions {
		out.RequiredPreconditions = append(out.RequiredPreconditions, canonicalCondition(p))
	}
	for _, a := range m.Actions {
		out.Actions = append(out.Actions, canonicalAction(a))
	}
	return out
}

func canonicalEvent(e *macros.EventMatcher) yamlEvent {
	data := map[string]any{"message_type": string(e.Midi.MessageType)}

	putValue(data, "channel", e.Midi.Channel)
	putValue(data, "key", e.Midi.Key)
	putValue(data, "velocity", e.Midi.Velocity)
	putValue(data, "control", e.Midi.Control)
	putValue(data, "value", e.Midi.Value)
	putValue(data, "program", e.Midi.Program)

	out := yamlEvent{Type: "midi", Data: data}
	for _, p := range e.Preconditions {
		out.RequiredPreconditions = append(out.RequiredPreconditions, canonicalCondition(p))
	}
	return out
}

func canonicalCondition(p macros.Precondition) yamlCondition {
	data := map[string]any{
		"condition_type": string(p.Midi.Kind),
		"channel":        int(p.Midi.Channel),
	}

	switch p.Midi.Kind {
	case macros.ConditionNoteOn:
		data["key"] = int(p.Midi.Key)
	case macros.ConditionControl:
		data["control"] = int(p.Midi.Control)
		putValue(data, "value", p.Midi.Value)
	case macros.ConditionProgram:
		putValue(data, "program", p.Midi.Program)
	case macros.ConditionPitchBend:
		putValue(data, "value", p.Midi.Value)
	}

	return yamlCondition{Type: "midi", Invert: p.Invert, Data: data}
}

func canonicalAction(a macros.Action) yamlAction {
	switch act := a.(type) {
	case macros.KeySequence:
		return yamlAction{Type: "key_sequence", Data: map[string]any{
			"sequence": act.Sequence,
			"count":    act.Count,
			"delay":    int(act.Delay / time.Microsecond),
		}}

	case macros.EnterText:
		return yamlAction{Type: "enter_text", Data: map[string]any{
			"text":  act.Text,
			"count": act.Count,
			"delay": int(act.Delay / time.Microsecond),
		}}

	case macros.Shell:
		data := map[string]any{"command": act.Command}
		if len(act.Args) > 0 {
			data["args"] = act.Args
		}
		if len(act.Env) > 0 {
			data["env_vars"] = act.Env
		}
		return yamlAction{Type: "shell", Data: data}

	case macros.Wait:
		return yamlAction{Type: "wait", Data: map[string]any{
			"duration": int(act.Duration / time.Microsecond),
		}}

	case macros.Control:
		return yamlAction{Type: "control", Data: map[string]any{
			"action": string(act.Action),
		}}
	}

	// Unreachable for configurations produced by Parse.
	return yamlAction{Type: fmt.Sprintf("%v", a.ActionType())}
}

// putValue writes the canonical form of a value matcher under key; a nil
// matcher means "any" and is omitted.
func putValue(data map[string]any, key string, v match.Value) {
	raw := valueToRaw(v)
	if raw != nil {
		data[key] = raw
	}
}

func valueToRaw(v match.Value) any {
	switch m := v.(type) {
	case nil, match.Any:
		return nil

	case match.Single:
		return int(m)

	case match.List:
		out := make([]any, len(m))
		for i, n := range m {
			out[i] = n
		}
		return out

	case match.Range:
		r := map[string]any{}
		if m.Min != nil {
			r["min"] = *m.Min
		}
		if m.Max != nil {
			r["max"] = *m.Max
		}
		return r

	case match.Union:
		out := make([]any, 0, len(m))
		for _, el := range m {
			if raw := valueToRaw(el); raw != nil {
				out = append(out, raw)
			}
		}
		return out
	}

	return nil
}
