package config

import (
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/internal/match"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

const currentVersion = 1

// defaultKeyDelay is the pause between synthesized chords or characters when
// the configuration does not specify one.
const defaultKeyDelay = 100 * time.Microsecond

type bounds struct {
	min int
	max int
}

func (b bounds) contains(v int) bool { return v >= b.min && v <= b.max }

var (
	channelBounds   = bounds{0, 15}
	dataByteBounds  = bounds{0, 127}
	pitchBendBounds = bounds{0, 16383}
)

// midiEventFields lists, per message type, the data fields an event matcher
// may constrain and the value bounds for each.
var midiEventFields = map[contracts.MessageType]map[string]bounds{
	contracts.MessageNoteOn: {
		"channel": channelBounds, "key": dataByteBounds, "velocity": dataByteBounds,
	},
	contracts.MessageNoteOff: {
		"channel": channelBounds, "key": dataByteBounds, "velocity": dataByteBounds,
	},
	contracts.MessagePolyAftertouch: {
		"channel": channelBounds, "key": dataByteBounds, "value": dataByteBounds,
	},
	contracts.MessageControlChange: {
		"channel": channelBounds, "control": dataByteBounds, "value": dataByteBounds,
	},
	contracts.MessageProgramChange: {
		"channel": channelBounds, "program": dataByteBounds,
	},
	contracts.MessageChannelAftertouch: {
		"channel": channelBounds, "value": dataByteBounds,
	},
	contracts.MessagePitchBendChange: {
		"channel": channelBounds, "value": pitchBendBounds,
	},
}

// Parse validates and compiles a YAML configuration document. It collects
// every error it can find in one pass; the returned error combines them all
// (unwrap with multierr.Errors). On any error the configuration is nil:
// there is no partial result.
//
// A structurally valid document defining zero macros returns ErrNoMacros.
func Parse(data []byte) (*macros.Config, error) {
	root, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}

	p := &parser{}
	cfg := p.parseConfig(root)

	if len(p.errs) > 0 {
		return nil, multierr.Combine(p.errs...)
	}
	if cfg.MacroCount() == 0 {
		return nil, ErrNoMacros
	}
	return cfg, nil
}

type parser struct {
	errs []error
}

func (p *parser) errf(n *Node, format string, args ...any) {
	p.errs = append(p.errs, errAt(n, format, args...))
}

func (p *parser) parseConfig(root *Node) *macros.Config {
	cfg := &macros.Config{Version: currentVersion}

	if !root.IsMapping() {
		p.errf(root, "top level of configuration should be a mapping, found %s", root.Kind)
		return cfg
	}

	version, ok := root.Get("version").AsInt()
	if !ok {
		p.errf(root, "missing integer 'version' field")
		return cfg
	}
	if version != currentVersion {
		p.errf(root.Get("version"), "unsupported configuration version %d", version)
		return cfg
	}

	for _, key := range root.Keys() {
		switch key {
		case "version", "scopes", "global_macros":
		default:
			p.errf(root.Get(key), "unknown top-level field %q", key)
		}
	}

	if scopes := root.Get("scopes"); !scopes.IsNull() {
		seq, ok := scopes.AsSequence()
		if !ok {
			p.errf(scopes, "'scopes' should be a sequence")
		}
		for _, sn := range seq {
			if s, ok := p.parseScope(sn); ok {
				cfg.Scopes = append(cfg.Scopes, s)
			}
		}
	}

	if globals := root.Get("global_macros"); !globals.IsNull() {
		seq, ok := globals.AsSequence()
		if !ok {
			p.errf(globals, "'global_macros' should be a sequence")
		}
		for _, mn := range seq {
			if m, ok := p.parseMacro(mn); ok {
				cfg.GlobalMacros = append(cfg.GlobalMacros, m)
			}
		}
	}

	return cfg
}

func (p *parser) parseScope(n *Node) (macros.Scope, bool) {
	var s macros.Scope

	if !n.IsMapping() {
		p.errf(n, "scope should be a mapping")
		return s, false
	}

	for _, key := range n.Keys() {
		switch key {
		case "window_class":
			s.WindowClass = p.parseStringMatch(n.Get(key))
		case "window_name":
			s.WindowName = p.parseStringMatch(n.Get(key))
		case "executable_path":
			s.ExecutablePath = p.parseStringMatch(n.Get(key))
		case "executable_basename":
			s.ExecutableBasename = p.parseStringMatch(n.Get(key))
		case "macros":
		default:
			p.errf(n.Get(key), "unknown scope field %q", key)
		}
	}

	if s.WindowClass == nil && s.WindowName == nil &&
		s.ExecutablePath == nil && s.ExecutableBasename == nil {
		p.errf(n, "scope specifies no window matchers; use global_macros for macros that apply everywhere")
		return s, false
	}

	if mn := n.Get("macros"); !mn.IsNull() {
		seq, ok := mn.AsSequence()
		if !ok {
			p.errf(mn, "scope 'macros' should be a sequence")
		}
		for _, item := range seq {
			if m, ok := p.parseMacro(item); ok {
				s.Macros = append(s.Macros, m)
			}
		}
	}

	return s, true
}

// parseStringMatch compiles a string matcher from a single-key mapping, the
// key naming the match kind. Returns nil when the node is invalid; the error
// has been recorded.
func (p *parser) parseStringMatch(n *Node) *match.StringMatch {
	if !n.IsMapping() {
		p.errf(n, "string matcher should be a mapping with exactly one of: is, contains, starts_with, ends_with, regex")
		return nil
	}

	keys := n.Keys()
	if len(keys) != 1 {
		p.errf(n, "string matcher should have exactly one key, found %d", len(keys))
		return nil
	}

	kind := match.StringMatchKind(keys[0])
	pattern, ok := n.Get(keys[0]).AsString()
	if !ok {
		p.errf(n.Get(keys[0]), "string matcher pattern should be a string")
		return nil
	}

	m, err := match.NewStringMatch(kind, pattern)
	if err != nil {
		p.errf(n, "string matcher: %v", err)
		return nil
	}
	return m
}

func (p *parser) parseMacro(n *Node) (macros.Macro, bool) {
	var m macros.Macro

	if !n.IsMapping() {
		p.errf(n, "macro should be a mapping")
		return m, false
	}

	for _, key := range n.Keys() {
		switch key {
		case "name", "matching_events", "required_preconditions", "actions":
		default:
			p.errf(n.Get(key), "unknown macro field %q", key)
		}
	}

	if name := n.Get("name"); !name.IsNull() {
		s, ok := name.AsString()
		if !ok {
			p.errf(name, "macro 'name' should be a string")
		}
		m.Name = s
	}

	events, ok := n.Get("matching_events").AsSequence()
	if !ok {
		p.errf(n, "macro is missing a 'matching_events' list")
		return m, false
	}
	if len(events) == 0 {
		p.errf(n.Get("matching_events"), "macro 'matching_events' must contain at least one event matcher")
		return m, false
	}
	for _, en := range events {
		if em, ok := p.parseEventMatcher(en); ok {
			m.MatchingEvents = append(m.MatchingEvents, em)
		}
	}

	m.Preconditions = p.parsePreconditionList(n.Get("required_preconditions"))

	actions, ok := n.Get("actions").AsSequence()
	if !ok {
		p.errf(n, "macro is missing an 'actions' list")
		return m, false
	}
	if len(actions) == 0 {
		p.errf(n.Get("actions"), "macro 'actions' must contain at least one action")
		return m, false
	}
	for _, an := range actions {
		if a, ok := p.parseAction(an); ok {
			m.Actions = append(m.Actions, a)
		}
	}

	return m, true
}

func (p *parser) parseEventMatcher(n *Node) (macros.EventMatcher, bool) {
	var em macros.EventMatcher

	if !n.IsMapping() {
		p.errf(n, "event matcher should be a mapping")
		return em, false
	}

	for _, key := range n.Keys() {
		switch key {
		case "type", "data", "required_preconditions":
		default:
			p.errf(n.Get(key), "unknown event matcher field %q", key)
		}
	}

	typ, ok := n.Get("type").AsString()
	if !ok {
		p.errf(n, "event matcher is missing a string 'type' field")
		return em, false
	}
	if typ != "midi" {
		p.errf(n.Get("type"), "unknown event matcher type %q", typ)
		return em, false
	}

	data := n.Get("data")
	if !data.IsMapping() {
		p.errf(n, "event matcher is missing a 'data' mapping")
		return em, false
	}

	midi, ok := p.parseMidiEventData(data)
	if !ok {
		return em, false
	}
	em.Midi = midi
	em.Preconditions = p.parsePreconditionList(n.Get("required_preconditions"))

	return em, true
}

func (p *parser) parseMidiEventData(data *Node) (macros.MidiEventMatcher, bool) {
	var m macros.MidiEventMatcher

	typ, ok := data.Get("message_type").AsString()
	if !ok {
		p.errf(data, "midi event matcher is missing a string 'message_type' field")
		return m, false
	}

	fields, known := midiEventFields[contracts.MessageType(typ)]
	if !known {
		p.errf(data.Get("message_type"), "unknown message_type %q", typ)
		return m, false
	}
	m.MessageType = contracts.MessageType(typ)

	ok = true
	for _, key := range data.Keys() {
		if key == "message_type" {
			continue
		}

		b, allowed := fields[key]
		if !allowed {
			p.errf(data.Get(key), "field %q does not apply to message_type %q", key, typ)
			ok = false
			continue
		}

		v := p.compileValueMatch(data.Get(key), key, b)

		switch key {
		case "channel":
			m.Channel = v
		case "key":
			m.Key = v
		case "velocity":
			m.Velocity = v
		case "control":
			m.Control = v
		case "value":
			m.Value = v
		case "program":
			m.Program = v
		}
	}

	return m, ok
}

// compileValueMatch turns a raw node into a value matcher for a field with
// the given bounds. Missing and null nodes compile to nil, which matches
// anything. Invalid shapes and out-of-range integers are recorded as errors
// naming the field.
func (p *parser) compileValueMatch(n *Node, field string, b bounds) match.Value {
	if n.IsNull() {
		return nil
	}

	switch n.Kind {
	case KindInt:
		v, _ := n.AsInt()
		if !b.contains(int(v)) {
			p.errf(n, "field %q: value %d out of range %d-%d", field, v, b.min, b.max)
			return nil
		}
		return match.Single(v)

	case KindSequence:
		seq, _ := n.AsSequence()
		if len(seq) == 0 {
			p.errf(n, "field %q: empty list cannot match anything", field)
			return nil
		}

		var union match.Union
		var ints match.List
		allInts := true

		for _, el := range seq {
			switch el.Kind {
			case KindInt:
				v, _ := el.AsInt()
				if !b.contains(int(v)) {
					p.errf(el, "field %q: value %d out of range %d-%d", field, v, b.min, b.max)
					continue
				}
				ints = append(ints, int(v))
				union = append(union, match.Single(v))

			case KindMapping:
				allInts = false
				if r, ok := p.compileRange(el, field, b); ok {
					union = append(union, r)
				}

			default:
				allInts = false
				p.errf(el, "field %q: list elements should be integers or min/max mappings, found %s", field, el.Kind)
			}
		}

		if allInts {
			return ints
		}
		return union

	case KindMapping:
		if r, ok := p.compileRange(n, field, b); ok {
			return r
		}
		return nil
	}

	p.errf(n, "field %q: %s cannot be used as a value matcher", field, n.Kind)
	return nil
}

func (p *parser) compileRange(n *Node, field string, b bounds) (match.Range, bool) {
	var r match.Range
	ok := true

	for _, key := range n.Keys() {
		switch key {
		case "min", "max":
		default:
			p.errf(n.Get(key), "field %q: unknown range key %q (only min and max are allowed)", field, key)
			ok = false
		}
	}

	readBound := func(key string) *int {
		bn := n.Get(key)
		if bn == nil {
			return nil
		}
		v, isInt := bn.AsInt()
		if !isInt {
			p.errf(bn, "field %q: range %s should be an integer", field, key)
			ok = false
			return nil
		}
		if !b.contains(int(v)) {
			p.errf(bn, "field %q: range %s %d out of range %d-%d", field, key, v, b.min, b.max)
			ok = false
			return nil
		}
		iv := int(v)
		return &iv
	}

	r.Min = readBound("min")
	r.Max = readBound("max")

	if !ok {
		return r, false
	}

	if r.Min == nil && r.Max == nil {
		p.errf(n, "field %q: range needs at least one of min and max", field)
		return r, false
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		p.errf(n, "field %q: range min %d is greater than max %d", field, *r.Min, *r.Max)
		return r, false
	}

	return r, true
}

func (p *parser) parsePreconditionList(n *Node) []macros.Precondition {
	if n.IsNull() {
		return nil
	}

	seq, ok := n.AsSequence()
	if !ok {
		p.errf(n, "'required_preconditions' should be a sequence")
		return nil
	}

	var out []macros.Precondition
	for _, pn := range seq {
		if pre, ok := p.parsePrecondition(pn); ok {
			out = append(out, pre)
		}
	}
	return out
}

func (p *parser) parsePrecondition(n *Node) (macros.Precondition, bool) {
	var pre macros.Precondition

	if !n.IsMapping() {
		p.errf(n, "precondition should be a mapping")
		return pre, false
	}

	for _, key := range n.Keys() {
		switch key {
		case "type", "invert", "data":
		default:
			p.errf(n.Get(key), "unknown precondition field %q", key)
		}
	}

	typ, ok := n.Get("type").AsString()
	if !ok {
		p.errf(n, "precondition is missing a string 'type' field")
		return pre, false
	}
	if typ != "midi" {
		p.errf(n.Get("type"), "unknown precondition type %q", typ)
		return pre, false
	}

	if inv := n.Get("invert"); !inv.IsNull() {
		v, isBool := inv.AsBool()
		if !isBool {
			p.errf(inv, "precondition 'invert' should be a boolean")
		}
		pre.Invert = v
	}

	data := n.Get("data")
	if !data.IsMapping() {
		p.errf(n, "precondition is missing a 'data' mapping")
		return pre, false
	}

	midi, ok := p.parseMidiPrecondition(data)
	if !ok {
		return pre, false
	}
	pre.Midi = midi

	return pre, true
}

func (p *parser) parseMidiPrecondition(data *Node) (macros.MidiPrecondition, bool) {
	var m macros.MidiPrecondition

	typ, ok := data.Get("condition_type").AsString()
	if !ok {
		p.errf(data, "midi precondition is missing a string 'condition_type' field")
		return m, false
	}

	allowed := map[string]bool{"condition_type": true}
	ok = true

	exact := func(key string, b bounds) uint8 {
		allowed[key] = true
		fn := data.Get(key)
		v, isInt := fn.AsInt()
		if !isInt {
			p.errf(data, "midi precondition %q needs an exact integer %q field", typ, key)
			ok = false
			return 0
		}
		if !b.contains(int(v)) {
			p.errf(fn, "field %q: value %d out of range %d-%d", key, v, b.min, b.max)
			ok = false
			return 0
		}
		return uint8(v)
	}

	switch macros.PreconditionKind(typ) {
	case macros.ConditionNoteOn:
		m.Kind = macros.ConditionNoteOn
		m.Channel = exact("channel", channelBounds)
		m.Key = exact("key", dataByteBounds)

	case macros.ConditionControl:
		m.Kind = macros.ConditionControl
		m.Channel = exact("channel", channelBounds)
		m.Control = exact("control", dataByteBounds)
		allowed["value"] = true
		m.Value = p.compileValueMatch(data.Get("value"), "value", dataByteBounds)

	case macros.ConditionProgram:
		m.Kind = macros.ConditionProgram
		m.Channel = exact("channel", channelBounds)
		allowed["program"] = true
		m.Program = p.compileValueMatch(data.Get("program"), "program", dataByteBounds)

	case macros.ConditionPitchBend:
		m.Kind = macros.ConditionPitchBend
		m.Channel = exact("channel", channelBounds)
		allowed["value"] = true
		m.Value = p.compileValueMatch(data.Get("value"), "value", pitchBendBounds)

	default:
		p.errf(data.Get("condition_type"), "unknown condition_type %q", typ)
		return m, false
	}

	for _, key := range data.Keys() {
		if !allowed[key] {
			p.errf(data.Get(key), "field %q does not apply to condition_type %q", key, typ)
			ok = false
		}
	}

	return m, ok
}

func (p *parser) parseAction(n *Node) (macros.Action, bool) {
	if !n.IsMapping() {
		p.errf(n, "action should be a mapping")
		return nil, false
	}

	for _, key := range n.Keys() {
		switch key {
		case "type", "data":
		default:
			p.errf(n.Get(key), "unknown action field %q", key)
		}
	}

	typ, ok := n.Get("type").AsString()
	if !ok {
		p.errf(n, "action is missing a string 'type' field")
		return nil, false
	}

	data := n.Get("data")

	switch macros.ActionType(typ) {
	case macros.ActionKeySequence:
		return p.parseKeySequence(n, data)
	case macros.ActionEnterText:
		return p.parseEnterText(n, data)
	case macros.ActionShell:
		return p.parseShell(n, data)
	case macros.ActionWait:
		return p.parseWait(n, data)
	case macros.ActionControl:
		return p.parseControl(n, data)
	}

	p.errf(n.Get("type"), "unknown action type %q", typ)
	return nil, false
}

func (p *parser) parseKeySequence(n, data *Node) (macros.Action, bool) {
	// Scalar shorthand: data is the sequence itself.
	if s, ok := data.AsString(); ok {
		return macros.KeySequence{Sequence: s, Count: 1, Delay: defaultKeyDelay}, true
	}

	if !data.IsMapping() {
		p.errf(n, "action key_sequence: data should be a string or a mapping")
		return nil, false
	}

	for _, key := range data.Keys() {
		switch key {
		case "sequence", "count", "delay", "delay_ms":
		default:
			p.errf(data.Get(key), "action key_sequence: unknown field %q", key)
		}
	}

	seq, ok := data.Get("sequence").AsString()
	if !ok {
		p.errf(data, "action key_sequence: data is missing a string 'sequence' field")
		return nil, false
	}

	count, ok := p.parseCount(data, "key_sequence")
	if !ok {
		return nil, false
	}

	return macros.KeySequence{
		Sequence: seq,
		Count:    count,
		Delay:    p.parseDelay(data, "key_sequence"),
	}, true
}

func (p *parser) parseEnterText(n, data *Node) (macros.Action, bool) {
	if s, ok := data.AsString(); ok {
		return macros.EnterText{Text: s, Count: 1, Delay: defaultKeyDelay}, true
	}

	if !data.IsMapping() {
		p.errf(n, "action enter_text: data should be a string or a mapping")
		return nil, false
	}

	for _, key := range data.Keys() {
		switch key {
		case "text", "count", "delay", "delay_ms":
		default:
			p.errf(data.Get(key), "action enter_text: unknown field %q", key)
		}
	}

	text, ok := data.Get("text").AsString()
	if !ok {
		p.errf(data, "action enter_text: data is missing a string 'text' field")
		return nil, false
	}

	count, ok := p.parseCount(data, "enter_text")
	if !ok {
		return nil, false
	}

	return macros.EnterText{
		Text:  text,
		Count: count,
		Delay: p.parseDelay(data, "enter_text"),
	}, true
}

// parseCount reads the optional 'count' field, which must be at least 1 when
// present, defaulting to 1.
func (p *parser) parseCount(data *Node, action string) (int, bool) {
	cn := data.Get("count")
	if cn.IsNull() {
		return 1, true
	}
	v, ok := cn.AsInt()
	if !ok {
		p.errf(cn, "action %s: 'count' should be an integer", action)
		return 0, false
	}
	if v < 1 {
		p.errf(cn, "action %s: 'count' should be at least 1, found %d", action, v)
		return 0, false
	}
	return int(v), true
}

// parseDelay resolves the delay/delay_ms pair. Plain 'delay' is in
// microseconds and wins when present, unless negative, in which case it is
// treated as absent and 'delay_ms' applies.
func (p *parser) parseDelay(data *Node, action string) time.Duration {
	if dn := data.Get("delay"); dn != nil {
		v, ok := dn.AsInt()
		if !ok {
			p.errf(dn, "action %s: 'delay' should be an integer", action)
		} else if v >= 0 {
			return time.Duration(v) * time.Microsecond
		}
	}

	if dn := data.Get("delay_ms"); dn != nil {
		v, ok := dn.AsInt()
		if !ok {
			p.errf(dn, "action %s: 'delay_ms' should be an integer", action)
		} else if v >= 0 {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultKeyDelay
}

func (p *parser) parseShell(n, data *Node) (macros.Action, bool) {
	a := macros.Shell{}

	// Scalar shorthand: data is the command itself.
	if s, ok := data.AsString(); ok {
		a.Command = s
	} else if data.IsMapping() {
		for _, key := range data.Keys() {
			switch key {
			case "command", "args", "env_vars":
			default:
				p.errf(data.Get(key), "action shell: unknown field %q", key)
			}
		}

		cmd, ok := data.Get("command").AsString()
		if !ok {
			p.errf(data, "action shell: data is missing a string 'command' field")
			return nil, false
		}
		a.Command = cmd

		if args := data.Get("args"); !args.IsNull() {
			seq, ok := args.AsSequence()
			if !ok {
				p.errf(args, "action shell: 'args' should be a sequence")
				return nil, false
			}
			for _, an := range seq {
				s, ok := an.AsString()
				if !ok {
					p.errf(an, "action shell: arguments should be strings")
					return nil, false
				}
				a.Args = append(a.Args, s)
			}
		}

		if env := data.Get("env_vars"); !env.IsNull() {
			if !env.IsMapping() {
				p.errf(env, "action shell: 'env_vars' should be a mapping")
				return nil, false
			}
			a.Env = make(map[string]string, len(env.Keys()))
			for _, key := range env.Keys() {
				v, ok := env.Get(key).AsString()
				if !ok {
					p.errf(env.Get(key), "action shell: env var %q should be a string", key)
					return nil, false
				}
				a.Env[key] = v
			}
		}
	} else {
		p.errf(n, "action shell: data should be a string or a mapping")
		return nil, false
	}

	if !filepath.IsAbs(a.Command) {
		p.errf(data, "action shell: command %q should be an absolute path", a.Command)
		return nil, false
	}

	return a, true
}

func (p *parser) parseWait(n, data *Node) (macros.Action, bool) {
	// Scalar shorthand: data is the duration in microseconds.
	if v, ok := data.AsInt(); ok {
		if v < 0 {
			p.errf(data, "action wait: duration should be 0 or more, found %d", v)
			return nil, false
		}
		return macros.Wait{Duration: time.Duration(v) * time.Microsecond}, true
	}

	if !data.IsMapping() {
		p.errf(n, "action wait: data should be an integer or a mapping")
		return nil, false
	}

	for _, key := range data.Keys() {
		switch key {
		case "duration", "duration_ms":
		default:
			p.errf(data.Get(key), "action wait: unknown field %q", key)
		}
	}

	// 'duration' (microseconds) wins unless negative, in which case
	// 'duration_ms' applies.
	if dn := data.Get("duration"); dn != nil {
		v, ok := dn.AsInt()
		if !ok {
			p.errf(dn, "action wait: 'duration' should be an integer")
			return nil, false
		}
		if v >= 0 {
			return macros.Wait{Duration: time.Duration(v) * time.Microsecond}, true
		}
	}

	if dn := data.Get("duration_ms"); dn != nil {
		v, ok := dn.AsInt()
		if !ok {
			p.errf(dn, "action wait: 'duration_ms' should be an integer")
			return nil, false
		}
		if v < 0 {
			p.errf(dn, "action wait: 'duration_ms' should be 0 or more, found %d", v)
			return nil, false
		}
		return macros.Wait{Duration: time.Duration(v) * time.Millisecond}, true
	}

	p.errf(data, "action wait: data needs a 'duration' or 'duration_ms' field")
	return nil, false
}

func (p *parser) parseControl(n, data *Node) (macros.Action, bool) {
	var action string

	// Scalar shorthand: data is the control action itself.
	if s, ok := data.AsString(); ok {
		action = s
	} else if data.IsMapping() {
		for _, key := range data.Keys() {
			switch key {
			case "action":
			default:
				p.errf(data.Get(key), "action control: unknown field %q", key)
			}
		}
		s, ok := data.Get("action").AsString()
		if !ok {
			p.errf(data, "action control: data is missing a string 'action' field")
			return nil, false
		}
		action = s
	} else {
		p.errf(n, "action control: data should be a string or a mapping")
		return nil, false
	}

	switch macros.ControlAction(action) {
	case macros.ControlReloadMacros, macros.ControlRestart, macros.ControlExit:
		return macros.Control{Action: macros.ControlAction(action)}, true
	}

	p.errf(data, "action control: unknown control action %q", action)
	return nil, false
}
