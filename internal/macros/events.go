package macros

import (
	"github.com/leandrodaf/macropad/internal/match"
	"github.com/leandrodaf/macropad/internal/state"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// EventMatcher is a predicate over a parsed MIDI message, together with
// preconditions that only apply when this specific matcher matched. Only
// MIDI event matchers exist today; the type field in configuration files
// leaves room for other event sources.
type EventMatcher struct {
	Midi          MidiEventMatcher
	Preconditions []Precondition
}

// MidiEventMatcher matches one message variant. A nil field matcher leaves
// that field unconstrained; only the fields valid for MessageType are ever
// set, the configuration parser rejects the rest.
type MidiEventMatcher struct {
	MessageType contracts.MessageType

	Channel  match.Value
	Key      match.Value
	Velocity match.Value
	Control  match.Value
	Value    match.Value
	Program  match.Value
}

// Matches reports whether the message is of this matcher's variant and every
// specified field matcher accepts the corresponding message field.
func (m *MidiEventMatcher) Matches(msg contracts.Message) bool {
	if msg.Type() != m.MessageType {
		return false
	}

	switch ev := msg.(type) {
	case contracts.NoteOn:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Key, int(ev.Key)) &&
			match.Matches(m.Velocity, int(ev.Velocity))

	case contracts.NoteOff:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Key, int(ev.Key)) &&
			match.Matches(m.Velocity, int(ev.Velocity))

	case contracts.PolyAftertouch:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Key, int(ev.Key)) &&
			match.Matches(m.Value, int(ev.Value))

	case contracts.ControlChange:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Control, int(ev.Control)) &&
			match.Matches(m.Value, int(ev.Value))

	case contracts.ProgramChange:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Program, int(ev.Program))

	case contracts.ChannelAftertouch:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Value, int(ev.Value))

	case contracts.PitchBendChange:
		return match.Matches(m.Channel, int(ev.Channel)) &&
			match.Matches(m.Value, int(ev.Value))
	}

	return false
}

// Matches reports whether the message matches and the matcher's own
// preconditions are satisfied.
func (m *EventMatcher) Matches(msg contracts.Message, t *state.Tracker) bool {
	if !m.Midi.Matches(msg) {
		return false
	}
	for _, p := range m.Preconditions {
		if !p.SatisfiedBy(t) {
			return false
		}
	}
	return true
}
