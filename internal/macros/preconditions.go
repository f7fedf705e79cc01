package macros

import (
	"github.com/leandrodaf/macropad/internal/match"
	"github.com/leandrodaf/macropad/internal/state"
)

// PreconditionKind identifies which piece of tracked MIDI state a
// precondition inspects. The values double as the condition_type constants
// accepted in configuration files.
type PreconditionKind string

const (
	ConditionNoteOn    PreconditionKind = "note_on"
	ConditionControl   PreconditionKind = "control"
	ConditionProgram   PreconditionKind = "program"
	ConditionPitchBend PreconditionKind = "pitch_bend"
)

// Precondition is a predicate over tracked MIDI state. Invert flips the
// outcome, with one exception: when the state a precondition asks about has
// never been recorded, the precondition is unsatisfied regardless of Invert.
type Precondition struct {
	Invert bool
	Midi   MidiPrecondition
}

// MidiPrecondition holds the per-kind data of a precondition. Channel is
// always exact; Key, Control likewise where the kind uses them. Value and
// Program are value matchers for the kinds that compare stored values.
type MidiPrecondition struct {
	Kind PreconditionKind

	Channel uint8
	Key     uint8
	Control uint8

	Value   match.Value
	Program match.Value
}

// SatisfiedBy evaluates the precondition against the tracker.
func (p Precondition) SatisfiedBy(t *state.Tracker) bool {
	var ok bool

	switch p.Midi.Kind {
	case ConditionNoteOn:
		ok = t.IsNoteOn(p.Midi.Channel, p.Midi.Key)

	case ConditionControl:
		v, present := t.Control(p.Midi.Channel, p.Midi.Control)
		if !present {
			return false
		}
		ok = match.Matches(p.Midi.Value, int(v))

	case ConditionProgram:
		v, present := t.Program(p.Midi.Channel)
		if !present {
			return false
		}
		ok = match.Matches(p.Midi.Program, int(v))

	case ConditionPitchBend:
		v, present := t.PitchBend(p.Midi.Channel)
		if !present {
			return false
		}
		ok = match.Matches(p.Midi.Value, int(v))

	default:
		return false
	}

	if p.Invert {
		return !ok
	}
	return ok
}
