package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// decodeMessage converts a raw driver message into the parsed form. System
// messages and anything else without a channel decode to Other. Note that
// note_on with velocity 0 is passed through as-is; the state tracker gives
// it note_off semantics.
func decodeMessage(msg gomidi.Message) contracts.Message {
	var (
		ch, b1, b2 uint8
		rel        int16
		abs        uint16
	)

	switch {
	case msg.GetNoteOn(&ch, &b1, &b2):
		return contracts.NoteOn{Channel: ch, Key: b1, Velocity: b2}

	case msg.GetNoteOff(&ch, &b1, &b2):
		return contracts.NoteOff{Channel: ch, Key: b1, Velocity: b2}

	case msg.GetPolyAfterTouch(&ch, &b1, &b2):
		return contracts.PolyAftertouch{Channel: ch, Key: b1, Value: b2}

	case msg.GetControlChange(&ch, &b1, &b2):
		return contracts.ControlChange{Channel: ch, Control: b1, Value: b2}

	case msg.GetProgramChange(&ch, &b1):
		return contracts.ProgramChange{Channel: ch, Program: b1}

	case msg.GetAfterTouch(&ch, &b1):
		return contracts.ChannelAftertouch{Channel: ch, Value: b1}

	case msg.GetPitchBend(&ch, &rel, &abs):
		return contracts.PitchBendChange{Channel: ch, Value: abs}
	}

	return contracts.Other{}
}
