package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

func TestDecodeChannelMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  gomidi.Message
		want contracts.Message
	}{
		{
			name: "note on",
			raw:  gomidi.Message{0x90, 63, 120},
			want: contracts.NoteOn{Channel: 0, Key: 63, Velocity: 120},
		},
		{
			name: "note on channel 1",
			raw:  gomidi.Message{0x91, 127, 1},
			want: contracts.NoteOn{Channel: 1, Key: 127, Velocity: 1},
		},
		{
			name: "note off",
			raw:  gomidi.Message{0x82, 42, 53},
			want: contracts.NoteOff{Channel: 2, Key: 42, Velocity: 53},
		},
		{
			name: "poly aftertouch",
			raw:  gomidi.Message{0xA0, 60, 90},
			want: contracts.PolyAftertouch{Channel: 0, Key: 60, Value: 90},
		},
		{
			name: "control change channel 15",
			raw:  gomidi.Message{0xBF, 48, 24},
			want: contracts.ControlChange{Channel: 15, Control: 48, Value: 24},
		},
		{
			name: "program change",
			raw:  gomidi.Message{0xC4, 2},
			want: contracts.ProgramChange{Channel: 4, Program: 2},
		},
		{
			name: "channel aftertouch",
			raw:  gomidi.Message{0xD3, 77},
			want: contracts.ChannelAftertouch{Channel: 3, Value: 77},
		},
		{
			name: "pitch bend 14-bit",
			// value = data1 | data2<<7 = 0x59 | 0x04<<7 = 601
			raw:  gomidi.Message{0xE0, 0x59, 0x04},
			want: contracts.PitchBendChange{Channel: 0, Value: 601},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeMessage(tt.raw)
			if got != tt.want {
				t.Errorf("decodeMessage(% X) = %#v; want %#v", []byte(tt.raw), got, tt.want)
			}
		})
	}
}

func TestDecodeSystemMessagesAreOther(t *testing.T) {
	// System realtime / common messages carry no channel data.
	for _, raw := range []gomidi.Message{
		{0xF8},       // timing clock
		{0xFA},       // start
		{0xFC},       // stop
		{0xFE},       // active sensing
	} {
		if got := decodeMessage(raw); got != (contracts.Other{}) {
			t.Errorf("decodeMessage(% X) = %#v; want Other", []byte(raw), got)
		}
	}
}
