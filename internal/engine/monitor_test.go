package engine

import (
	"strings"
	"testing"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		msg  contracts.Message
		want string
	}{
		{contracts.NoteOn{Channel: 0, Key: 33, Velocity: 64}, "note_on channel=0 key=33 velocity=64"},
		{contracts.NoteOff{Channel: 2, Key: 42, Velocity: 53}, "note_off channel=2 key=42 velocity=53"},
		{contracts.PolyAftertouch{Channel: 1, Key: 60, Value: 20}, "poly_aftertouch channel=1 key=60 value=20"},
		{contracts.ControlChange{Channel: 15, Control: 48, Value: 24}, "control_change channel=15 control=48 value=24"},
		{contracts.ProgramChange{Channel: 4, Program: 2}, "program_change channel=4 program=2"},
		{contracts.ChannelAftertouch{Channel: 0, Value: 99}, "channel_aftertouch channel=0 value=99"},
		{contracts.PitchBendChange{Channel: 3, Value: 8192}, "pitch_bend_change channel=3 value=8192"},
		{contracts.Other{}, ""},
	}

	for _, tt := range tests {
		if got := FormatMessage(tt.msg); got != tt.want {
			t.Errorf("FormatMessage(%T) = %q; want %q", tt.msg, got, tt.want)
		}
	}
}

func TestMonitorWritesLines(t *testing.T) {
	var out strings.Builder
	m := NewMonitor(&out)

	events := make(chan contracts.Message, 3)
	events <- contracts.NoteOn{Channel: 0, Key: 1, Velocity: 2}
	events <- contracts.Other{}
	events <- contracts.ProgramChange{Channel: 1, Program: 7}
	close(events)

	m.Run(events)

	want := "note_on channel=0 key=1 velocity=2\nprogram_change channel=1 program=7\n"
	if out.String() != want {
		t.Errorf("monitor output = %q; want %q", out.String(), want)
	}
}
