// Package state tracks derived MIDI state over the lifetime of the process.
package state

import (
	"github.com/leandrodaf/macropad/sdk/contracts"
)

type noteID struct {
	channel uint8
	key     uint8
}

type controlID struct {
	channel uint8
	control uint8
}

// Tracker ingests every observed MIDI message and maintains per-channel
// derived state: which notes are currently held, the last observed value of
// each control, the last selected program, and the last pitch bend position.
//
// It only records state from the moment messages start coming in; a key that
// was already held when the process started is unknown to the Tracker.
// Entries are never aged out.
//
// A Tracker is owned by the dispatcher goroutine and is not safe for
// concurrent use.
type Tracker struct {
	notesOn    map[noteID]struct{}
	controls   map[controlID]uint8
	programs   map[uint8]uint8
	pitchBends map[uint8]uint16
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		notesOn:    make(map[noteID]struct{}),
		controls:   make(map[controlID]uint8),
		programs:   make(map[uint8]uint8),
		pitchBends: make(map[uint8]uint16),
	}
}

// Process applies a message to the tracked state. A note_on with velocity 0
// is treated as a note_off. Message variants other than note on/off, control
// change, program change and pitch bend leave the state untouched.
func (t *Tracker) Process(msg contracts.Message) {
	switch m := msg.(type) {
	case contracts.NoteOn:
		id := noteID{channel: m.Channel, key: m.Key}
		if m.Velocity == 0 {
			delete(t.notesOn, id)
		} else {
			t.notesOn[id] = struct{}{}
		}

	case contracts.NoteOff:
		delete(t.notesOn, noteID{channel: m.Channel, key: m.Key})

	case contracts.ControlChange:
		t.controls[controlID{channel: m.Channel, control: m.Control}] = m.Value

	case contracts.ProgramChange:
		t.programs[m.Channel] = m.Program

	case contracts.PitchBendChange:
		t.pitchBends[m.Channel] = m.Value
	}
}

// IsNoteOn reports whether the given key is currently held on the channel.
func (t *Tracker) IsNoteOn(channel, key uint8) bool {
	_, ok := t.notesOn[noteID{channel: channel, key: key}]
	return ok
}

// Control returns the last observed value for a control, if any.
func (t *Tracker) Control(channel, control uint8) (uint8, bool) {
	v, ok := t.controls[controlID{channel: channel, control: control}]
	return v, ok
}

// Program returns the last observed program for a channel, if any.
func (t *Tracker) Program(channel uint8) (uint8, bool) {
	v, ok := t.programs[channel]
	return v, ok
}

// PitchBend returns the last observed pitch bend value for a channel, if any.
func (t *Tracker) PitchBend(channel uint8) (uint16, bool) {
	v, ok := t.pitchBends[channel]
	return v, ok
}
