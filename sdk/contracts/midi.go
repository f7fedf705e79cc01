package contracts

// MessageType identifies the variant of a parsed MIDI message. The values
// double as the message_type constants accepted in configuration files.
type MessageType string

const (
	MessageNoteOn            MessageType = "note_on"
	MessageNoteOff           MessageType = "note_off"
	MessagePolyAftertouch    MessageType = "poly_aftertouch"
	MessageControlChange     MessageType = "control_change"
	MessageProgramChange     MessageType = "program_change"
	MessageChannelAftertouch MessageType = "channel_aftertouch"
	MessagePitchBendChange   MessageType = "pitch_bend_change"
	MessageOther             MessageType = "other"
)

// Message is a parsed MIDI channel message. Channel is always 0-15; 7-bit
// data fields are 0-127; pitch bend is 14-bit, 0-16383.
type Message interface {
	Type() MessageType
}

// NoteOn is sent when a key is pressed down.
type NoteOn struct {
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// NoteOff is sent when a key is released.
type NoteOff struct {
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// PolyAftertouch reports pressure on a specific key after the initial press.
type PolyAftertouch struct {
	Channel uint8
	Key     uint8
	Value   uint8
}

// ControlChange reports a control (fader, knob, button) changing value.
type ControlChange struct {
	Channel uint8
	Control uint8
	Value   uint8
}

// ProgramChange reports the selected program/patch changing.
type ProgramChange struct {
	Channel uint8
	Program uint8
}

// ChannelAftertouch reports channel-wide key pressure.
type ChannelAftertouch struct {
	Channel uint8
	Value   uint8
}

// PitchBendChange reports the pitch bender position, 14-bit.
type PitchBendChange struct {
	Channel uint8
	Value   uint16
}

// Other is the catch-all for messages the engine does not match on.
type Other struct{}

func (NoteOn) Type() MessageType            { return MessageNoteOn }
func (NoteOff) Type() MessageType           { return MessageNoteOff }
func (PolyAftertouch) Type() MessageType    { return MessagePolyAftertouch }
func (ControlChange) Type() MessageType     { return MessageControlChange }
func (ProgramChange) Type() MessageType     { return MessageProgramChange }
func (ChannelAftertouch) Type() MessageType { return MessageChannelAftertouch }
func (PitchBendChange) Type() MessageType   { return MessagePitchBendChange }
func (Other) Type() MessageType             { return MessageOther }

// MIDIClient defines an interface for MIDI input operations.
type MIDIClient interface {
	// ListDevices lists all available MIDI input devices.
	ListDevices() ([]DeviceInfo, error)
	// SelectDevice selects a MIDI input device for capture. An empty name
	// selects the first available device; otherwise the first device whose
	// name contains the given string is selected.
	SelectDevice(name string) error
	// StartCapture starts capturing parsed messages and sends them to the
	// given channel. The send never blocks: if the channel is full the
	// message is dropped with a logged warning.
	StartCapture(events chan<- Message) error
	// Stop stops capture and releases the input port and driver.
	Stop() error
}
