package engine

import (
	"fmt"
	"io"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// Monitor is the alternative event consumer used by the monitor subcommand:
// it formats every parsed message for human inspection and never executes
// actions or consults scopes.
type Monitor struct {
	w io.Writer
}

// NewMonitor creates a monitor writing to w.
func NewMonitor(w io.Writer) *Monitor {
	return &Monitor{w: w}
}

// Run prints messages until the event channel closes.
func (m *Monitor) Run(events <-chan contracts.Message) {
	for msg := range events {
		if line := FormatMessage(msg); line != "" {
			fmt.Fprintln(m.w, line)
		}
	}
}

// FormatMessage renders a parsed message in a stable single-line form.
// Unrecognized messages render as the empty string and are not printed.
func FormatMessage(msg contracts.Message) string {
	switch m := msg.(type) {
	case contracts.NoteOn:
		return fmt.Sprintf("note_on channel=%d key=%d velocity=%d", m.Channel, m.Key, m.Velocity)
	case contracts.NoteOff:
		return fmt.Sprintf("note_off channel=%d key=%d velocity=%d", m.Channel, m.Key, m.Velocity)
	case contracts.PolyAftertouch:
		return fmt.Sprintf("poly_aftertouch channel=%d key=%d value=%d", m.Channel, m.Key, m.Value)
	case contracts.ControlChange:
		return fmt.Sprintf("control_change channel=%d control=%d value=%d", m.Channel, m.Control, m.Value)
	case contracts.ProgramChange:
		return fmt.Sprintf("program_change channel=%d program=%d", m.Channel, m.Program)
	case contracts.ChannelAftertouch:
		return fmt.Sprintf("channel_aftertouch channel=%d value=%d", m.Channel, m.Value)
	case contracts.PitchBendChange:
		return fmt.Sprintf("pitch_bend_change channel=%d value=%d", m.Channel, m.Value)
	}
	return ""
}
