package macros

import "time"

// ActionType identifies the variant of an Action. The values double as the
// action type constants accepted in configuration files.
type ActionType string

const (
	ActionKeySequence ActionType = "key_sequence"
	ActionEnterText   ActionType = "enter_text"
	ActionShell       ActionType = "shell"
	ActionWait        ActionType = "wait"
	ActionControl     ActionType = "control"
)

// Action is run in response to a matched MIDI event. It is a closed sum:
// KeySequence, EnterText, Shell, Wait, or Control.
type Action interface {
	ActionType() ActionType
}

// KeySequence sends a key sequence one or more times. The sequence is a
// space-separated list of chords, each chord a "+"-joined list of X keysym
// names, for example "ctrl+shift+t a b".
type KeySequence struct {
	Sequence string
	Count    int           // How many times to send the whole sequence, >= 1.
	Delay    time.Duration // Pause between chords.
}

// EnterText types text as if entered on a keyboard.
type EnterText struct {
	Text  string
	Count int           // How many times to type the text, >= 1.
	Delay time.Duration // Pause between characters.
}

// Shell runs an external program. The spawned process is not waited on and
// its output is not read.
type Shell struct {
	// Command is the absolute path to the program, without arguments.
	Command string
	// Args are passed to the command as-is.
	Args []string
	// Env is merged over the inherited environment.
	Env map[string]string
}

// Wait blocks the action sequence for the given duration. A zero duration is
// a no-op.
type Wait struct {
	Duration time.Duration
}

// ControlAction is the sub-action of Control.
type ControlAction string

const (
	// ControlReloadMacros rereads the configuration file and swaps in the
	// reloaded macros. Tracked MIDI state and the MIDI device connection are
	// kept as they are.
	ControlReloadMacros ControlAction = "reload_macros"

	// ControlRestart restarts the run loop from scratch, as if the process
	// had been killed and started again. Tracked state is lost and the MIDI
	// device is reopened.
	ControlRestart ControlAction = "restart"

	// ControlExit exits the program.
	ControlExit ControlAction = "exit"
)

// Control signals the owner of the event loop. The signal is returned up the
// stack rather than acted on inside the dispatcher.
type Control struct {
	Action ControlAction
}

func (KeySequence) ActionType() ActionType { return ActionKeySequence }
func (EnterText) ActionType() ActionType   { return ActionEnterText }
func (Shell) ActionType() ActionType       { return ActionShell }
func (Wait) ActionType() ActionType        { return ActionWait }
func (Control) ActionType() ActionType     { return ActionControl }
