package contracts

import "time"

// Keyboard synthesizes keyboard input on the host.
type Keyboard interface {
	// PressKeys synthesizes one chord: a "+"-joined list of X keysym names,
	// for example "ctrl+shift+t", pressed together and released.
	PressKeys(chord string) error

	// EnterText types the given text as if entered on a keyboard, pausing
	// for delay between characters. Escaping of special characters is the
	// synthesizer's responsibility.
	EnterText(text string, delay time.Duration) error
}
