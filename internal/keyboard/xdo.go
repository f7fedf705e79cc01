package keyboard

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// xdoKeyboard synthesizes input through the xdotool command line utility.
type xdoKeyboard struct {
	log contracts.Logger
}

var _ contracts.Keyboard = (*xdoKeyboard)(nil)

func newXdoKeyboard(log contracts.Logger) (contracts.Keyboard, error) {
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("keyboard synthesizer needs xdotool: %w", err)
	}
	return &xdoKeyboard{log: log}, nil
}

// PressKeys sends one chord, for example "ctrl+shift+t".
func (k *xdoKeyboard) PressKeys(chord string) error {
	if out, err := exec.Command("xdotool", "key", "--clearmodifiers", chord).CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool key %q: %v: %s", chord, err, out)
	}
	return nil
}

// EnterText types text with the given inter-character delay. xdotool's
// --delay flag is in milliseconds; sub-millisecond delays round down to 0,
// which types as fast as the X server accepts.
func (k *xdoKeyboard) EnterText(text string, delay time.Duration) error {
	ms := strconv.Itoa(int(delay / time.Millisecond))
	if out, err := exec.Command("xdotool", "type", "--delay", ms, "--", text).CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool type: %v: %s", err, out)
	}
	return nil
}
