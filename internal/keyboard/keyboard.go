// Package keyboard provides the keystroke synthesizer. The X11 adapter
// shells out to xdotool; other platforms are not supported yet.
package keyboard

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ErrUnsupportedOS is returned when no synthesizer exists for the current
// operating system.
var ErrUnsupportedOS = errors.New("no keyboard synthesizer for operating system")

// keyboardInitializers maps OS names to corresponding synthesizer
// initializers.
var keyboardInitializers = map[string]func(contracts.Logger) (contracts.Keyboard, error){
	"linux": newXdoKeyboard,
}

// NewKeyboard initializes a keystroke synthesizer for the current operating
// system.
func NewKeyboard(log contracts.Logger) (contracts.Keyboard, error) {
	if initializer, exists := keyboardInitializers[runtime.GOOS]; exists {
		return initializer(log)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
