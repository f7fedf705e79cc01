// Package focus provides the focused-window probe. Platform adapters are
// selected by operating system; on platforms without one the engine sees
// "no window" and only global macros run.
package focus

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/macropad/internal/focus/focusx11"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ErrUnsupportedOS is returned when no focus probe exists for the current
// operating system.
var ErrUnsupportedOS = errors.New("no focus probe for operating system")

// probeInitializers maps OS names to corresponding focus probe initializers.
var probeInitializers = map[string]func(contracts.Logger) (contracts.FocusProbe, error){
	"linux": focusx11.NewProbe,
}

// NewProbe initializes a focus probe for the current operating system.
func NewProbe(log contracts.Logger) (contracts.FocusProbe, error) {
	if initializer, exists := probeInitializers[runtime.GOOS]; exists {
		return initializer(log)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

// NoWindowProbe is a probe that always reports no focused window. It is the
// fallback when no platform probe is available, restricting matching to
// global macros.
type NoWindowProbe struct{}

var _ contracts.FocusProbe = NoWindowProbe{}

// FocusedWindow always returns nil.
func (NoWindowProbe) FocusedWindow() (*contracts.FocusedWindow, error) {
	return nil, nil
}
