// Package focusx11 queries the focused X11 window through the xdotool and
// xprop command line utilities.
package focusx11

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// Probe reads focused-window information from the X server.
type Probe struct {
	log contracts.Logger
}

var _ contracts.FocusProbe = (*Probe)(nil)

// NewProbe verifies the required utilities are present and returns a probe.
func NewProbe(log contracts.Logger) (contracts.FocusProbe, error) {
	for _, tool := range []string{"xdotool", "xprop"} {
		if _, err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("focus probe needs %s: %w", tool, err)
		}
	}
	return &Probe{log: log}, nil
}

// FocusedWindow returns the descriptor of the active window, or nil when
// there is none. Fields that cannot be determined are left empty rather
// than failing the whole probe.
func (p *Probe) FocusedWindow() (*contracts.FocusedWindow, error) {
	id, err := output("xdotool", "getactivewindow")
	if err != nil || id == "" {
		// No active window (empty desktop, lock screen).
		return nil, nil
	}

	w := &contracts.FocusedWindow{}

	if name, err := output("xdotool", "getwindowname", id); err == nil {
		w.WindowName = name
	}

	if class, err := output("xprop", "-id", id, "WM_CLASS"); err == nil {
		w.WindowClass = parseWindowClass(class)
	}

	if pid, err := output("xdotool", "getwindowpid", id); err == nil {
		if n, err := strconv.Atoi(pid); err == nil {
			if path, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", n)); err == nil {
				w.ExecutablePath = path
				w.ExecutableBasename = filepath.Base(path)
			}
		}
	}

	return w, nil
}

// parseWindowClass extracts the class from xprop output of the form
//
//	WM_CLASS(STRING) = "gedit", "Gedit"
//
// The last quoted value is the class proper; the first is the instance.
func parseWindowClass(line string) string {
	parts := strings.Split(line, "\"")
	if len(parts) < 2 {
		return ""
	}
	// parts alternates between outside and inside quotes; the last inside
	// segment is at len-2.
	return parts[len(parts)-2]
}

func output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
