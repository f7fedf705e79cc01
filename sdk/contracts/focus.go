package contracts

// FocusedWindow describes the window that currently has input focus.
type FocusedWindow struct {
	WindowClass string
	WindowName  string

	// ExecutablePath is the absolute path of the process owning the window,
	// where the platform adapter can determine it; empty otherwise.
	ExecutablePath string

	// ExecutableBasename is the final path element of ExecutablePath; empty
	// when the path is unknown.
	ExecutableBasename string
}

// FocusProbe reports the currently focused window.
type FocusProbe interface {
	// FocusedWindow returns the focused window descriptor, or nil when no
	// window is focused or focus cannot be determined.
	FocusedWindow() (*FocusedWindow, error)
}
