package contracts

// DeviceInfo contains information about a MIDI input device.
type DeviceInfo struct {
	ID   int    // Port number as reported by the driver.
	Name string // Device name.
}
