// Package midi implements the MIDI input contract on top of the rtmidi
// driver, decoding raw messages into the parsed form the engine consumes.
package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/leandrodaf/macropad/internal/logger"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// ErrNoDevices is returned when no MIDI input devices are available.
var ErrNoDevices = errors.New("no MIDI input devices available")

// ErrDeviceNotFound is returned when no input device matches the requested
// name.
var ErrDeviceNotFound = errors.New("MIDI input device not found")

// Client is the rtmidi-backed implementation of contracts.MIDIClient.
type Client struct {
	log contracts.Logger

	mu   sync.Mutex
	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()
}

var _ contracts.MIDIClient = (*Client)(nil)

// NewMIDIClient creates a new MIDI client with the specified options,
// initializing the underlying driver.
func NewMIDIClient(opts ...contracts.Option) (contracts.MIDIClient, error) {
	options := applyDefaultOptions(opts...)

	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("initializing rtmidi driver: %w", err)
	}

	return &Client{log: options.Logger, drv: drv}, nil
}

// applyDefaultOptions sets default values for ClientOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) contracts.ClientOptions {
	// levelNotSet marks a LogLevel that no option provided, so a caller's
	// logger keeps the level it already has.
	const levelNotSet contracts.LogLevel = -128

	options := &contracts.ClientOptions{LogLevel: levelNotSet}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == levelNotSet {
		options.LogLevel = contracts.InfoLevel
	} else {
		options.Logger.SetLevel(options.LogLevel)
	}

	return *options
}

// ListDevices lists all available MIDI input devices.
func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := c.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI inputs: %w", err)
	}

	devices := make([]contracts.DeviceInfo, 0, len(ins))
	for _, in := range ins {
		devices = append(devices, contracts.DeviceInfo{
			ID:   in.Number(),
			Name: in.String(),
		})
	}
	return devices, nil
}

// SelectDevice opens the first input device whose name contains name, or the
// first available device when name is empty.
func (c *Client) SelectDevice(name string) error {
	ins, err := c.drv.Ins()
	if err != nil {
		return fmt.Errorf("listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		return ErrNoDevices
	}

	var found drivers.In
	if name == "" {
		found = ins[0]
	} else {
		for _, in := range ins {
			if strings.Contains(in.String(), name) {
				found = in
				break
			}
		}
	}
	if found == nil {
		return fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
	}

	if err := found.Open(); err != nil {
		return fmt.Errorf("opening %q: %w", found.String(), err)
	}

	c.mu.Lock()
	c.in = found
	c.mu.Unlock()

	c.log.Info("MIDI input selected", "device", found.String())
	return nil
}

// StartCapture starts listening on the selected device, decoding each raw
// message and sending it to events. The send never blocks: when the channel
// is full the message is dropped with a warning, so slow action sequences
// cannot stall the ingest path.
func (c *Client) StartCapture(events chan<- contracts.Message) error {
	c.mu.Lock()
	in := c.in
	c.mu.Unlock()

	if in == nil {
		return errors.New("no MIDI input selected")
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		m := decodeMessage(msg)
		select {
		case events <- m:
		default:
			c.log.Warn("event queue full; dropping message", "type", string(m.Type()))
		}
	}, gomidi.HandleError(func(listenErr error) {
		c.log.Warn("MIDI listener error", "error", listenErr)
	}))
	if err != nil {
		return fmt.Errorf("listening on %q: %w", in.String(), err)
	}

	c.mu.Lock()
	c.stop = stop
	c.mu.Unlock()

	return nil
}

// Stop stops capture and releases the input port and driver.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if c.in != nil {
		if err := c.in.Close(); err != nil {
			c.log.Warn("closing MIDI input", "error", err)
		}
		c.in = nil
	}
	return c.drv.Close()
}
