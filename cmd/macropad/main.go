package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/leandrodaf/macropad/internal/config"
	"github.com/leandrodaf/macropad/internal/engine"
	"github.com/leandrodaf/macropad/internal/focus"
	"github.com/leandrodaf/macropad/internal/keyboard"
	"github.com/leandrodaf/macropad/internal/logger"
	"github.com/leandrodaf/macropad/internal/macros"
	"github.com/leandrodaf/macropad/internal/midi"
	"github.com/leandrodaf/macropad/internal/shell"
	"github.com/leandrodaf/macropad/sdk/contracts"
)

// eventQueueSize bounds the parsed-message queue between the MIDI ingest and
// the dispatcher. When action sequences fall behind, newer messages are
// dropped rather than stalling ingest.
const eventQueueSize = 128

var (
	configPath string
	deviceName string
	debug      bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to configuration file (default: user config directory)")
	flag.StringVar(&deviceName, "device", "", "MIDI input device name, matched as a substring (default: first available)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
}

func main() {
	flag.Parse()

	log := logger.NewZapLogger()
	if debug {
		log.SetLevel(contracts.DebugLevel)
	}

	switch cmd := flag.Arg(0); cmd {
	case "":
		os.Exit(runDispatcher(log))
	case "list-midi-devices":
		os.Exit(listMidiDevices(log))
	case "monitor":
		os.Exit(runMonitor(log))
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

// resolveConfigPath returns the configuration file to use: the -config flag
// if given, otherwise the first of macropad.yaml / macropad.yml in the
// user's config directory.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining config directory: %w", err)
	}

	base := filepath.Join(dir, "macropad")
	candidates := []string{
		filepath.Join(base, "macropad.yaml"),
		filepath.Join(base, "macropad.yml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no config file found; create %s or pass -config", candidates[0])
}

func loadConfig(path string) (*macros.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return config.Parse(data)
}

// reportConfigErrors prints every collected parse error with the file path.
func reportConfigErrors(path string, err error) {
	fmt.Fprintf(os.Stderr, "Unable to load config file %s:\n", path)
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
}

func listMidiDevices(log contracts.Logger) int {
	client, err := midi.NewMIDIClient(contracts.WithLogger(log))
	if err != nil {
		log.Error("failed to initialize MIDI client", "error", err)
		return 1
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil {
		log.Error("failed to list MIDI devices", "error", err)
		return 1
	}

	fmt.Println("Available MIDI input devices:")
	for _, d := range devices {
		fmt.Printf("  %d: %s\n", d.ID, d.Name)
	}
	return 0
}

func runMonitor(log contracts.Logger) int {
	client, err := midi.NewMIDIClient(contracts.WithLogger(log))
	if err != nil {
		log.Error("failed to initialize MIDI client", "error", err)
		return 1
	}
	defer client.Stop()

	if err := client.SelectDevice(deviceName); err != nil {
		log.Error("failed to select MIDI device", "error", err)
		return 1
	}

	events := make(chan contracts.Message, eventQueueSize)
	if err := client.StartCapture(events); err != nil {
		log.Error("failed to start MIDI capture", "error", err)
		return 1
	}

	fmt.Println("Monitoring MIDI events; press Ctrl+C to exit.")
	engine.NewMonitor(os.Stdout).Run(events)
	return 0
}

func runDispatcher(log contracts.Logger) int {
	path, err := resolveConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The loop runs once per lifetime of a MIDI connection; a restart
	// control action closes the device and comes back around.
	for {
		cfg, err := loadConfig(path)
		if err != nil {
			reportConfigErrors(path, err)
			return 1
		}

		client, err := midi.NewMIDIClient(contracts.WithLogger(log))
		if err != nil {
			log.Error("failed to initialize MIDI client", "error", err)
			return 1
		}

		if err := client.SelectDevice(deviceName); err != nil {
			log.Error("failed to select MIDI device", "error", err)
			client.Stop()
			return 1
		}

		events := make(chan contracts.Message, eventQueueSize)
		if err := client.StartCapture(events); err != nil {
			log.Error("failed to start MIDI capture", "error", err)
			client.Stop()
			return 1
		}

		probe, err := focus.NewProbe(log)
		if err != nil {
			log.Warn("focused-window detection unavailable; only global macros will run", "error", err)
			probe = focus.NoWindowProbe{}
		}

		kb, err := keyboard.NewKeyboard(log)
		if err != nil {
			log.Error("failed to set up keyboard synthesizer", "error", err)
			client.Stop()
			return 1
		}

		eng := engine.New(cfg, probe, kb, shell.New(log), log)
		eng.SetReloadFunc(func() (*macros.Config, error) {
			return loadConfig(path)
		})

		fmt.Println("Starting macropad.")
		fmt.Printf("Using config file: %s\n", path)
		if n := cfg.MacroCount(); n == 1 {
			fmt.Println("There is 1 configured macro.")
		} else {
			fmt.Printf("There are %d configured macros.\n", n)
		}

		sig := eng.Run(events)
		client.Stop()

		if sig == engine.SignalRestart {
			log.Info("restarting")
			continue
		}
		return 0
	}
}
