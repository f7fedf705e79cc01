// Package shell spawns external programs on behalf of shell actions.
package shell

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/leandrodaf/macropad/sdk/contracts"
)

// Spawner starts subprocesses without waiting for them.
type Spawner struct {
	log contracts.Logger
}

var _ contracts.Shell = (*Spawner)(nil)

// New creates a Spawner.
func New(log contracts.Logger) *Spawner {
	return &Spawner{log: log}
}

// Spawn starts command with args. The given environment variables are
// merged over the inherited environment; on key collisions the given value
// wins because it appears later. Output is discarded and the process is
// reaped in the background.
func (s *Spawner) Spawn(command string, args []string, env map[string]string) error {
	cmd := exec.Command(command, args...)

	if len(env) > 0 {
		merged := os.Environ()
		for k, v := range env {
			merged = append(merged, k+"="+v)
		}
		cmd.Env = merged
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", command, err)
	}

	s.log.Debug("spawned process", "command", command, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.Debug("spawned process exited", "command", command, "error", err)
		}
	}()

	return nil
}
