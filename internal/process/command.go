// Package process builds external commands whose whole process tree is
// terminated when their context ends.
package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on the output pipes after a kill.
// Grandchildren that inherited the pipes would otherwise keep Wait open.
const WaitDelay = 2 * time.Second

// CommandContext is exec.CommandContext with tree-wide cancellation: the
// command runs in its own process group (a job-like tree on Windows) and
// cancelling ctx kills every process in it, not just the direct child.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- callers pass configured commands
	isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return killTree(cmd.Process.Pid)
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}
