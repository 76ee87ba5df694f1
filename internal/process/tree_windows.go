//go:build windows

package process

import (
	"errors"
	"os/exec"
	"strconv"
)

// Windows has no process groups to join; taskkill walks the tree instead.
func isolate(*exec.Cmd) {}

func killTree(pid int) error {
	err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Non-zero exit means the tree is already gone.
		return nil
	}
	return err
}
