//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals cancel a running conversion. SIGTERM comes from container
// runtimes and CI runners stopping the job.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
