//go:build windows

package main

import "os"

// shutdownSignals cancel a running conversion.
var shutdownSignals = []os.Signal{os.Interrupt}
