package bulkfilehash

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler sets up graceful shutdown on SIGINT/SIGTERM. The
// returned channel is closed when the first signal arrives; in-flight
// operations notice it at their next interruption point.
func SetupSignalHandler() <-chan struct{} {
	shutdownChan := make(chan struct{})
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGPIPE)

	go func() {
		sig := <-signalChan
		fmt.Fprintf(os.Stderr, "\nReceived signal: %v\n", sig)
		close(shutdownChan)
	}()

	return shutdownChan
}
