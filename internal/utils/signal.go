package utils

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// SetupSignalHandling flips shutdownRequested on the first interrupt so
// the run loop can stop between profiles with a clean session teardown.
// A second signal exits immediately.
func SetupSignalHandling(shutdownRequested *int32, onShutdown func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\n⚠️  Received signal %v, finishing the current profile before stopping...\n", sig)
		atomic.StoreInt32(shutdownRequested, 1)

		if onShutdown != nil {
			onShutdown()
		}

		sig = <-sigCh
		PrintErr(fmt.Sprintf("\n❌ Received second signal %v, exiting immediately", sig))
		os.Exit(1)
	}()
}
