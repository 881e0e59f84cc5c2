package main

import (
	"fmt"
	"os"
	"time"
)

// startProgress prints a heartbeat to stderr while a slow call runs. The
// returned func stops it. Output goes to stderr so piped stdout stays clean.
func startProgress(label string) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()
		start := time.Now()
		fmt.Fprintf(os.Stderr, "%s...\n", label)
		for {
			select {
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "%s... (%ds)\n", label, int(time.Since(start).Seconds()))
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
