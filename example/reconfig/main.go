// FILE: example/reconfig/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sawlog"
)

// Rapid reconfiguration while a producer logs constantly. Every line must
// land whole in exactly one of the destinations.
func main() {
	var count atomic.Int64

	dir, err := os.MkdirTemp("", "sawlog-reconfig")
	if err != nil {
		fmt.Printf("temp dir error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	logger := sawlog.NewLogger()
	if err := logger.ApplyConfigString("color=never"); err != nil {
		fmt.Printf("initial config error: %v\n", err)
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			logger.Info("test log %d", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Alternate between files and toggle formatting
	for i := 0; i < 10; i++ {
		out := filepath.Join(dir, fmt.Sprintf("part-%d.log", i%3))
		shift := fmt.Sprintf("producer_shift=%d", i%4)
		if err := logger.ApplyConfigString("output="+out, shift); err != nil {
			fmt.Printf("reconfig error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	close(stop)
	<-done

	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Printf("shutdown error: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("attempted: %d written: %d write errors: %d\n", count.Load(), stats.Written, stats.WriteErrors)
}
