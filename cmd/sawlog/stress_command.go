// FILE: lixenwraith/sawlog/cmd/sawlog/stress_command.go
package main

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/sawlog"
)

const messageChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

type stressOptions struct {
	producers  int
	lines      int
	maxMessage int
	maxPause   time.Duration
	timeout    time.Duration
}

func newStressCommand(opts *loggerOptions) *cobra.Command {
	so := stressOptions{}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Log from many goroutines at once and report throughput",
		Long: "Each producer logs at its own severity (producer index modulo 5, plus one) " +
			"with random pauses between lines. A summary is printed to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.producers <= 0 || so.lines <= 0 {
				return fmt.Errorf("producers and lines must be positive")
			}
			logger, err := opts.build()
			if err != nil {
				return err
			}
			return runStress(cmd, logger, so)
		},
	}

	cmd.Flags().IntVarP(&so.producers, "producers", "p", 5, "Number of producer goroutines")
	cmd.Flags().IntVarP(&so.lines, "lines", "n", 1000, "Lines per producer")
	cmd.Flags().IntVar(&so.maxMessage, "max-message", 200, "Maximum random payload length")
	cmd.Flags().DurationVar(&so.maxPause, "max-pause", time.Millisecond, "Upper bound of the random pause between lines")
	cmd.Flags().DurationVar(&so.timeout, "shutdown-timeout", 10*time.Second, "Time allowed for the final drain")
	return cmd
}

func runStress(cmd *cobra.Command, logger *sawlog.Logger, so stressOptions) error {
	start := time.Now()

	var wg sync.WaitGroup
	for p := 0; p < so.producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(p)))
			sev := sawlog.Severity(p%5 + 1)
			for i := 0; i < so.lines; i++ {
				logger.Emit(sev, sawlog.Caller(0), "producer=%d seq=%d %s", p, i, randomMessage(rng, so.maxMessage))
				if so.maxPause > 0 && rng.Intn(4) == 0 {
					time.Sleep(time.Duration(rng.Int63n(int64(so.maxPause))))
				}
			}
		}(p)
	}
	wg.Wait()
	produced := time.Since(start)

	if err := logger.Shutdown(so.timeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	total := time.Since(start)
	stats := logger.Stats()

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "producers:    %d x %d lines\n", so.producers, so.lines)
	fmt.Fprintf(out, "produced in:  %v\n", produced.Round(time.Millisecond))
	fmt.Fprintf(out, "drained in:   %v\n", total.Round(time.Millisecond))
	if total > 0 {
		fmt.Fprintf(out, "throughput:   %.0f lines/s\n", float64(stats.Written)/total.Seconds())
	}
	fmt.Fprintf(out, "written:      %d\n", stats.Written)
	fmt.Fprintf(out, "write errors: %d\n", stats.WriteErrors)
	return nil
}

func randomMessage(rng *rand.Rand, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	n := rng.Intn(maxLen) + 1
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(messageChars[rng.Intn(len(messageChars))])
	}
	return sb.String()
}
