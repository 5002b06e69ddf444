// FILE: lixenwraith/sawlog/cmd/sawlog/sample_command.go
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/sawlog"
)

func newSampleCommand(opts *loggerOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Write one line per severity and a value dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.build()
			if err != nil {
				return err
			}

			logger.Error("disk %s unreachable", "/dev/sdb")
			logger.Warning("retrying in %v", 2*time.Second)
			logger.Notice("service ready")
			logger.Info("accepted connection from %s", "10.0.0.7:51234")
			logger.Debug("buffer at %d%%", 42)
			logger.Dump(sawlog.SeverityDebug, logger.GetConfig())

			return logger.Shutdown()
		},
	}
}
