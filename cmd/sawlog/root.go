// FILE: lixenwraith/sawlog/cmd/sawlog/root.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/sawlog"
)

// loggerOptions are the flags shared by every command that logs
type loggerOptions struct {
	configPath string
	overrides  []string
}

// build creates a logger from the config file, then applies key=value overrides
func (o *loggerOptions) build() (*sawlog.Logger, error) {
	cfg, err := sawlog.NewConfigFromFile(o.configPath)
	if err != nil {
		return nil, err
	}
	logger := sawlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if len(o.overrides) > 0 {
		if err := logger.ApplyConfigString(o.overrides...); err != nil {
			return nil, fmt.Errorf("apply overrides: %w", err)
		}
	}
	return logger, nil
}

func newRootCommand() *cobra.Command {
	opts := &loggerOptions{}

	rootCmd := &cobra.Command{
		Use:           "sawlog",
		Short:         "Exercise the sawlog line logger",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "sawlog.toml", "Configuration file path ([log] table)")
	rootCmd.PersistentFlags().StringArrayVarP(&opts.overrides, "set", "s", nil, "Override a configuration key (key=value, repeatable)")

	rootCmd.AddCommand(newStressCommand(opts))
	rootCmd.AddCommand(newSampleCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}
