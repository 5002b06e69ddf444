// FILE: lixenwraith/sawlog/cmd/sawlog/config_commands.go
package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sawlog"
)

func newConfigCommand(opts *loggerOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(opts))
	configCmd.AddCommand(newConfigValidateCommand(opts))

	return configCmd
}

func newConfigInitCommand(opts *loggerOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration, with any --set overrides applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := opts.configPath
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			logger := sawlog.NewLogger()
			if err := logger.ApplyConfigString(opts.overrides...); err != nil {
				return err
			}
			if err := sawlog.SaveConfig(logger.GetConfig(), target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(opts *loggerOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration file, apply --set overrides and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.build()
			if err != nil {
				return err
			}
			defer logger.Shutdown()

			data, err := toml.Marshal(effectiveConfig{Log: logger.GetConfig()})
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s: ok\n", opts.configPath)
			_, err = out.Write(data)
			return err
		},
	}
}

// effectiveConfig mirrors the file layout, settings under [log]
type effectiveConfig struct {
	Log *sawlog.Config `toml:"log"`
}
