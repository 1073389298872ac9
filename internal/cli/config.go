package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/billid/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the billid configuration",
		Long:  "Create and inspect .billid/config.json in the working directory",
		// Replaces the root hook: config subcommands must work even when
		// the stored file is invalid, so they never initialize services.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		defaultService string
		fixedYear      int
		output         string
		logLevel       string
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a new config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			if _, err := os.Stat(config.Path(dir)); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.Path(dir))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			cfg := config.Default()
			cfg.DefaultService = strings.ToUpper(defaultService)
			cfg.FixedYear = fixedYear
			if output != "" {
				cfg.Output = output
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			if err := config.SaveConfig(dir, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", config.Path(dir))
			return nil
		},
	}

	cmd.Flags().StringVar(&defaultService, "default-service", "", "Service code used when --service is omitted")
	cmd.Flags().IntVar(&fixedYear, "fixed-year", 0, "Pin the billing year (0 = system clock)")
	cmd.Flags().StringVar(&output, "format", "", "Default output format: text, json or yaml")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			out := cmd.OutOrStdout()
			source := config.Path(dir)

			cfg, err := config.LoadConfig(dir)
			if errors.Is(err, fs.ErrNotExist) {
				cfg, err = config.Default(), nil
				source = "defaults (no config file)"
			}
			if err != nil {
				raw, readErr := os.ReadFile(source)
				if readErr != nil {
					return err
				}
				fmt.Fprintf(out, "Source: %s\n", source)
				fmt.Fprintln(out, strings.TrimRight(string(raw), "\n"))
				return fmt.Errorf("%w (run 'billid config init --force' to replace it)", err)
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Fprintf(out, "Source: %s\n", source)
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
}
