package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/billid/internal/config"
	"github.com/example/billid/internal/version"
	"github.com/example/billid/internal/wire"
)

// NewRootCmd builds the billid command tree.
func NewRootCmd() *cobra.Command {
	var opts wire.Options

	rootCmd := &cobra.Command{
		Use:     "billid",
		Short:   "billid - checksum-protected billing identifiers",
		Version: version.String(),
		Long: `billid generates and validates billing identifiers for web technology services.

An identifier is 12 characters: a two-letter service code, the last two digits
of the year, a six-character payload (sequential number or client acronym) and
check characters. Client identifiers may carry a project phase letter.

Run without arguments to start the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return wire.Init(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			wire.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "Directory containing .billid/config.json")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text, json or yaml (default from config)")

	// Add subcommands
	rootCmd.AddCommand(GenerateCmd())
	rootCmd.AddCommand(ValidateCmd())
	rootCmd.AddCommand(AcronymCmd())
	rootCmd.AddCommand(ServicesCmd())
	rootCmd.AddCommand(PhasesCmd())
	rootCmd.AddCommand(MenuCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}

// outputFormat resolves the --output flag; empty means "use config".
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if !config.IsValidOutput(format) {
		return "", errInvalidOutput(format)
	}
	return format, nil
}
