package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/billid/internal/menu"
	"github.com/example/billid/internal/wire"
)

// MenuCmd returns the interactive menu command
func MenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}
}

func runMenu(cmd *cobra.Command) error {
	// The menu always prints text; --output only applies to one-shot commands.
	adapter := wire.BillingAdapterWithOutput(cmd.OutOrStdout(), "text")
	m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), adapter, wire.Config().DefaultService)
	return m.Run(context.Background())
}
