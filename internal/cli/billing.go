package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/billid/internal/ports/primary"
	"github.com/example/billid/internal/wire"
)

func errInvalidOutput(format string) error {
	return fmt.Errorf("invalid output format '%s'. Use text, json or yaml", format)
}

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var (
		service string
		seq     int
		client  string
		acr     string
		phase   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new billing identifier",
		Long: `Generate a billing identifier stamped with the current year.

Give exactly one payload: --seq for a sequential identifier, --client to derive
the acronym from a client name, or --acronym for a precomputed one. Client
identifiers accept --phase (E, D, F, M).`,
		Example: `  billid generate --service WS --seq 42
  billid generate --service SW --client "Padaria do João" --phase E`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			if service == "" {
				service = wire.Config().DefaultService
			}
			if service == "" {
				return fmt.Errorf("--service is required (or set default_service in .billid/config.json)")
			}

			req := primary.GenerateIDRequest{
				ServiceCode: service,
				ClientName:  client,
				Acronym:     acr,
				Phase:       phase,
			}
			if cmd.Flags().Changed("seq") {
				req.Sequential = &seq
			}

			if _, err := wire.BillingAdapterWithOutput(cmd.OutOrStdout(), format).Generate(ctx, req); err != nil {
				return fmt.Errorf("failed to generate billing id: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", "", "Service code (WS, EC, SW, AP, HD, MS, MD, DG, CT, TR)")
	cmd.Flags().IntVar(&seq, "seq", 0, "Sequential number (0-999999)")
	cmd.Flags().StringVarP(&client, "client", "c", "", "Client or company name")
	cmd.Flags().StringVar(&acr, "acronym", "", "Precomputed six-character client acronym")
	cmd.Flags().StringVarP(&phase, "phase", "p", "", "Project phase (E, D, F, M)")

	return cmd
}

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [id...]",
		Short: "Validate billing identifiers",
		Long: `Validate the structure and check characters of one or more identifiers.

Identifiers whose 11th character is a phase letter (E, D, F, M) are read as
phased identifiers carrying a single check character.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			adapter := wire.BillingAdapterWithOutput(cmd.OutOrStdout(), format)
			invalid := 0
			for _, candidate := range args {
				if _, err := adapter.Validate(ctx, candidate); err != nil {
					invalid++
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d identifier(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
}

// AcronymCmd returns the acronym command
func AcronymCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acronym [name...]",
		Short: "Show the client acronym derived from a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			_, err = wire.BillingAdapterWithOutput(cmd.OutOrStdout(), format).Acronym(context.Background(), name)
			return err
		},
	}
}

// ServicesCmd returns the services command
func ServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List service types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return wire.BillingAdapterWithOutput(cmd.OutOrStdout(), format).ListServices(context.Background())
		},
	}
}

// PhasesCmd returns the phases command
func PhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List project phases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return wire.BillingAdapterWithOutput(cmd.OutOrStdout(), format).ListPhases(context.Background())
		},
	}
}
