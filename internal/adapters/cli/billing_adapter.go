// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/billid/internal/config"
	"github.com/example/billid/internal/core/billing"
	"github.com/example/billid/internal/ports/primary"
)

const rule = "────────────────────────────────────────"

func okMark() string { return color.New(color.FgGreen).Sprint("✓") }
func badMark() string { return color.New(color.FgRed).Sprint("✗") }
func highlight(s string) string {
	return color.New(color.FgHiCyan, color.Bold).Sprint(s)
}

// BillingAdapter is a thin adapter that translates CLI operations to BillingService calls.
// It depends only on the BillingService interface, enabling easy testing with mocks.
type BillingAdapter struct {
	service primary.BillingService
	out     io.Writer
	format  string
}

// NewBillingAdapter creates a new BillingAdapter writing in the given format
// (text, json or yaml; empty means text).
func NewBillingAdapter(service primary.BillingService, out io.Writer, format string) *BillingAdapter {
	if format == "" {
		format = config.OutputText
	}
	return &BillingAdapter{
		service: service,
		out:     out,
		format:  format,
	}
}

// Generate creates an identifier and prints it. Failures are returned, not printed.
func (a *BillingAdapter) Generate(ctx context.Context, req primary.GenerateIDRequest) (*primary.GenerateIDResponse, error) {
	resp, err := a.service.GenerateID(ctx, req)
	if err != nil {
		return nil, err
	}

	if a.format != config.OutputText {
		return resp, a.encode(resp)
	}

	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "%s CODE GENERATED: %s\n", okMark(), highlight(resp.ID))
	if req.ClientName != "" || req.Acronym != "" {
		fmt.Fprintf(a.out, "  Client acronym: %s\n", resp.Payload)
	}
	if resp.Phase != "" {
		fmt.Fprintf(a.out, "  Phase: %s\n", resp.Phase)
	}
	fmt.Fprintln(a.out, rule)
	return resp, nil
}

// validationReport is the json/yaml shape of a validation outcome.
type validationReport struct {
	Valid    bool               `json:"valid" yaml:"valid"`
	Details  *primary.BillingID `json:"details,omitempty" yaml:"details,omitempty"`
	Code     string             `json:"code,omitempty" yaml:"code,omitempty"`
	Error    string             `json:"error,omitempty" yaml:"error,omitempty"`
	Expected string             `json:"expected,omitempty" yaml:"expected,omitempty"`
	Received string             `json:"received,omitempty" yaml:"received,omitempty"`
}

// Validate checks an identifier and prints the outcome. A rejected identifier
// is reported on the output and also returned as the error.
func (a *BillingAdapter) Validate(ctx context.Context, candidate string) (*primary.BillingID, error) {
	id, err := a.service.ValidateID(ctx, candidate)

	if a.format != config.OutputText {
		report := validationReport{Valid: err == nil, Details: id}
		if err != nil {
			report.Code = string(billing.CodeOf(err))
			report.Error = err.Error()
			var codecErr *billing.Error
			if errors.As(err, &codecErr) {
				report.Expected = codecErr.Expected
				report.Received = codecErr.Received
			}
		}
		if encErr := a.encode(report); encErr != nil {
			return nil, encErr
		}
		return id, err
	}

	fmt.Fprintln(a.out, rule)
	if err != nil {
		fmt.Fprintf(a.out, "%s INVALID CODE!\n", badMark())
		fmt.Fprintf(a.out, "   Reason: %s\n", err)
		fmt.Fprintln(a.out, rule)
		return nil, err
	}

	fmt.Fprintf(a.out, "%s VALID CODE: %s\n", okMark(), highlight(id.ID))
	fmt.Fprintln(a.out, "Details:")
	fmt.Fprintf(a.out, "  - Service: %s (%s)\n", id.ServiceDescription, id.ServiceCode)
	fmt.Fprintf(a.out, "  - Year: %d\n", id.Year)
	if id.Sequential != nil {
		fmt.Fprintf(a.out, "  - Sequential: %s\n", id.Payload)
	} else {
		fmt.Fprintf(a.out, "  - Client acronym: %s\n", id.Payload)
	}
	if id.Phase != nil {
		fmt.Fprintf(a.out, "  - Phase: %s - %s (%d%% of payment)\n", id.Phase.Code, id.Phase.Description, id.Phase.PaymentPercent)
	}
	fmt.Fprintf(a.out, "  - Check digit: %s\n", id.CheckDigits)
	fmt.Fprintln(a.out, rule)
	return id, nil
}

// Acronym prints the acronym derived from a client name.
func (a *BillingAdapter) Acronym(ctx context.Context, name string) (string, error) {
	acr := a.service.GenerateAcronym(ctx, name)
	if a.format != config.OutputText {
		return acr, a.encode(map[string]string{"name": name, "acronym": acr})
	}
	fmt.Fprintf(a.out, "%s -> %s\n", name, highlight(acr))
	return acr, nil
}

// ListServices prints the service catalogue.
func (a *BillingAdapter) ListServices(ctx context.Context) error {
	services := a.service.ListServices(ctx)
	if a.format != config.OutputText {
		return a.encode(services)
	}

	fmt.Fprintf(a.out, "\n%-6s %s\n", "CODE", "SERVICE")
	fmt.Fprintln(a.out, rule)
	for _, s := range services {
		fmt.Fprintf(a.out, "%-6s %s\n", s.Code, s.Description)
	}
	fmt.Fprintln(a.out)
	return nil
}

// ListPhases prints the project phases.
func (a *BillingAdapter) ListPhases(ctx context.Context) error {
	phases := a.service.ListPhases(ctx)
	if a.format != config.OutputText {
		return a.encode(phases)
	}

	fmt.Fprintf(a.out, "\n%-6s %-8s %s\n", "CODE", "PAYMENT", "PHASE")
	fmt.Fprintln(a.out, rule)
	for _, p := range phases {
		fmt.Fprintf(a.out, "%-6s %-8s %s\n", p.Code, fmt.Sprintf("%d%%", p.PaymentPercent), p.Description)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *BillingAdapter) encode(v any) error {
	switch strings.ToLower(a.format) {
	case config.OutputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", a.format)
	}
}
