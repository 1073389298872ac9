// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// BillingService defines the primary port for billing identifier operations.
type BillingService interface {
	// GenerateID composes a new identifier stamped with the current year.
	GenerateID(ctx context.Context, req GenerateIDRequest) (*GenerateIDResponse, error)

	// ValidateID checks an identifier's structure and check digits.
	// Failures are *billing.Error values carrying a machine-readable code.
	ValidateID(ctx context.Context, candidate string) (*BillingID, error)

	// GenerateAcronym derives the six-character client acronym for a name.
	GenerateAcronym(ctx context.Context, name string) string

	// ListServices returns the service catalogue.
	ListServices(ctx context.Context) []*ServiceType

	// ListPhases returns the project phases.
	ListPhases(ctx context.Context) []*ProjectPhase
}

// GenerateIDRequest contains parameters for generating an identifier.
// Exactly one payload source must be set: Sequential, ClientName or Acronym.
type GenerateIDRequest struct {
	ServiceCode string
	Sequential  *int
	ClientName  string
	Acronym     string
	Phase       string // optional, client-based identifiers only
}

// GenerateIDResponse contains the generated identifier and its parts.
type GenerateIDResponse struct {
	ID          string `json:"id" yaml:"id"`
	BaseCode    string `json:"base_code" yaml:"base_code"`
	CheckDigits string `json:"check_digits" yaml:"check_digits"`
	Payload     string `json:"payload" yaml:"payload"`
	Phase       string `json:"phase,omitempty" yaml:"phase,omitempty"`
	Year        int    `json:"year" yaml:"year"`
}

// BillingID represents a validated identifier at the port boundary.
type BillingID struct {
	ID                 string        `json:"id" yaml:"id"`
	ServiceCode        string        `json:"service_code" yaml:"service_code"`
	ServiceDescription string        `json:"service" yaml:"service"`
	Year               int           `json:"year" yaml:"year"`
	Payload            string        `json:"payload" yaml:"payload"`
	Sequential         *int          `json:"sequential,omitempty" yaml:"sequential,omitempty"`
	Phase              *ProjectPhase `json:"phase,omitempty" yaml:"phase,omitempty"`
	CheckDigits        string        `json:"check_digits" yaml:"check_digits"`
}

// ServiceType represents a service catalogue entry.
type ServiceType struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// ProjectPhase represents a project phase marker.
type ProjectPhase struct {
	Code           string `json:"code" yaml:"code"`
	Description    string `json:"description" yaml:"description"`
	PaymentPercent int    `json:"payment_percent" yaml:"payment_percent"`
}
