// Package billing contains the pure business logic for billing identifiers.
// This is part of the Functional Core - no I/O, only pure functions.
package billing

// Service is an entry of the service catalogue.
type Service struct {
	Code        string
	Description string
}

// Phase is a project phase marker used by client-based identifiers.
type Phase struct {
	Code           string
	Description    string
	PaymentPercent int
}

// services is ordered as presented to users.
var services = []Service{
	{Code: "WS", Description: "Institutional website development"},
	{Code: "EC", Description: "Online stores / e-commerce"},
	{Code: "SW", Description: "Custom web systems"},
	{Code: "AP", Description: "Mobile applications"},
	{Code: "HD", Description: "Hosting and domains"},
	{Code: "MS", Description: "Maintenance and support"},
	{Code: "MD", Description: "SEO and digital marketing"},
	{Code: "DG", Description: "Graphic design and UX/UI"},
	{Code: "CT", Description: "Technology consulting"},
	{Code: "TR", Description: "Training and courses"},
}

var phases = []Phase{
	{Code: "E", Description: "Entry (down payment)", PaymentPercent: 50},
	{Code: "D", Description: "Development milestone", PaymentPercent: 30},
	{Code: "F", Description: "Final delivery", PaymentPercent: 20},
	{Code: "M", Description: "Monthly maintenance", PaymentPercent: 100},
}

var (
	servicesByCode = indexServices(services)
	phasesByCode   = indexPhases(phases)
)

func indexServices(list []Service) map[string]Service {
	m := make(map[string]Service, len(list))
	for _, s := range list {
		m[s.Code] = s
	}
	return m
}

func indexPhases(list []Phase) map[string]Phase {
	m := make(map[string]Phase, len(list))
	for _, p := range list {
		m[p.Code] = p
	}
	return m
}

// LookupService returns the catalogue entry for an upper-case service code.
func LookupService(code string) (Service, bool) {
	s, ok := servicesByCode[code]
	return s, ok
}

// LookupPhase returns the phase for an upper-case phase code.
func LookupPhase(code string) (Phase, bool) {
	p, ok := phasesByCode[code]
	return p, ok
}

// Services returns a copy of the service catalogue in display order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Phases returns a copy of the phase table in display order.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// IsPhaseMarker reports whether b is one of the phase suffix letters.
func IsPhaseMarker(b byte) bool {
	_, ok := phasesByCode[string(b)]
	return ok
}
