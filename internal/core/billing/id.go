package billing

import (
	"fmt"
	"strings"
)

const (
	// IDLength is the length of every identifier, standard or phased.
	IDLength = 12

	// PayloadLength is the length of the sequential or acronym part of a base code.
	PayloadLength = 6

	// MaxSequential is the largest sequential number that fits the payload.
	MaxSequential = 999999

	minYear = 2000
	maxYear = 2099
)

// Payload is the last six characters of a base code: either a zero-padded
// sequential number or a client acronym.
type Payload struct {
	sequential int
	acronym    string
	isAcronym  bool
}

// Sequential returns a numeric payload.
func Sequential(n int) Payload {
	return Payload{sequential: n}
}

// Acronym returns a client acronym payload. The value is upper-cased.
func Acronym(s string) Payload {
	return Payload{acronym: strings.ToUpper(s), isAcronym: true}
}

// IsAcronym reports whether the payload is a client acronym.
func (p Payload) IsAcronym() bool {
	return p.isAcronym
}

func (p Payload) render() (string, error) {
	if !p.isAcronym {
		if p.sequential < 0 || p.sequential > MaxSequential {
			return "", newError(CodeSequentialOutOfRange,
				"sequential must be between 0 and %d, got %d", MaxSequential, p.sequential)
		}
		return fmt.Sprintf("%06d", p.sequential), nil
	}
	if len(p.acronym) != PayloadLength || !isAlphanumeric(p.acronym) {
		return "", newError(CodeInvalidAcronym,
			"acronym must be %d characters from A-Z and 0-9, got %q", PayloadLength, p.acronym)
	}
	return p.acronym, nil
}

// ComposeRequest holds the fields an identifier is built from.
// Phase is optional; an empty Phase yields a standard identifier.
type ComposeRequest struct {
	ServiceCode string
	Payload     Payload
	Phase       string
	Year        int
}

// Identifier is a composed billing identifier.
type Identifier struct {
	Value       string
	BaseCode    string
	CheckDigits string
	Phase       string
}

func (id Identifier) String() string {
	return id.Value
}

// Compose builds an identifier from its fields.
// The format is SSYYPPPPPPCC where SS is the service code, YY the last two
// digits of the year, PPPPPP the payload and CC the check digits. A phased
// identifier replaces CC with the phase letter followed by the first check digit.
func Compose(req ComposeRequest) (Identifier, error) {
	service := strings.ToUpper(req.ServiceCode)
	if _, ok := LookupService(service); !ok {
		return Identifier{}, newError(CodeInvalidServiceCode, "service type '%s' is invalid", req.ServiceCode)
	}

	if req.Year < minYear || req.Year > maxYear {
		return Identifier{}, newError(CodeInvalidYear, "year must be between %d and %d, got %d", minYear, maxYear, req.Year)
	}

	payload, err := req.Payload.render()
	if err != nil {
		return Identifier{}, err
	}

	phase := strings.ToUpper(req.Phase)
	if phase != "" {
		if _, ok := LookupPhase(phase); !ok {
			return Identifier{}, newError(CodeInvalidPhase, "phase '%s' is invalid (expected one of E, D, F, M)", req.Phase)
		}
	}

	base := fmt.Sprintf("%s%02d%s", service, req.Year%100, payload)
	check := CheckDigits(base)

	value := base + check
	if phase != "" {
		// Only the first check character survives in the phased shape.
		value = base + phase + check[:1]
	}

	return Identifier{
		Value:       value,
		BaseCode:    base,
		CheckDigits: check,
		Phase:       phase,
	}, nil
}

// Details is the structured content of a valid identifier.
type Details struct {
	ID                 string
	ServiceCode        string
	ServiceDescription string
	Year               int
	Payload            string
	// Sequential is the numeric payload, or -1 when the payload is an acronym.
	Sequential int
	// Phase is nil for standard identifiers.
	Phase *Phase
	// CheckDigits holds the check characters as they appear in the identifier:
	// two for standard identifiers, one for phased ones.
	CheckDigits string
}

// Validate parses candidate and verifies its check digits.
//
// Position 10 decides the shape: a phase letter (E, D, F, M) marks a phased
// identifier whose last character must equal the first computed check digit;
// anything else is read as the two check digits of a standard identifier. A
// standard identifier whose first check digit is itself a phase letter is
// therefore read as phased, and since the second check digit never equals a
// non-zero first one, it is rejected with a checksum mismatch.
func Validate(candidate string) (*Details, error) {
	id := []rune(strings.ToUpper(candidate))
	if len(id) != IDLength {
		return nil, newError(CodeInvalidLength, "invalid ID: length must be %d characters, got %d", IDLength, len(id))
	}

	base := string(id[:BaseLength])
	service, ok := LookupService(string(id[:2]))
	if !ok {
		return nil, newError(CodeUnknownServiceCode, "service code '%s' not recognized", string(id[:2]))
	}

	if !isDigit(id[2]) || !isDigit(id[3]) {
		return nil, newError(CodeInvalidYearField, "year field '%s' must be two digits", string(id[2:4]))
	}

	expected := CheckDigits(base)
	details := &Details{
		ID:                 string(id),
		ServiceCode:        service.Code,
		ServiceDescription: service.Description,
		Year:               minYear + int(id[2]-'0')*10 + int(id[3]-'0'),
		Payload:            string(id[4:BaseLength]),
		Sequential:         parseSequential(id[4:BaseLength]),
	}

	if id[10] < 128 && IsPhaseMarker(byte(id[10])) {
		received := string(id[11])
		if received != expected[:1] {
			return nil, mismatch(expected[:1], received)
		}
		phase, _ := LookupPhase(string(id[10]))
		details.Phase = &phase
		details.CheckDigits = received
		return details, nil
	}

	received := string(id[10:])
	if received != expected {
		return nil, mismatch(expected, received)
	}
	details.CheckDigits = received
	return details, nil
}

func mismatch(expected, received string) *Error {
	return &Error{
		Code:     CodeChecksumMismatch,
		Message:  fmt.Sprintf("invalid check digit: expected %s, received %s", expected, received),
		Expected: expected,
		Received: received,
	}
}

func parseSequential(payload []rune) int {
	n := 0
	for _, r := range payload {
		if !isDigit(r) {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !isDigit(r) && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
