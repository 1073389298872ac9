package billing

import (
	"errors"
	"fmt"
)

// ErrorCode is the machine-readable reason of a codec failure.
type ErrorCode string

const (
	CodeInvalidServiceCode   ErrorCode = "invalid_service_code"
	CodeSequentialOutOfRange ErrorCode = "sequential_out_of_range"
	CodeInvalidAcronym       ErrorCode = "invalid_acronym"
	CodeInvalidPhase         ErrorCode = "invalid_phase"
	CodeInvalidYear          ErrorCode = "invalid_year"
	CodeInvalidLength        ErrorCode = "invalid_length"
	CodeUnknownServiceCode   ErrorCode = "unknown_service_code"
	CodeInvalidYearField     ErrorCode = "invalid_year_field"
	CodeChecksumMismatch     ErrorCode = "checksum_mismatch"
	CodePayloadSource        ErrorCode = "payload_source"
)

// Sentinels for errors.Is. Every *Error unwraps to the one matching its Code.
var (
	ErrInvalidServiceCode   = errors.New("invalid service code")
	ErrSequentialOutOfRange = errors.New("sequential out of range")
	ErrInvalidAcronym       = errors.New("invalid acronym")
	ErrInvalidPhase         = errors.New("invalid phase")
	ErrInvalidYear          = errors.New("invalid year")
	ErrInvalidLength        = errors.New("invalid length")
	ErrUnknownServiceCode   = errors.New("unknown service code")
	ErrInvalidYearField     = errors.New("invalid year field")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrPayloadSource        = errors.New("payload source")
)

var sentinels = map[ErrorCode]error{
	CodeInvalidServiceCode:   ErrInvalidServiceCode,
	CodeSequentialOutOfRange: ErrSequentialOutOfRange,
	CodeInvalidAcronym:       ErrInvalidAcronym,
	CodeInvalidPhase:         ErrInvalidPhase,
	CodeInvalidYear:          ErrInvalidYear,
	CodeInvalidLength:        ErrInvalidLength,
	CodeUnknownServiceCode:   ErrUnknownServiceCode,
	CodeInvalidYearField:     ErrInvalidYearField,
	CodeChecksumMismatch:     ErrChecksumMismatch,
	CodePayloadSource:        ErrPayloadSource,
}

// Error is returned by Compose and Validate. Services building requests
// for Compose report their own request errors with the same type.
// Expected and Received are only set for checksum mismatches.
type Error struct {
	Code     ErrorCode
	Message  string
	Expected string
	Received string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel for the error's code.
func (e *Error) Unwrap() error {
	return sentinels[e.Code]
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a codec error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
