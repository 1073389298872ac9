// Package clock provides secondary.Clock implementations.
package clock

import "time"

// System reads the wall clock.
type System struct{}

// NewSystem creates a wall clock.
func NewSystem() System {
	return System{}
}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// FixedYear always reports January 1st of the configured year. It is used when
// billing is pinned to a year, e.g. when issuing late identifiers for a closed
// fiscal year.
type FixedYear struct {
	Year int
}

// Now returns January 1st of the fixed year.
func (c FixedYear) Now() time.Time {
	return time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.Local)
}
