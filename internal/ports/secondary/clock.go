// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import "time"

// Clock defines the secondary port for reading the current time.
// The billing year is the only input of identifier generation that is not
// supplied by the caller.
type Clock interface {
	Now() time.Time
}
