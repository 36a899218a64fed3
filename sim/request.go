// Defines the Request struct modeling a single arrival's identity and
// lifecycle timestamps as it moves through service, buffering or
// displacement-refusal.

package sim

import "fmt"

// Request models a single arrival's identity and timing in the
// simulation. ServiceStart is undefined (zero) until a Server begins
// service on it; invariant: once set, ServiceStart >= Arrival.
type Request struct {
	ID       int // unique, monotonically assigned by the owning Kernel
	SourceID int // config id of the originating Source

	Arrival      float64 // timestamp the request entered the system
	ServiceStart float64 // timestamp a Server began servicing it (0 = not yet)
}

// String renders a short diagnostic form, useful in log lines.
func (r *Request) String() string {
	return fmt.Sprintf("Request{id=%d src=%d arrival=%.6f}", r.ID, r.SourceID, r.Arrival)
}
