// sim/event.go
package sim

// eventKind orders events at equal timestamps: ArrivalDue precedes
// CompletionDue (spec.md §3).
type eventKind int

const (
	kindArrival eventKind = iota
	kindCompletion
)

// Event is a future occurrence the Calendar orders and the Kernel pops
// one at a time. Ordering is primary by ascending Time, then by Kind,
// then by Tiebreak (ascending source/server id) — see Calendar.
type Event interface {
	Time() float64
	Kind() eventKind
	Tiebreak() int
	dispatch(k *Kernel)
}

// ArrivalDue fires when SourceID's next inter-arrival sample elapses.
type ArrivalDue struct {
	time     float64
	SourceID int
}

func (e *ArrivalDue) Time() float64      { return e.time }
func (e *ArrivalDue) Kind() eventKind    { return kindArrival }
func (e *ArrivalDue) Tiebreak() int      { return e.SourceID }
func (e *ArrivalDue) dispatch(k *Kernel) { k.dispatchArrival(e) }

// CompletionDue fires when ServerID finishes its current Request.
type CompletionDue struct {
	time     float64
	ServerID int
}

func (e *CompletionDue) Time() float64      { return e.time }
func (e *CompletionDue) Kind() eventKind    { return kindCompletion }
func (e *CompletionDue) Tiebreak() int      { return e.ServerID }
func (e *CompletionDue) dispatch(k *Kernel) { k.dispatchCompletion(e) }
