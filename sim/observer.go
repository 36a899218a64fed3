package sim

// ArrivalInfo carries the payload for OnArrival.
type ArrivalInfo struct {
	Time     float64
	Request  *Request
	SourceID int
}

// ServiceStartInfo carries the payload for OnServiceStart.
type ServiceStartInfo struct {
	Time     float64
	Request  *Request
	ServerID int
}

// ServiceEndInfo carries the payload for OnServiceEnd.
type ServiceEndInfo struct {
	Time         float64
	Request      *Request
	ServerID     int
	Waiting      float64 // ServiceStart - Arrival
	Service      float64 // Time - ServiceStart
	TimeInSystem float64 // Time - Arrival == Waiting + Service
}

// BufferPlaceInfo carries the payload for OnBufferPlace.
type BufferPlaceInfo struct {
	Time   float64
	Request *Request
	Slot   int
}

// BufferTakeInfo carries the payload for OnBufferTake.
type BufferTakeInfo struct {
	Time    float64
	Request *Request
	Slot    int
}

// BufferDisplacedInfo carries the payload for OnBufferDisplaced. The
// evicted Request is the one that leaves the system — it is the one
// attributed as refused (spec.md §9).
type BufferDisplacedInfo struct {
	Time    float64
	Request *Request
	Slot    int
}

// RefusalInfo carries the payload for OnRefusal, a reserved extension
// point. The core state machine never emits OnRefusal today — only
// OnBufferDisplaced (spec.md §9) — but the capability is kept on the
// interface so a future explicit-rejection admission policy has
// somewhere to plug in without another interface change.
type RefusalInfo struct {
	Time    float64
	Request *Request
}

// Observer is the fixed, small capability set the Dispatcher broadcasts
// to. Implementations embed BaseObserver and override only the
// callbacks they use (spec.md §4.7, Design Note §9).
type Observer interface {
	OnArrival(ArrivalInfo)
	OnServiceStart(ServiceStartInfo)
	OnServiceEnd(ServiceEndInfo)
	OnBufferPlace(BufferPlaceInfo)
	OnBufferTake(BufferTakeInfo)
	OnBufferDisplaced(BufferDisplacedInfo)
	OnRefusal(RefusalInfo)
}

// BaseObserver implements Observer with no-op methods. Embed it in a
// concrete observer and override only the callbacks of interest.
type BaseObserver struct{}

func (BaseObserver) OnArrival(ArrivalInfo)                 {}
func (BaseObserver) OnServiceStart(ServiceStartInfo)       {}
func (BaseObserver) OnServiceEnd(ServiceEndInfo)           {}
func (BaseObserver) OnBufferPlace(BufferPlaceInfo)         {}
func (BaseObserver) OnBufferTake(BufferTakeInfo)           {}
func (BaseObserver) OnBufferDisplaced(BufferDisplacedInfo) {}
func (BaseObserver) OnRefusal(RefusalInfo)                 {}
