// sim/simulator.go
package sim

import "github.com/sirupsen/logrus"

// Kernel is the core object that holds simulation time, system state,
// and the event loop (spec.md §4.8). It exclusively owns Sources,
// Servers, Buffer, Calendar, Metrics and the observer list (spec.md
// §5): nothing else in the process may mutate them.
type Kernel struct {
	Clock float64

	config   Config
	calendar *Calendar
	sources  []*Source
	servers  []*Server
	buffer   *Buffer

	rng *PartitionedRNG

	metrics   *MetricsObserver
	observers []Observer

	sourceIndex map[int]int
	serverIndex map[int]int

	nextRequestID    int
	nextServerCursor int
}

// NewKernel validates config (spec.md §7) and, if valid, builds Sources
// and Servers with per-instance seeds, pre-registers MetricsObserver,
// and enqueues one ArrivalDue per Source at each Source's first sample.
func NewKernel(config Config) (*Kernel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	k := &Kernel{
		config:   config,
		calendar: NewCalendar(),
		buffer:   NewBuffer(config.BufferCapacity),
		rng:      NewPartitionedRNG(NewSimulationKey(config.Seed)),
		metrics:  NewMetricsObserver(),
	}
	k.observers = append(k.observers, k.metrics)

	k.sources = make([]*Source, len(config.Sources))
	k.sourceIndex = make(map[int]int, len(config.Sources))
	for i, sc := range config.Sources {
		dist := k.buildDistribution(sc.DistributionKind, sc.Parameter, sourceStream(sc.ID))
		k.sources[i] = NewSource(sc.ID, dist)
		k.sourceIndex[sc.ID] = i
	}

	k.servers = make([]*Server, len(config.Servers))
	k.serverIndex = make(map[int]int, len(config.Servers))
	for i, sc := range config.Servers {
		dist := k.buildDistribution(sc.DistributionKind, sc.Parameter, serverStream(sc.ID))
		k.servers[i] = NewServer(sc.ID, dist)
		k.serverIndex[sc.ID] = i
	}

	for _, src := range k.sources {
		next := src.ScheduleNext(0)
		k.calendar.Schedule(&ArrivalDue{time: next, SourceID: src.ID}, k.Clock)
	}

	return k, nil
}

// buildDistribution constructs a Distribution for the given kind and
// parameter, deriving Exponential's stream from streamName, which
// NewKernel builds from the source's or server's config id (not its
// position in Config.Sources/Config.Servers).
func (k *Kernel) buildDistribution(kind DistributionKind, parameter float64, streamName string) Distribution {
	switch kind {
	case DistConstant:
		return Constant{Value: parameter}
	case DistExponential:
		return NewExponential(parameter, k.rng.ForStream(streamName))
	default:
		// Config.Validate rejects unknown kinds before this is reached.
		panic(&KernelInvariantError{Msg: "unreachable: unknown distribution kind " + string(kind)})
	}
}

// AddObserver registers obs to receive future event notifications.
// Observers are invoked synchronously in registration order.
func (k *Kernel) AddObserver(obs Observer) {
	k.observers = append(k.observers, obs)
}

// Metrics returns the Kernel's MetricsObserver, the read-only Metrics
// API described in spec.md §6.
func (k *Kernel) Metrics() *MetricsObserver {
	return k.metrics
}

// CurrentTime returns the Kernel's current clock value.
func (k *Kernel) CurrentTime() float64 {
	return k.Clock
}

// Step pops and dispatches a single event; a no-op if the Calendar is
// empty (spec.md §4.8).
func (k *Kernel) Step() {
	ev, ok := k.calendar.PopMin()
	if !ok {
		return
	}
	k.Clock = ev.Time()
	logrus.Debugf("[tick %v] dispatching %T", k.Clock, ev)
	ev.dispatch(k)
}

// Run calls Step until Finished returns true.
func (k *Kernel) Run() {
	for !k.Finished() {
		k.Step()
	}
}

// Finished is true iff (a) the clock has passed max_time, or (b) the
// arrival cap has been reached, the Calendar is drained, the Buffer is
// empty, and every Server is idle (spec.md §4.8).
func (k *Kernel) Finished() bool {
	if k.Clock > k.config.effectiveMaxTime() {
		return true
	}
	if k.metrics.Arrived() < k.config.MaxArrivals {
		return false
	}
	if !k.calendar.Empty() {
		return false
	}
	if k.buffer.Size() > 0 {
		return false
	}
	for _, s := range k.servers {
		if s.Busy() {
			return false
		}
	}
	return true
}

// --- Read-only queries for UIs (spec.md §6). All unknown ids return a
// neutral zero value rather than aborting (spec.md §7). Ids are the
// diagnostic SourceConfig.ID/ServerConfig.ID values from Config, not
// slice positions. ---

// ServerBusy reports whether the server with the given config id is
// currently busy.
func (k *Kernel) ServerBusy(id int) bool {
	i, ok := k.serverIndex[id]
	if !ok {
		return false
	}
	return k.servers[i].Busy()
}

// ServerNextCompletion returns the server with the given config id's
// scheduled completion time and whether one is pending.
func (k *Kernel) ServerNextCompletion(id int) (float64, bool) {
	i, ok := k.serverIndex[id]
	if !ok {
		return 0, false
	}
	return k.servers[i].NextCompletion()
}

// SourceActive reports whether the source with the given config id has
// a pending arrival.
func (k *Kernel) SourceActive(id int) bool {
	i, ok := k.sourceIndex[id]
	if !ok {
		return false
	}
	return k.sources[i].Active()
}

// SourceNextArrival returns the source with the given config id's next
// scheduled arrival time and whether one is pending.
func (k *Kernel) SourceNextArrival(id int) (float64, bool) {
	i, ok := k.sourceIndex[id]
	if !ok {
		return 0, false
	}
	return k.sources[i].NextArrival()
}

// BufferSize returns the number of occupied Buffer slots.
func (k *Kernel) BufferSize() int {
	return k.buffer.Size()
}

// BufferCapacity returns the Buffer's fixed slot count.
func (k *Kernel) BufferCapacity() int {
	return k.buffer.Capacity()
}

// NumServers returns the number of Servers in the network.
func (k *Kernel) NumServers() int {
	return len(k.servers)
}

// NumSources returns the number of Sources in the network.
func (k *Kernel) NumSources() int {
	return len(k.sources)
}
