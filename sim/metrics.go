// Tracks simulation-wide and per-source performance metrics: refusal
// probability, waiting/service/system time moments, and per-server
// utilization, as specified in spec.md §3, §4.7 and §6.

package sim

import "fmt"

// sourceStats accumulates the per-source counters and moment sums
// needed to report mean and variance of waiting and service time
// without retaining individual samples (spec.md §3, Metrics invariant).
type sourceStats struct {
	arrivals    int
	refusals    int
	completions int

	sumWaiting   float64
	sumWaitingSq float64
	sumService   float64
	sumServiceSq float64

	sumTimeInSystem float64
}

// MetricsObserver accumulates the simulation-wide and per-source/per-
// server counters described in spec.md §4.7. It is always registered
// first on a Kernel's observer list (spec.md §4.8), so other observers
// may safely read it from their own callbacks.
type MetricsObserver struct {
	BaseObserver

	arrived   int
	refused   int
	completed int

	sumTimeInSystem float64
	sumWaiting      float64
	sumService      float64

	serverBusyTime map[int]float64
	sources        map[int]*sourceStats
}

// NewMetricsObserver constructs an empty MetricsObserver.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		serverBusyTime: make(map[int]float64),
		sources:        make(map[int]*sourceStats),
	}
}

func (m *MetricsObserver) sourceFor(id int) *sourceStats {
	s, ok := m.sources[id]
	if !ok {
		s = &sourceStats{}
		m.sources[id] = s
	}
	return s
}

// OnArrival implements Observer.
func (m *MetricsObserver) OnArrival(info ArrivalInfo) {
	m.arrived++
	m.sourceFor(info.SourceID).arrivals++
}

// OnBufferDisplaced implements Observer. Displacement is refusal, and
// the refusal is attributed to the displaced Request's source, never
// the arriving Request's — per spec.md §9's resolved ambiguity.
func (m *MetricsObserver) OnBufferDisplaced(info BufferDisplacedInfo) {
	m.refused++
	m.sourceFor(info.Request.SourceID).refusals++
}

// OnRefusal implements Observer identically to OnBufferDisplaced,
// reserved for a future explicit-rejection path (spec.md §9). The core
// state machine never calls this today.
func (m *MetricsObserver) OnRefusal(info RefusalInfo) {
	m.refused++
	m.sourceFor(info.Request.SourceID).refusals++
}

// OnServiceEnd implements Observer.
func (m *MetricsObserver) OnServiceEnd(info ServiceEndInfo) {
	m.completed++
	m.sumTimeInSystem += info.TimeInSystem
	m.sumWaiting += info.Waiting
	m.sumService += info.Service
	m.serverBusyTime[info.ServerID] += info.Service

	s := m.sourceFor(info.Request.SourceID)
	s.completions++
	s.sumWaiting += info.Waiting
	s.sumWaitingSq += info.Waiting * info.Waiting
	s.sumService += info.Service
	s.sumServiceSq += info.Service * info.Service
	s.sumTimeInSystem += info.TimeInSystem
}

// Arrived returns the total number of arrivals observed.
func (m *MetricsObserver) Arrived() int { return m.arrived }

// Refused returns the total number of refusals (displacements) observed.
func (m *MetricsObserver) Refused() int { return m.refused }

// Completed returns the total number of completions observed.
func (m *MetricsObserver) Completed() int { return m.completed }

// RefusalProbability returns Refused/Arrived, or 0 if no arrivals have
// occurred yet (spec.md §6).
func (m *MetricsObserver) RefusalProbability() float64 {
	if m.arrived == 0 {
		return 0
	}
	return float64(m.refused) / float64(m.arrived)
}

// AvgTimeInSystem returns the mean time-in-system across completed
// requests, or 0 if none have completed.
func (m *MetricsObserver) AvgTimeInSystem() float64 {
	if m.completed == 0 {
		return 0
	}
	return m.sumTimeInSystem / float64(m.completed)
}

// AvgWaitingTime returns the mean waiting time across completed
// requests, or 0 if none have completed.
func (m *MetricsObserver) AvgWaitingTime() float64 {
	if m.completed == 0 {
		return 0
	}
	return m.sumWaiting / float64(m.completed)
}

// AvgServiceTime returns the mean service time across completed
// requests, or 0 if none have completed.
func (m *MetricsObserver) AvgServiceTime() float64 {
	if m.completed == 0 {
		return 0
	}
	return m.sumService / float64(m.completed)
}

// ServerUtilization returns serverBusyTime[j] / horizon, or 0 if horizon
// <= 0 or j is unknown (out-of-range query returns a neutral value per
// spec.md §7, rather than aborting).
func (m *MetricsObserver) ServerUtilization(serverID int, horizon float64) float64 {
	if horizon <= 0 {
		return 0
	}
	return m.serverBusyTime[serverID] / horizon
}

// SourceArrivals returns the number of arrivals attributed to source id,
// or 0 if the source is unknown.
func (m *MetricsObserver) SourceArrivals(id int) int {
	s, ok := m.sources[id]
	if !ok {
		return 0
	}
	return s.arrivals
}

// SourceRefusalProbability returns the refusal probability for source
// id, or 0 if it has had no arrivals.
func (m *MetricsObserver) SourceRefusalProbability(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.arrivals == 0 {
		return 0
	}
	return float64(s.refusals) / float64(s.arrivals)
}

// SourceMeanWaitingTime returns the mean waiting time for source id's
// completed requests, or 0 if none have completed.
func (m *MetricsObserver) SourceMeanWaitingTime(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.completions == 0 {
		return 0
	}
	return s.sumWaiting / float64(s.completions)
}

// SourceVarianceWaitingTime returns Var[waiting] = E[X^2] - E[X]^2 for
// source id's completed requests, or 0 if none have completed.
func (m *MetricsObserver) SourceVarianceWaitingTime(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.completions == 0 {
		return 0
	}
	n := float64(s.completions)
	mean := s.sumWaiting / n
	return s.sumWaitingSq/n - mean*mean
}

// SourceMeanServiceTime returns the mean service time for source id's
// completed requests, or 0 if none have completed.
func (m *MetricsObserver) SourceMeanServiceTime(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.completions == 0 {
		return 0
	}
	return s.sumService / float64(s.completions)
}

// SourceVarianceServiceTime returns Var[service] = E[X^2] - E[X]^2 for
// source id's completed requests, or 0 if none have completed.
func (m *MetricsObserver) SourceVarianceServiceTime(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.completions == 0 {
		return 0
	}
	n := float64(s.completions)
	mean := s.sumService / n
	return s.sumServiceSq/n - mean*mean
}

// SourceMeanTimeInSystem returns the mean time-in-system for source id's
// completed requests, or 0 if none have completed.
func (m *MetricsObserver) SourceMeanTimeInSystem(id int) float64 {
	s, ok := m.sources[id]
	if !ok || s.completions == 0 {
		return 0
	}
	return s.sumTimeInSystem / float64(s.completions)
}

// Print displays a human-readable summary of the run's metrics, in the
// same spirit as the teacher's end-of-run Metrics.Print.
func (m *MetricsObserver) Print(horizon float64, serverIDs []int) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Arrived              : %d\n", m.arrived)
	fmt.Printf("Refused              : %d\n", m.refused)
	fmt.Printf("Completed            : %d\n", m.completed)
	fmt.Printf("Refusal probability  : %.4f\n", m.RefusalProbability())
	if m.completed > 0 {
		fmt.Printf("Avg time in system   : %.4f\n", m.AvgTimeInSystem())
		fmt.Printf("Avg waiting time     : %.4f\n", m.AvgWaitingTime())
		fmt.Printf("Avg service time     : %.4f\n", m.AvgServiceTime())
	}
	for _, id := range serverIDs {
		fmt.Printf("Server %d utilization : %.4f\n", id, m.ServerUtilization(id, horizon))
	}
}
