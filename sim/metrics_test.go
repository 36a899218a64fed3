package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsObserver_Arrived_CountsArrivals(t *testing.T) {
	m := NewMetricsObserver()
	req := &Request{ID: 0, SourceID: 0, Arrival: 1.0}
	m.OnArrival(ArrivalInfo{Time: 1.0, Request: req, SourceID: 0})
	m.OnArrival(ArrivalInfo{Time: 2.0, Request: req, SourceID: 0})

	assert.Equal(t, 2, m.Arrived())
	assert.Equal(t, 2, m.SourceArrivals(0))
	assert.Equal(t, 0, m.SourceArrivals(99))
}

func TestMetricsObserver_OnBufferDisplaced_AttributesRefusalToDisplacedSource(t *testing.T) {
	m := NewMetricsObserver()
	displaced := &Request{ID: 0, SourceID: 3, Arrival: 1.0}

	m.OnArrival(ArrivalInfo{Time: 1.0, Request: displaced, SourceID: 3})
	m.OnBufferDisplaced(BufferDisplacedInfo{Time: 2.0, Request: displaced, Slot: 0})

	assert.Equal(t, 1, m.Refused())
	assert.Equal(t, 1.0, m.SourceRefusalProbability(3))
}

func TestMetricsObserver_RefusalProbability_ZeroWithNoArrivals(t *testing.T) {
	m := NewMetricsObserver()
	assert.Equal(t, 0.0, m.RefusalProbability())
}

func TestMetricsObserver_OnServiceEnd_AccumulatesMoments(t *testing.T) {
	m := NewMetricsObserver()
	req := &Request{ID: 0, SourceID: 1, Arrival: 0, ServiceStart: 2}

	m.OnServiceEnd(ServiceEndInfo{
		Time: 5, Request: req, ServerID: 0,
		Waiting: 2, Service: 3, TimeInSystem: 5,
	})

	assert.Equal(t, 1, m.Completed())
	assert.Equal(t, 5.0, m.AvgTimeInSystem())
	assert.Equal(t, 2.0, m.AvgWaitingTime())
	assert.Equal(t, 3.0, m.AvgServiceTime())
	assert.Equal(t, 2.0, m.SourceMeanWaitingTime(1))
	assert.Equal(t, 3.0, m.SourceMeanServiceTime(1))
	assert.Equal(t, 5.0, m.SourceMeanTimeInSystem(1))
}

func TestMetricsObserver_AvgTimeInSystem_ZeroWithNoCompletions(t *testing.T) {
	m := NewMetricsObserver()
	assert.Equal(t, 0.0, m.AvgTimeInSystem())
	assert.Equal(t, 0.0, m.AvgWaitingTime())
	assert.Equal(t, 0.0, m.AvgServiceTime())
}

// TestMetricsObserver_VarianceIsZero_ForIdenticalSamples exercises
// testable property S6: a constant-service-time source's completed
// requests all share the same service time, so the variance law
// Var = E[X^2] - E[X]^2 must report (numerically) zero.
func TestMetricsObserver_VarianceIsZero_ForIdenticalSamples(t *testing.T) {
	m := NewMetricsObserver()
	req := &Request{ID: 0, SourceID: 0, Arrival: 0, ServiceStart: 0}

	for i := 0; i < 5; i++ {
		m.OnServiceEnd(ServiceEndInfo{
			Time: 4, Request: req, ServerID: 0,
			Waiting: 0, Service: 4, TimeInSystem: 4,
		})
	}

	assert.InDelta(t, 0.0, m.SourceVarianceServiceTime(0), 1e-9)
	assert.InDelta(t, 0.0, m.SourceVarianceWaitingTime(0), 1e-9)
}

func TestMetricsObserver_VarianceIsPositive_ForVaryingSamples(t *testing.T) {
	m := NewMetricsObserver()
	req := &Request{ID: 0, SourceID: 0}

	m.OnServiceEnd(ServiceEndInfo{Time: 1, Request: req, ServerID: 0, Service: 1, TimeInSystem: 1})
	m.OnServiceEnd(ServiceEndInfo{Time: 5, Request: req, ServerID: 0, Service: 5, TimeInSystem: 5})

	assert.Greater(t, m.SourceVarianceServiceTime(0), 0.0)
}

func TestMetricsObserver_ServerUtilization_DividesBusyTimeByHorizon(t *testing.T) {
	m := NewMetricsObserver()
	req := &Request{ID: 0, SourceID: 0}
	m.OnServiceEnd(ServiceEndInfo{Time: 3, Request: req, ServerID: 7, Service: 3, TimeInSystem: 3})

	assert.Equal(t, 0.3, m.ServerUtilization(7, 10))
}

func TestMetricsObserver_ServerUtilization_ZeroForNonPositiveHorizon(t *testing.T) {
	m := NewMetricsObserver()
	assert.Equal(t, 0.0, m.ServerUtilization(0, 0))
	assert.Equal(t, 0.0, m.ServerUtilization(0, -1))
}

func TestMetricsObserver_UnknownSource_ReturnsNeutralZeroValues(t *testing.T) {
	m := NewMetricsObserver()
	assert.Equal(t, 0, m.SourceArrivals(42))
	assert.Equal(t, 0.0, m.SourceRefusalProbability(42))
	assert.Equal(t, 0.0, m.SourceMeanWaitingTime(42))
	assert.Equal(t, 0.0, m.SourceVarianceWaitingTime(42))
	assert.Equal(t, 0.0, m.SourceMeanServiceTime(42))
	assert.Equal(t, 0.0, m.SourceVarianceServiceTime(42))
	assert.Equal(t, 0.0, m.SourceMeanTimeInSystem(42))
}
