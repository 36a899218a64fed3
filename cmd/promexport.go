package cmd

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qnetsim/qnetsim/sim"
)

// Gauges mirroring a Kernel's Metrics snapshot (spec.md §6). Global by
// design: one simulation process, registered once eagerly, harmless if
// no /metrics endpoint is ever served.
var (
	arrivedTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_arrived_total",
		Help: "Total arrivals observed across all sources",
	})
	refusedTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_refused_total",
		Help: "Total refusals (buffer displacements) observed",
	})
	completedTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_completed_total",
		Help: "Total service completions observed",
	})
	refusalProbability = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_refusal_probability",
		Help: "Refused / Arrived over the run so far",
	})
	avgWaitingTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_avg_waiting_time",
		Help: "Mean waiting time across completed requests",
	})
	avgServiceTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_avg_service_time",
		Help: "Mean service time across completed requests",
	})
	avgTimeInSystem = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qnetsim_avg_time_in_system",
		Help: "Mean time in system across completed requests",
	})
	serverUtilization = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qnetsim_server_utilization",
		Help: "Busy fraction of elapsed simulation time, by server id",
	}, []string{"server_id"})
)

func init() {
	prometheus.MustRegister(arrivedTotal, refusedTotal, completedTotal,
		refusalProbability, avgWaitingTime, avgServiceTime, avgTimeInSystem,
		serverUtilization)
}

// snapshotMetrics copies k's current Metrics into the registered
// gauges. Called once after Run completes, or periodically by a host
// that wants to watch a long run progress.
func snapshotMetrics(k *sim.Kernel, serverIDs []int) {
	m := k.Metrics()
	arrivedTotal.Set(float64(m.Arrived()))
	refusedTotal.Set(float64(m.Refused()))
	completedTotal.Set(float64(m.Completed()))
	refusalProbability.Set(m.RefusalProbability())
	avgWaitingTime.Set(m.AvgWaitingTime())
	avgServiceTime.Set(m.AvgServiceTime())
	avgTimeInSystem.Set(m.AvgTimeInSystem())

	horizon := k.CurrentTime()
	for _, id := range serverIDs {
		serverUtilization.WithLabelValues(strconv.Itoa(id)).Set(m.ServerUtilization(id, horizon))
	}
}

// startMetricsEndpoint exposes /metrics on addr in a background
// goroutine, in the same spirit as the teacher pack's churn telemetry
// endpoint: a dedicated, minimal http.Server carrying only promhttp.
func startMetricsEndpoint(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
	return server
}
