package cmd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/qnetsim/qnetsim/sim"
)

// queryServer exposes the Kernel's read-only UI query surface (spec.md
// §6) as a handful of fixed JSON routes. It never mutates k; the
// simulation itself still advances only via Run/Step calls elsewhere.
type queryServer struct {
	k      *sim.Kernel
	router *mux.Router
}

func newQueryServer(k *sim.Kernel) *queryServer {
	qs := &queryServer{k: k, router: mux.NewRouter().StrictSlash(false)}
	qs.router.HandleFunc("/state", qs.handleState).Methods("GET")
	qs.router.HandleFunc("/servers/{id}", qs.handleServer).Methods("GET")
	qs.router.HandleFunc("/sources/{id}", qs.handleSource).Methods("GET")
	qs.router.HandleFunc("/metrics/summary", qs.handleMetricsSummary).Methods("GET")
	return qs
}

func (qs *queryServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	qs.router.ServeHTTP(w, r)
}

type stateResponse struct {
	Time           float64 `json:"time"`
	BufferSize     int     `json:"buffer_size"`
	BufferCapacity int     `json:"buffer_capacity"`
	NumSources     int     `json:"num_sources"`
	NumServers     int     `json:"num_servers"`
	Finished       bool    `json:"finished"`
}

func (qs *queryServer) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, stateResponse{
		Time:           qs.k.CurrentTime(),
		BufferSize:     qs.k.BufferSize(),
		BufferCapacity: qs.k.BufferCapacity(),
		NumSources:     qs.k.NumSources(),
		NumServers:     qs.k.NumServers(),
		Finished:       qs.k.Finished(),
	})
}

type serverResponse struct {
	ID             int     `json:"id"`
	Busy           bool    `json:"busy"`
	NextCompletion float64 `json:"next_completion,omitempty"`
}

func (qs *queryServer) handleServer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid server id", http.StatusBadRequest)
		return
	}
	completion, pending := qs.k.ServerNextCompletion(id)
	resp := serverResponse{ID: id, Busy: qs.k.ServerBusy(id)}
	if pending {
		resp.NextCompletion = completion
	}
	writeJSON(w, resp)
}

type sourceResponse struct {
	ID           int     `json:"id"`
	Active       bool    `json:"active"`
	NextArrival  float64 `json:"next_arrival,omitempty"`
	ArrivalCount int     `json:"arrival_count"`
}

func (qs *queryServer) handleSource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid source id", http.StatusBadRequest)
		return
	}
	next, pending := qs.k.SourceNextArrival(id)
	resp := sourceResponse{
		ID:           id,
		Active:       qs.k.SourceActive(id),
		ArrivalCount: qs.k.Metrics().SourceArrivals(id),
	}
	if pending {
		resp.NextArrival = next
	}
	writeJSON(w, resp)
}

type metricsSummaryResponse struct {
	Arrived            int     `json:"arrived"`
	Refused            int     `json:"refused"`
	Completed          int     `json:"completed"`
	RefusalProbability float64 `json:"refusal_probability"`
	AvgWaitingTime     float64 `json:"avg_waiting_time"`
	AvgServiceTime     float64 `json:"avg_service_time"`
	AvgTimeInSystem    float64 `json:"avg_time_in_system"`
}

func (qs *queryServer) handleMetricsSummary(w http.ResponseWriter, _ *http.Request) {
	m := qs.k.Metrics()
	writeJSON(w, metricsSummaryResponse{
		Arrived:            m.Arrived(),
		Refused:            m.Refused(),
		Completed:          m.Completed(),
		RefusalProbability: m.RefusalProbability(),
		AvgWaitingTime:     m.AvgWaitingTime(),
		AvgServiceTime:     m.AvgServiceTime(),
		AvgTimeInSystem:    m.AvgTimeInSystem(),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
