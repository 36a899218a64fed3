package cmd

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qnetsim/qnetsim/sim"
)

// timelineFrame is one JSON message pushed per observer callback, the
// "timeline suitable for step-by-step inspection" named in spec.md §1.
type timelineFrame struct {
	Kind      string  `json:"kind"`
	Time      float64 `json:"time"`
	RequestID int     `json:"request_id,omitempty"`
	SourceID  int     `json:"source_id,omitempty"`
	ServerID  int     `json:"server_id,omitempty"`
	Slot      int     `json:"slot,omitempty"`
	Waiting   float64 `json:"waiting,omitempty"`
	Service   float64 `json:"service,omitempty"`
}

// timelineObserver embeds sim.BaseObserver and forwards every callback
// except OnRefusal (left as the BaseObserver no-op) to connected
// websocket clients as a timelineFrame. Slow or
// disconnected clients never block the simulation: a full send channel
// simply drops the frame.
type timelineObserver struct {
	sim.BaseObserver

	mu      sync.Mutex
	clients map[*websocket.Conn]chan timelineFrame
}

func newTimelineObserver() *timelineObserver {
	return &timelineObserver{clients: make(map[*websocket.Conn]chan timelineFrame)}
}

func (t *timelineObserver) broadcast(f timelineFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for conn, ch := range t.clients {
		select {
		case ch <- f:
		default:
			log.Printf("timeline stream: dropping frame for slow client %s", conn.RemoteAddr())
		}
	}
}

func (t *timelineObserver) OnArrival(info sim.ArrivalInfo) {
	t.broadcast(timelineFrame{Kind: "arrival", Time: info.Time, RequestID: info.Request.ID, SourceID: info.SourceID})
}

func (t *timelineObserver) OnServiceStart(info sim.ServiceStartInfo) {
	t.broadcast(timelineFrame{Kind: "service_start", Time: info.Time, RequestID: info.Request.ID, ServerID: info.ServerID})
}

func (t *timelineObserver) OnServiceEnd(info sim.ServiceEndInfo) {
	t.broadcast(timelineFrame{
		Kind: "service_end", Time: info.Time, RequestID: info.Request.ID, ServerID: info.ServerID,
		Waiting: info.Waiting, Service: info.Service,
	})
}

func (t *timelineObserver) OnBufferPlace(info sim.BufferPlaceInfo) {
	t.broadcast(timelineFrame{Kind: "buffer_place", Time: info.Time, RequestID: info.Request.ID, Slot: info.Slot})
}

func (t *timelineObserver) OnBufferTake(info sim.BufferTakeInfo) {
	t.broadcast(timelineFrame{Kind: "buffer_take", Time: info.Time, RequestID: info.Request.ID, Slot: info.Slot})
}

func (t *timelineObserver) OnBufferDisplaced(info sim.BufferDisplacedInfo) {
	t.broadcast(timelineFrame{Kind: "buffer_displaced", Time: info.Time, RequestID: info.Request.ID, Slot: info.Slot})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and relays timelineFrames to
// it until the client disconnects.
func (t *timelineObserver) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("timeline stream: upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan timelineFrame, 256)
	t.mu.Lock()
	t.clients[conn] = ch
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.clients, conn)
		t.mu.Unlock()
	}()

	conn.SetReadDeadline(time.Now().Add(time.Hour))
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case frame := <-ch:
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
