package sim

import "github.com/sirupsen/logrus"

// dispatchArrival implements spec.md §4.6's ArrivalDue state machine.
// The Kernel's clock has already been advanced to ev.Time() before this
// is called (see Kernel.Step).
func (k *Kernel) dispatchArrival(ev *ArrivalDue) {
	now := ev.Time()
	src := k.sources[k.sourceIndex[ev.SourceID]]

	// Step 1: safety guard. The Source should already have been
	// cleared once the cap was reached; this branch only protects
	// against a stray already-scheduled event racing the cap.
	if k.metrics.Arrived() >= k.config.MaxArrivals {
		return
	}

	// Step 2: create the Request.
	req := &Request{ID: k.nextRequestID, SourceID: ev.SourceID, Arrival: now}
	k.nextRequestID++
	k.notifyArrival(ArrivalInfo{Time: now, Request: req, SourceID: ev.SourceID})

	// Step 3: device selection, rotating from a shared cursor.
	if server, ok := k.selectIdleServer(); ok {
		server.Start(req, now)
		k.notifyServiceStart(ServiceStartInfo{Time: now, Request: req, ServerID: server.ID})
		k.calendar.Schedule(&CompletionDue{time: server.completion, ServerID: server.ID}, k.Clock)
	} else if slot, ok := k.buffer.Place(req); ok {
		// Step 4: buffer has room.
		k.notifyBufferPlace(BufferPlaceInfo{Time: now, Request: req, Slot: slot})
	} else {
		// Step 5: buffer full — displace the most recently placed
		// waiter, then place the new arrival in the freed slot.
		evicted, evictedSlot, ok := k.buffer.DisplaceLastPlaced()
		if !ok {
			panic(&KernelInvariantError{Msg: "buffer reported full but displacement found nothing"})
		}
		logrus.Warnf("[tick %v] buffer full, displacing request %d for request %d", now, evicted.ID, req.ID)
		k.notifyBufferDisplaced(BufferDisplacedInfo{Time: now, Request: evicted, Slot: evictedSlot})
		slot, ok := k.buffer.Place(req)
		if !ok {
			panic(&KernelInvariantError{Msg: "buffer.Place failed immediately after a displacement freed a slot"})
		}
		k.notifyBufferPlace(BufferPlaceInfo{Time: now, Request: req, Slot: slot})
	}

	// Step 6: schedule this Source's next arrival, unless the cap has
	// now been reached.
	if k.metrics.Arrived() < k.config.MaxArrivals {
		next := src.ScheduleNext(now)
		k.calendar.Schedule(&ArrivalDue{time: next, SourceID: src.ID}, k.Clock)
	} else {
		src.Clear()
	}
}

// dispatchCompletion implements spec.md §4.6's CompletionDue state
// machine.
func (k *Kernel) dispatchCompletion(ev *CompletionDue) {
	now := ev.Time()
	server := k.servers[k.serverIndex[ev.ServerID]]

	req := server.Finish()
	waiting := req.ServiceStart - req.Arrival
	service := now - req.ServiceStart
	timeInSystem := now - req.Arrival
	k.notifyServiceEnd(ServiceEndInfo{
		Time: now, Request: req, ServerID: server.ID,
		Waiting: waiting, Service: service, TimeInSystem: timeInSystem,
	})

	if next, slot, ok := k.buffer.TakeForService(); ok {
		k.notifyBufferTake(BufferTakeInfo{Time: now, Request: next, Slot: slot})
		server.Start(next, now)
		k.nextServerCursor = (k.serverIndex[ev.ServerID] + 1) % len(k.servers)
		k.notifyServiceStart(ServiceStartInfo{Time: now, Request: next, ServerID: server.ID})
		k.calendar.Schedule(&CompletionDue{time: server.completion, ServerID: server.ID}, k.Clock)
	}
}

// selectIdleServer returns the first idle Server found scanning forward
// from the shared round-robin cursor, advancing the cursor on success
// (spec.md §4.6: "Server selection is deterministic round-robin with a
// shared cursor; the cursor advances on every successful assignment").
func (k *Kernel) selectIdleServer() (*Server, bool) {
	n := len(k.servers)
	for i := 0; i < n; i++ {
		idx := (k.nextServerCursor + i) % n
		if !k.servers[idx].Busy() {
			k.nextServerCursor = (idx + 1) % n
			return k.servers[idx], true
		}
	}
	return nil, false
}

// --- Observer fan-out (spec.md §4.7). Observers are invoked
// synchronously in registration order; MetricsObserver is always first
// (registered by NewKernel before any host observer is added). ---

func (k *Kernel) notifyArrival(info ArrivalInfo) {
	for _, obs := range k.observers {
		obs.OnArrival(info)
	}
}

func (k *Kernel) notifyServiceStart(info ServiceStartInfo) {
	for _, obs := range k.observers {
		obs.OnServiceStart(info)
	}
}

func (k *Kernel) notifyServiceEnd(info ServiceEndInfo) {
	for _, obs := range k.observers {
		obs.OnServiceEnd(info)
	}
}

func (k *Kernel) notifyBufferPlace(info BufferPlaceInfo) {
	for _, obs := range k.observers {
		obs.OnBufferPlace(info)
	}
}

func (k *Kernel) notifyBufferTake(info BufferTakeInfo) {
	for _, obs := range k.observers {
		obs.OnBufferTake(info)
	}
}

func (k *Kernel) notifyBufferDisplaced(info BufferDisplacedInfo) {
	for _, obs := range k.observers {
		obs.OnBufferDisplaced(info)
	}
}
