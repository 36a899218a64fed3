package sim

import "container/heap"

// Calendar is a min-priority set of Events ordered by (time, kind,
// tiebreak), backed by a binary min-heap (spec.md §4.5). No event may be
// scheduled at a time strictly earlier than the current clock; doing so
// is a programming error and panics with a KernelInvariantError.
type Calendar struct {
	heap eventHeap
}

// NewCalendar constructs an empty Calendar.
func NewCalendar() *Calendar {
	c := &Calendar{}
	heap.Init(&c.heap)
	return c
}

// Schedule inserts ev into the Calendar. now is the Kernel's current
// clock; scheduling ev.Time() < now panics.
func (c *Calendar) Schedule(ev Event, now float64) {
	if ev.Time() < now {
		panic(&KernelInvariantError{Msg: "scheduled event strictly before current clock"})
	}
	heap.Push(&c.heap, ev)
}

// PopMin removes and returns the minimum-ordered Event, or (nil, false)
// if the Calendar is empty.
func (c *Calendar) PopMin() (Event, bool) {
	if c.heap.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&c.heap).(Event), true
}

// PeekTime returns the time of the minimum-ordered Event and true, or
// (0, false) if the Calendar is empty.
func (c *Calendar) PeekTime() (float64, bool) {
	if c.heap.Len() == 0 {
		return 0, false
	}
	return c.heap[0].Time(), true
}

// Size returns the number of pending events.
func (c *Calendar) Size() int {
	return c.heap.Len()
}

// Empty reports whether the Calendar has no pending events.
func (c *Calendar) Empty() bool {
	return c.heap.Len() == 0
}

// eventHeap implements heap.Interface, ordering Events by the 3-level
// tiebreak required by spec.md §3. Relying on container/heap's
// incidental stability is not portable, so the tiebreak is enforced
// explicitly in Less rather than left to insertion order.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Time() != b.Time() {
		return a.Time() < b.Time()
	}
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	return a.Tiebreak() < b.Tiebreak()
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
