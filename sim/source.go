package sim

// Source owns one arrival Distribution and the next time it is due to
// fire. A Source has no other mutable state; it does not know about
// Requests (spec.md §4.2).
type Source struct {
	ID   int
	Dist Distribution

	next    float64
	hasNext bool // false once the arrival cap is reached and Clear has been called
}

// NewSource constructs a Source with no arrival scheduled yet; the
// Kernel calls ScheduleNext once at construction to seed the first
// arrival.
func NewSource(id int, dist Distribution) *Source {
	return &Source{ID: id, Dist: dist}
}

// ScheduleNext draws one inter-arrival sample from Dist and sets the
// next-arrival time to now + sample. Returns the new next-arrival time.
func (s *Source) ScheduleNext(now float64) float64 {
	d := s.Dist.Sample()
	s.next = now + d
	s.hasNext = true
	return s.next
}

// Clear marks the Source as exhausted (no pending arrival), used once
// the arrival cap has been reached.
func (s *Source) Clear() {
	s.hasNext = false
	s.next = 0
}

// NextArrival returns the scheduled next-arrival time and whether one is
// pending.
func (s *Source) NextArrival() (float64, bool) {
	return s.next, s.hasNext
}

// Active reports whether this Source has a pending arrival (used by the
// read-only UI query surface named in spec.md §6).
func (s *Source) Active() bool {
	return s.hasNext
}
