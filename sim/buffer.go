package sim

// Buffer is a fixed-capacity slotted queue holding Requests that arrived
// while every Server was busy. Slots are addressable by index
// 0..Capacity-1. placeCursor tracks the most recently placed Request
// (for displacement); takeCursor tracks the next slot to inspect when a
// Server asks for work (spec.md §4.4).
type Buffer struct {
	slots       []*Request
	size        int
	placeCursor int
	takeCursor  int
}

// NewBuffer constructs an empty Buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{slots: make([]*Request, capacity)}
}

// Capacity returns the fixed slot count.
func (b *Buffer) Capacity() int {
	return len(b.slots)
}

// Size returns the number of occupied slots.
func (b *Buffer) Size() int {
	return b.size
}

// Full reports whether every slot is occupied.
func (b *Buffer) Full() bool {
	return b.size == len(b.slots)
}

// Place scans slot indices 0..Capacity-1 for the first empty slot and
// writes req there, updating placeCursor. Returns the slot index and
// true, or (-1, false) if the Buffer is full.
func (b *Buffer) Place(req *Request) (int, bool) {
	for i, r := range b.slots {
		if r == nil {
			b.slots[i] = req
			b.size++
			b.placeCursor = i
			return i, true
		}
	}
	return -1, false
}

// DisplaceLastPlaced scans backwards from placeCursor (modulo capacity)
// for the first occupied slot, clears it, and returns the evicted
// Request and the slot it occupied. Intended exclusively for overflow
// handling: the most recently placed waiter is refused in favor of the
// newest arrival. Returns (nil, -1, false) if the Buffer is empty.
func (b *Buffer) DisplaceLastPlaced() (*Request, int, bool) {
	if b.size == 0 {
		return nil, -1, false
	}
	n := len(b.slots)
	idx := b.placeCursor
	for i := 0; i < n; i++ {
		if b.slots[idx] != nil {
			evicted := b.slots[idx]
			evictedSlot := idx
			b.slots[idx] = nil
			b.size--
			// update placeCursor to the slot immediately preceding the
			// emptied one (modulo capacity), per spec.md §4.4.
			b.placeCursor = (idx - 1 + n) % n
			return evicted, evictedSlot, true
		}
		idx = (idx - 1 + n) % n
	}
	return nil, -1, false
}

// TakeForService scans forward from takeCursor (modulo capacity) for the
// first occupied slot, clears it, and returns the Request and the slot
// it occupied. Returns (nil, -1, false) if the Buffer is empty.
func (b *Buffer) TakeForService() (*Request, int, bool) {
	if b.size == 0 {
		return nil, -1, false
	}
	n := len(b.slots)
	idx := b.takeCursor
	for i := 0; i < n; i++ {
		if b.slots[idx] != nil {
			taken := b.slots[idx]
			takenSlot := idx
			b.slots[idx] = nil
			b.size--
			b.takeCursor = (idx + 1) % n

			// If the taken slot equals the current placeCursor and
			// requests remain, advance placeCursor to the most recent
			// still-occupied slot (searching backwards) to preserve the
			// "last arrived" invariant.
			if takenSlot == b.placeCursor && b.size > 0 {
				j := (takenSlot - 1 + n) % n
				for k := 0; k < n; k++ {
					if b.slots[j] != nil {
						b.placeCursor = j
						break
					}
					j = (j - 1 + n) % n
				}
			}
			return taken, takenSlot, true
		}
		idx = (idx + 1) % n
	}
	return nil, -1, false
}
