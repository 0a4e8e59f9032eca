package orderbook

import (
	"fmt"

	"github.com/gammazero/deque"
)

const nilSlot int32 = -1

// position is the handle of an order inside its price level FIFO. It is an
// arena slot index plus the slot generation at allocation time; releasing
// the slot bumps the generation so stale handles are detected instead of
// silently pointing at a reused slot.
type position struct {
	slot int32
	gen  uint32
}

type orderSlot struct {
	order *Order
	prev  int32
	next  int32
	gen   uint32
}

// orderArena owns the FIFO links of every resting order. Released slot
// indexes are recycled oldest first.
type orderArena struct {
	slots []orderSlot
	free  deque.Deque[int32]
}

func (a *orderArena) alloc(o *Order) position {
	var idx int32
	if a.free.Len() > 0 {
		idx = a.free.PopFront()
	} else {
		a.slots = append(a.slots, orderSlot{})
		idx = int32(len(a.slots) - 1)
	}

	s := &a.slots[idx]
	s.order = o
	s.prev = nilSlot
	s.next = nilSlot
	return position{slot: idx, gen: s.gen}
}

func (a *orderArena) release(p position) {
	s := &a.slots[p.slot]
	s.order = nil
	s.prev = nilSlot
	s.next = nilSlot
	s.gen++
	a.free.PushBack(p.slot)
}

func (a *orderArena) valid(p position) bool {
	if p.slot < 0 || int(p.slot) >= len(a.slots) {
		return false
	}
	s := &a.slots[p.slot]
	return s.order != nil && s.gen == p.gen
}

func (a *orderArena) mustValid(p position) {
	if !a.valid(p) {
		panic(fmt.Errorf("%w: stale position slot=%d gen=%d", ErrInvariantViolation, p.slot, p.gen))
	}
}

// live is the number of slots currently holding an order.
func (a *orderArena) live() int {
	return len(a.slots) - a.free.Len()
}
