package engine

import "sync/atomic"

// sequencer hands out strictly increasing sequence numbers, one per
// accepted book mutation. Next is only called with the book lock held;
// Current may be read from anywhere.
type sequencer struct {
	last atomic.Uint64
}

func (s *sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last issued sequence, 0 before the first mutation.
func (s *sequencer) Current() uint64 {
	return s.last.Load()
}
