package catalog

import "sync/atomic"

// Sequence hands out monotonic request numbers so that slow catalog
// responses arriving after a newer request was issued can be discarded.
type Sequence struct {
	counter atomic.Uint64
}

// Next reserves the next request number and makes it current.
func (s *Sequence) Next() uint64 {
	return s.counter.Add(1)
}

// IsCurrent reports whether seq is still the latest issued request.
func (s *Sequence) IsCurrent(seq uint64) bool {
	return s.counter.Load() == seq
}
