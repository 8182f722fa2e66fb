package watcher

import (
	"container/list"
	"sync"
)

// seenSet is a bounded, recency-ordered set of login ids that have already
// been announced. Once the capacity is exceeded the least recently observed
// id is evicted; an evicted id that still exists in the login table will be
// announced again, which is accepted in exchange for bounded memory.
type seenSet struct {
	mu       sync.Mutex
	capacity int
	elems    map[string]*list.Element
	order    *list.List
}

func newSeenSet(capacity int) *seenSet {
	if capacity < 1 {
		capacity = 1
	}
	return &seenSet{
		capacity: capacity,
		elems:    map[string]*list.Element{},
		order:    list.New(),
	}
}

// Add records id as observed. It returns true when the id was not already
// present. Re-observing an id refreshes its recency so ids still present in
// the table are not evicted while older-but-gone ids are.
func (s *seenSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.elems[id]; ok {
		s.order.MoveToBack(elem)
		return false
	}

	s.elems[id] = s.order.PushBack(id)
	for s.order.Len() > s.capacity {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.elems, oldest.Value.(string))
	}
	return true
}

func (s *seenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
