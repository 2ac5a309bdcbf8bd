package nav

import "sync"

// Signal broadcasts scroll offsets to subscribers.
type Signal struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func(offset int)
}

// NewSignal returns a signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{subs: make(map[uint64]func(int))}
}

// Subscribe registers fn and returns its release function. Calling the
// release function more than once is harmless.
func (s *Signal) Subscribe(fn func(offset int)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Publish delivers offset to every current subscriber. Callbacks run outside
// the lock so they may unsubscribe.
func (s *Signal) Publish(offset int) {
	s.mu.Lock()
	fns := make([]func(int), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(offset)
	}
}

// Subscribers reports how many subscriptions are live.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
