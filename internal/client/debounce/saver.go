package debounce

import (
	"sync"
	"time"
)

// Saver keeps the latest edited state and hands it to save once edits pause
// for the window. N edits inside one window produce one save of the last
// state.
type Saver[T any] struct {
	c    *Coalescer
	save func(T)

	mu      sync.Mutex
	latest  T
	stopped bool
}

func NewSaver[T any](window time.Duration, save func(T)) *Saver[T] {
	return &Saver[T]{c: NewCoalescer(window), save: save}
}

// Edit records state and restarts the window. Edits after Stop are ignored.
func (s *Saver[T]) Edit(state T) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.latest = state
	s.mu.Unlock()

	s.c.Arm(s.fire)
}

func (s *Saver[T]) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	state := s.latest
	s.mu.Unlock()
	s.save(state)
}

// Flush saves the pending state immediately, if there is one.
func (s *Saver[T]) Flush() bool {
	return s.c.Flush()
}

func (s *Saver[T]) Pending() bool {
	return s.c.Pending()
}

// Stop cancels the pending save, waits for a save already running and
// ignores later edits. Call Flush first to keep the last edit.
func (s *Saver[T]) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.c.Cancel()
	s.c.Wait()
}
