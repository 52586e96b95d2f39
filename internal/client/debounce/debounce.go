// Package debounce collapses bursts of edits into one delayed save.
package debounce

import (
	"sync"
	"time"
)

// Default windows of the dashboard editors.
const (
	NoteWindow  = 450 * time.Millisecond
	DraftWindow = 2 * time.Second
)

// Coalescer runs the most recently armed function once the window has passed
// without a new Arm. Arming again cancels the pending run.
type Coalescer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	fn     func()
	gen    uint64

	// running counts fns started by a timer and not yet returned
	running sync.WaitGroup
}

func NewCoalescer(window time.Duration) *Coalescer {
	return &Coalescer{window: window}
}

// Arm schedules fn, replacing whatever was pending.
func (c *Coalescer) Arm(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.fn = fn
	c.timer = time.AfterFunc(c.window, func() { c.fire(gen) })
}

// fire runs the pending fn unless a later Arm, Cancel or Flush superseded
// the timer that called it.
func (c *Coalescer) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.fn == nil {
		c.mu.Unlock()
		return
	}
	fn := c.take()
	c.running.Add(1)
	c.mu.Unlock()

	defer c.running.Done()
	fn()
}

// take clears the pending state. Must be called with c.mu held.
func (c *Coalescer) take() func() {
	fn := c.fn
	c.fn = nil
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	return fn
}

// Cancel drops the pending fn without running it.
func (c *Coalescer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.take()
}

// Flush runs the pending fn now, on the caller's goroutine. It reports
// whether anything was pending.
func (c *Coalescer) Flush() bool {
	c.mu.Lock()
	fn := c.take()
	c.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Wait blocks until fns already started by the timer have returned.
func (c *Coalescer) Wait() {
	c.running.Wait()
}

func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fn != nil
}
