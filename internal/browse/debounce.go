package browse

import (
	"sync"
	"time"
)

// Debouncer runs fn once, delay after the last Trigger.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger restarts the wait.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn()
}

// Flush runs a pending call now. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	if pending {
		d.fn()
	}
	return pending
}

// Stop drops any pending call and returns once a call already fired by the
// timer has finished. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.running.Wait()
}
