// Package debounce delays a stream of values until it goes quiet.
//
// A Debouncer holds at most one pending timer. Every Push restarts it, and
// only the value present when the timer fires is published. Close stops the
// timer and guarantees that publish is not called once it returns.
package debounce

import (
	"sync"
	"time"
)

// Debouncer publishes the most recent pushed value after delay has elapsed
// without another push.
type Debouncer[T any] struct {
	delay   time.Duration
	publish func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	value   T
	pending bool
	closed  bool

	// emit serializes publish calls with Close.
	emit sync.Mutex
}

// New returns a debouncer that calls publish with the settled value.
// publish runs on the timer goroutine and must not call Close.
func New[T any](delay time.Duration, publish func(T)) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{delay: delay, publish: publish}
}

// Delay reports the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Push records v as the latest value and restarts the timer.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.gen++
	d.value = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush publishes the pending value immediately, if any.
func (d *Debouncer[T]) Flush() {
	d.emit.Lock()
	defer d.emit.Unlock()

	d.mu.Lock()
	if d.closed || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.publish(v)
}

// Pending reports whether a value is waiting for its timer.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Close stops the pending timer. It blocks until an in-flight publish
// returns, after which no further publish happens. Safe to call repeatedly.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	d.closed = true
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.emit.Lock()
	//nolint:staticcheck // SA2001: empty critical section waits for in-flight publish
	d.emit.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.emit.Lock()
	defer d.emit.Unlock()

	d.mu.Lock()
	if d.closed || gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.publish(v)
}

// take clears the pending value. Callers hold d.mu.
func (d *Debouncer[T]) take() T {
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return v
}
