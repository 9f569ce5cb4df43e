// Package debounce implements trailing-edge debouncing of a changing value.
package debounce

import (
	"sync"
	"time"

	"go.trai.ch/jobsync/internal/engine/observe"
)

// Debouncer exposes a value that follows its input only once the input has
// been stable for the full delay.
type Debouncer[T comparable] struct {
	mu       sync.Mutex
	delay    time.Duration
	value    T
	pending  T
	timer    *time.Timer
	gen      uint64
	disposed bool

	emitMu  sync.Mutex
	emitted uint64
	changes observe.Subject[T]
}

// New creates a debouncer whose value starts at initial.
func New[T comparable](initial T, delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay:   delay,
		value:   initial,
		pending: initial,
	}
}

// Set records a new input value. Any previously scheduled update is
// cancelled and a new timer is armed.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}

	d.pending = v
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Value returns the debounced value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// scheduled reports whether an update is armed.
func (d *Debouncer[T]) scheduled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Subscribe registers fn for every change of the debounced value.
func (d *Debouncer[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	return d.changes.Subscribe(fn)
}

// fire is called when the timer armed for gen expires.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A newer Set or Dispose superseded this timer.
	if d.disposed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	changed := d.pending != d.value
	d.value = d.pending
	v := d.value
	d.mu.Unlock()

	if changed {
		d.emit(gen, v)
	}
}

// emit publishes v unless a newer generation was already published.
func (d *Debouncer[T]) emit(gen uint64, v T) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	if gen < d.emitted {
		return
	}
	d.emitted = gen
	d.changes.Publish(v)
}

// Flush applies a scheduled update immediately.
// It blocks until subscribers have been notified.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer == nil || d.disposed {
		d.mu.Unlock()
		return
	}
	if !d.timer.Stop() {
		// Timer already fired, let it complete rather than applying twice.
		d.mu.Unlock()
		return
	}
	gen := d.gen
	d.mu.Unlock()

	d.fire(gen)
}

// Dispose cancels any scheduled update. Later calls to Set are ignored.
func (d *Debouncer[T]) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.disposed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
