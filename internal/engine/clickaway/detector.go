// Package clickaway detects clicks that land outside a set of elements.
package clickaway

import (
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
)

// Detector calls its handler once for every click whose target is contained
// in none of its elements.
type Detector struct {
	source   ports.ClickSource
	elements []ports.Element
	handler  func(domain.ClickEvent)

	mu          sync.Mutex
	unsubscribe func()
}

// New returns a detector. It does not listen until Init is called.
// Nil elements are treated as detached and contain nothing.
func New(source ports.ClickSource, elements []ports.Element, handler func(domain.ClickEvent)) *Detector {
	return &Detector{
		source:   source,
		elements: elements,
		handler:  handler,
	}
}

// Init registers the detector with its click source.
// Calling Init on a listening detector does nothing.
func (d *Detector) Init() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unsubscribe != nil {
		return
	}
	d.unsubscribe = d.source.Subscribe(d.onClick)
}

// Dispose removes the registration made by Init.
func (d *Detector) Dispose() {
	d.mu.Lock()
	unsubscribe := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Listening reports whether the detector is registered.
func (d *Detector) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unsubscribe != nil
}

func (d *Detector) onClick(ev domain.ClickEvent) {
	if !d.Listening() {
		return
	}
	for _, el := range d.elements {
		if el != nil && el.Contains(ev.Target) {
			return
		}
	}
	d.handler(ev)
}
