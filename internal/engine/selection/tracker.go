// Package selection tracks which job item is active, as named by the navigation fragment.
package selection

import (
	"sync"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
)

// Tracker mirrors the active id encoded in the navigator's fragment.
type Tracker struct {
	nav ports.Navigator

	mu          sync.Mutex
	active      domain.ActiveID
	unsubscribe func()

	changes observe.Subject[domain.ActiveID]
}

// NewTracker returns a tracker for nav. It reports no active id until Init is called.
func NewTracker(nav ports.Navigator) *Tracker {
	return &Tracker{nav: nav}
}

// Init parses the current fragment and starts following fragment changes.
// Calling Init on an initialised tracker does nothing.
func (t *Tracker) Init() {
	t.mu.Lock()
	if t.unsubscribe != nil {
		t.mu.Unlock()
		return
	}
	t.active = domain.ParseFragment(t.nav.Fragment())
	t.unsubscribe = t.nav.Subscribe(t.onFragment)
	t.mu.Unlock()
}

// Active returns the current active id.
func (t *Tracker) Active() domain.ActiveID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Subscribe registers fn for every change of the active id.
func (t *Tracker) Subscribe(fn func(domain.ActiveID)) (unsubscribe func()) {
	return t.changes.Subscribe(fn)
}

// Dispose stops following fragment changes. The last active id is kept.
func (t *Tracker) Dispose() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (t *Tracker) onFragment(fragment string) {
	next := domain.ParseFragment(fragment)

	t.mu.Lock()
	if t.unsubscribe == nil || next == t.active {
		t.mu.Unlock()
		return
	}
	t.active = next
	t.mu.Unlock()

	t.changes.Publish(next)
}
