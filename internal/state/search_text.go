package state

import (
	"sync"
	"time"

	"go.trai.ch/jobsync/internal/engine/debounce"
	"go.trai.ch/jobsync/internal/engine/observe"
)

// SearchTextState is the raw and the debounced search text.
type SearchTextState struct {
	Raw       string
	Debounced string
}

// SearchText holds the text typed into the search box.
// The debounced text follows the raw text once it has been stable for the delay.
type SearchText struct {
	debounced *debounce.Debouncer[string]

	mu  sync.Mutex
	raw string

	changes     observe.Subject[SearchTextState]
	unsubscribe func()
}

// NewSearchText returns an empty search text scope.
func NewSearchText(delay time.Duration) *SearchText {
	s := &SearchText{
		debounced: debounce.New("", delay),
	}
	s.unsubscribe = s.debounced.Subscribe(func(string) {
		s.changes.Publish(s.State())
	})
	return s
}

// OnInputChange records new raw input and schedules the debounced update.
func (s *SearchText) OnInputChange(text string) {
	s.mu.Lock()
	if text == s.raw {
		s.mu.Unlock()
		return
	}
	s.raw = text
	s.mu.Unlock()

	s.debounced.Set(text)
	s.changes.Publish(s.State())
}

// State returns the current raw and debounced text.
func (s *SearchText) State() SearchTextState {
	s.mu.Lock()
	raw := s.raw
	s.mu.Unlock()

	return SearchTextState{Raw: raw, Debounced: s.debounced.Value()}
}

// Subscribe registers fn for every change of the raw or debounced text.
func (s *SearchText) Subscribe(fn func(SearchTextState)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// SubscribeDebounced registers fn for every change of the debounced text only.
func (s *SearchText) SubscribeDebounced(fn func(string)) (unsubscribe func()) {
	return s.debounced.Subscribe(fn)
}

// Flush applies pending input immediately.
func (s *SearchText) Flush() {
	s.debounced.Flush()
}

// Dispose cancels a pending debounced update.
func (s *SearchText) Dispose() {
	s.debounced.Dispose()
	s.unsubscribe()
}
