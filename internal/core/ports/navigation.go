package ports

import "go.trai.ch/jobsync/internal/core/domain"

// Navigator exposes the current navigation fragment and its changes.
//
//go:generate mockgen -source=navigation.go -destination=mocks/mock_navigation.go -package=mocks
type Navigator interface {
	// Fragment returns the current fragment, including its leading "#".
	Fragment() string

	// Subscribe registers fn for every subsequent fragment change.
	// The returned function removes the registration.
	Subscribe(fn func(fragment string)) (unsubscribe func())
}

// ClickSource delivers pointer presses.
type ClickSource interface {
	// Subscribe registers fn for every click. The returned function removes the registration.
	Subscribe(fn func(domain.ClickEvent)) (unsubscribe func())
}

// Element is a referenced area that may contain a click target.
// A detached element contains nothing.
type Element interface {
	Contains(target domain.Point) bool
}
