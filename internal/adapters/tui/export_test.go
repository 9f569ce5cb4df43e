package tui

import "go.trai.ch/jobsync/internal/core/domain"

// ButtonRegion exposes the bookmarks button bounds for testing.
func (m *Model) ButtonRegion() domain.Region {
	return m.buttonRegion()
}

// PopoverRegion exposes the popover bounds for testing.
func (m *Model) PopoverRegion() domain.Region {
	return m.popoverRegion()
}

// ClearNotice builds the message that hides the notice shown since seq.
func ClearNotice(seq int) any {
	return msgClearNotice{seq: seq}
}
