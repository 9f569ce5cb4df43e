package tui

import (
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
)

var _ ports.ClickSource = (*ClickSource)(nil)

// ClickSource delivers mouse presses received by the program.
type ClickSource struct {
	clicks observe.Subject[domain.ClickEvent]
}

// Subscribe registers fn for every press.
func (c *ClickSource) Subscribe(fn func(domain.ClickEvent)) (unsubscribe func()) {
	return c.clicks.Subscribe(fn)
}

// Press delivers a press at p.
func (c *ClickSource) Press(p domain.Point) {
	c.clicks.Publish(domain.ClickEvent{Target: p})
}

// area is an element whose bounds follow the current layout.
type area func() domain.Region

func (a area) Contains(p domain.Point) bool {
	return a().Contains(p)
}
