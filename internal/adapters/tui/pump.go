package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Pump forwards messages to a program in the order they were sent.
// Send never blocks, so state changes raised while the program handles a
// key press cannot deadlock its event loop.
type Pump struct {
	mu     sync.Mutex
	queue  []tea.Msg
	wake   chan struct{}
	closed bool
}

// NewPump creates an empty pump.
func NewPump() *Pump {
	return &Pump{wake: make(chan struct{}, 1)}
}

// Send queues msg. Messages sent after Close are dropped.
func (p *Pump) Send(msg tea.Msg) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, msg)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run delivers queued messages to program until ctx is done or Close is called.
func (p *Pump) Run(ctx context.Context, program interface{ Send(tea.Msg) }) {
	for {
		p.mu.Lock()
		batch := p.queue
		p.queue = nil
		closed := p.closed
		p.mu.Unlock()

		for _, msg := range batch {
			program.Send(msg)
		}
		if closed {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-p.wake:
		}
	}
}

// Close stops Run once the queued messages are delivered.
func (p *Pump) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}
