package telemetry

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// MsgRequestStart is sent to the program when a job API request begins.
type MsgRequestStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgRequestDone is sent to the program when a job API request ends.
type MsgRequestDone struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// Sender delivers messages to a running Bubble Tea program.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge implements sdktrace.SpanProcessor to bridge request spans to Bubble Tea messages.
type TUIBridge struct {
	program Sender
}

// NewTUIBridge returns a new TUIBridge.
func NewTUIBridge(program Sender) *TUIBridge {
	return &TUIBridge{
		program: program,
	}
}

// OnStart is called when a span starts.
func (b *TUIBridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.program == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	b.program.Send(MsgRequestStart{
		SpanID:    sc.SpanID().String(),
		Name:      s.Name(),
		StartTime: s.StartTime(),
	})
}

// OnEnd is called when a span ends.
func (b *TUIBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.program == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "request failed"
		}
		err = errors.New(desc)
	}

	b.program.Send(MsgRequestDone{
		SpanID:  sc.SpanID().String(),
		EndTime: s.EndTime(),
		Err:     err,
	})
}

// ForceFlush does nothing.
func (b *TUIBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *TUIBridge) Shutdown(context.Context) error {
	return nil
}

// NewProvider returns a tracer provider that forwards every span to program.
func NewProvider(program Sender) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewTUIBridge(program)))
}
