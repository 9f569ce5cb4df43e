// Package notify delivers query failures to the user.
package notify

import (
	"time"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/observe"
)

var _ ports.ErrorReporter = (*Reporter)(nil)

// Notice is one reported failure, ready to display.
type Notice struct {
	Key     domain.QueryKey
	Message string
	Err     error
	At      time.Time
}

// Reporter turns failures into notices. Subscribers receive every notice;
// with no subscriber the notice is logged as a warning.
type Reporter struct {
	logger  ports.Logger
	notices observe.Subject[Notice]
}

// NewReporter creates a reporter falling back to logger.
func NewReporter(logger ports.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report publishes a notice for the failed resolution of key.
func (r *Reporter) Report(key domain.QueryKey, err error) {
	notice := Notice{
		Key:     key,
		Message: domain.UserMessage(err),
		Err:     err,
		At:      time.Now(),
	}

	if r.notices.Len() == 0 {
		if r.logger != nil {
			r.logger.Warn(notice.Message)
		}
		return
	}
	r.notices.Publish(notice)
}

// Subscribe registers fn for every notice.
func (r *Reporter) Subscribe(fn func(Notice)) (unsubscribe func()) {
	return r.notices.Subscribe(fn)
}
