package inmo

import (
	"context"
	"time"
)

// ActivityEventType classifies auth events emitted by the Auther.
type ActivityEventType string

const (
	ActivityEventRegisterSuccess ActivityEventType = "auth.register.success"
	ActivityEventRegisterFailure ActivityEventType = "auth.register.failure"
	ActivityEventLoginSuccess    ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure    ActivityEventType = "auth.login.failure"
)

// ActivityEvent describes a single auth event.
type ActivityEvent struct {
	EventType  ActivityEventType
	Username   string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink receives auth events. Implementations must tolerate
// being called on the request path; errors are logged, never returned
// to the caller.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error { return nil }

// LoggerActivitySink writes events to the configured logger.
type LoggerActivitySink struct {
	logger Logger
}

func NewLoggerActivitySink(logger Logger) *LoggerActivitySink {
	if logger == nil {
		logger = defLogger{}
	}
	return &LoggerActivitySink{logger: logger}
}

func (s *LoggerActivitySink) Record(_ context.Context, event ActivityEvent) error {
	s.logger.Info("auth activity event=%s username=%s at=%s",
		event.EventType,
		event.Username,
		event.OccurredAt.Format(time.RFC3339),
	)
	return nil
}

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}
