package analytics

import (
	"context"
	"log/slog"
)

// Sink stores analytics events.
type Sink interface {
	Write(ctx context.Context, e Event) error
	Ping(ctx context.Context) error
	Close() error
}

// LogSink writes events to a structured logger. It is the default when no
// Redis is configured.
type LogSink struct {
	logger *slog.Logger
}

var _ Sink = (*LogSink)(nil)

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e Event) error {
	s.logger.Info("Analytics event",
		"event", e.Name,
		"session_id", e.SessionID,
		"payload", e.Payload)
	return nil
}

func (s *LogSink) Ping(ctx context.Context) error { return nil }

func (s *LogSink) Close() error { return nil }

// NopSink discards everything.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) Write(ctx context.Context, e Event) error { return nil }
func (NopSink) Ping(ctx context.Context) error           { return nil }
func (NopSink) Close() error                             { return nil }
