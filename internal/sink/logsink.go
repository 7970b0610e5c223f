package sink

import (
	"context"

	"go.uber.org/zap"
)

// Logger is a sink that reports notifications to the structured log. It
// is the local stand-in for a third-party pixel integration.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a log-backed sink.
func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// Track implements Sink.
func (l *Logger) Track(ctx context.Context, n Notification) error {
	l.log.Info("Event tracked",
		zap.String("event_name", n.EventName),
		zap.String("category", n.Category),
		zap.String("label", n.Label),
		zap.Any("value", n.Value))
	return nil
}
