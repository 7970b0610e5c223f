// Package sink defines the outbound notification contract for third-party
// reporting integrations. Sinks are strictly best-effort: the ledger
// isolates every sink call so a failing integration can never affect the
// local recording path.
package sink

import "context"

// Notification is the best-effort signal emitted after each recorded event.
type Notification struct {
	EventName string
	Category  string
	Label     string
	Value     map[string]any
}

// Sink receives event notifications. Implementations may fail or panic;
// the caller isolates each dispatch.
type Sink interface {
	Track(ctx context.Context, n Notification) error
}
