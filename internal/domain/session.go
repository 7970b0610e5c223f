package domain

import "time"

// Session tracks one browsing session's worth of interaction. Sessions are
// created on the first event bearing a new session id and mutated on every
// subsequent event; they are only removed by a full ledger reset.
type Session struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"startTime"`
	LastActivity time.Time `json:"lastActivity"`

	// Events is the chronological sequence of event names observed for this
	// session. Duplicates are kept.
	Events []string `json:"events"`

	// FunnelFlags records which event names this session reached at least
	// once. Membership is idempotent.
	FunnelFlags map[string]bool `json:"funnelFlags"`
}

// NewSession creates a session first seen at the given instant.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		StartTime:    now,
		LastActivity: now,
		Events:       []string{},
		FunnelFlags:  map[string]bool{},
	}
}

// Touch records one more event against the session.
func (s *Session) Touch(name string, now time.Time) {
	s.Events = append(s.Events, name)
	s.FunnelFlags[name] = true
	s.LastActivity = now
}

// clone returns an independent copy of the session.
func (s *Session) clone() *Session {
	out := &Session{
		ID:           s.ID,
		StartTime:    s.StartTime,
		LastActivity: s.LastActivity,
		Events:       make([]string, len(s.Events)),
		FunnelFlags:  make(map[string]bool, len(s.FunnelFlags)),
	}
	copy(out.Events, s.Events)
	for k, v := range s.FunnelFlags {
		out.FunnelFlags[k] = v
	}
	return out
}
