package domain

import "time"

// DayKeyFormat is the calendar-day key used for dailyStats buckets.
// Days are bucketed in UTC so the key is stable across machine timezones.
const DayKeyFormat = "2006-01-02"

// DayKey returns the dailyStats bucket key for the given instant.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// DayStats holds per-event-name occurrence counts for one calendar day.
type DayStats struct {
	Events map[string]int `json:"events"`
}

// Ledger is the aggregate root: the single persisted analytics document
// holding the raw event log, per-session state and all derived counters.
type Ledger struct {
	TotalSessions int `json:"totalSessions"`

	// Events is the append-only global event log, in arrival order.
	Events []Event `json:"events"`

	// FunnelMetrics counts total occurrences of each canonical funnel stage.
	// Every occurrence increments; counts are not deduplicated per session.
	FunnelMetrics map[string]int `json:"funnelMetrics"`

	// DailyStats maps a YYYY-MM-DD (UTC) day key to that day's counters.
	DailyStats map[string]DayStats `json:"dailyStats"`

	// ConversionRates is derived from FunnelMetrics on every recorded event.
	// Values are percentages formatted with exactly two decimal digits.
	ConversionRates map[string]string `json:"conversionRates"`

	// Sessions holds every session ever seen, in first-seen order,
	// unique by id.
	Sessions []*Session `json:"sessions"`
}

// DefaultLedger returns the empty document used when no prior document
// exists or the stored one is unreadable. Maps and slices are non-nil so
// the persisted JSON shape is stable from the first write.
func DefaultLedger() *Ledger {
	metrics := make(map[string]int, len(FunnelStages))
	for _, stage := range FunnelStages {
		metrics[stage] = 0
	}
	return &Ledger{
		TotalSessions:   0,
		Events:          []Event{},
		FunnelMetrics:   metrics,
		DailyStats:      map[string]DayStats{},
		ConversionRates: map[string]string{},
		Sessions:        []*Session{},
	}
}

// FindSession returns the session with the given id, or nil.
func (l *Ledger) FindSession(id string) *Session {
	for _, s := range l.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of the document. Snapshot readers receive a
// clone so they can never observe or cause a half-updated ledger.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{
		TotalSessions:   l.TotalSessions,
		Events:          make([]Event, len(l.Events)),
		FunnelMetrics:   make(map[string]int, len(l.FunnelMetrics)),
		DailyStats:      make(map[string]DayStats, len(l.DailyStats)),
		ConversionRates: make(map[string]string, len(l.ConversionRates)),
		Sessions:        make([]*Session, len(l.Sessions)),
	}
	for i, ev := range l.Events {
		cloned := ev
		if ev.Context != nil {
			cloned.Context = make(map[string]any, len(ev.Context))
			for k, v := range ev.Context {
				cloned.Context[k] = v
			}
		}
		out.Events[i] = cloned
	}
	for k, v := range l.FunnelMetrics {
		out.FunnelMetrics[k] = v
	}
	for day, stats := range l.DailyStats {
		counts := make(map[string]int, len(stats.Events))
		for name, n := range stats.Events {
			counts[name] = n
		}
		out.DailyStats[day] = DayStats{Events: counts}
	}
	for k, v := range l.ConversionRates {
		out.ConversionRates[k] = v
	}
	for i, s := range l.Sessions {
		out.Sessions[i] = s.clone()
	}
	return out
}
