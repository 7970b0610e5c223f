// Package ledger owns the persisted analytics document and the rules
// that turn a raw event stream into funnel counters, day buckets and
// conversion rates.
package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/diegoprojetos/funneledger/internal/domain"
	"github.com/diegoprojetos/funneledger/internal/envinfo"
	"github.com/diegoprojetos/funneledger/internal/sink"
	"github.com/diegoprojetos/funneledger/internal/store"
)

// sinkCategory labels every outbound notification.
const sinkCategory = "Funnel"

// SessionProvider yields the session id events are attributed to.
// session.Manager is the production implementation.
type SessionProvider interface {
	SessionID() string
}

// Ledger records interaction events into the analytics document and keeps
// its derived counters consistent. All mutation happens under one mutex so
// snapshot readers never observe a half-updated document.
type Ledger struct {
	mu       sync.Mutex
	doc      *domain.Ledger
	store    store.LedgerStore
	sessions SessionProvider
	env      envinfo.Collector
	sinks    []sink.Sink
	log      *zap.Logger
	now      func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSinks registers best-effort notification sinks invoked after every
// recorded event.
func WithSinks(sinks ...sink.Sink) Option {
	return func(l *Ledger) {
		l.sinks = append(l.sinks, sinks...)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New loads the stored document and returns an active ledger. An absent,
// unreadable or malformed document falls back to the default empty
// document; loading never fails.
func New(ctx context.Context, st store.LedgerStore, sessions SessionProvider, env envinfo.Collector, log *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:    st,
		sessions: sessions,
		env:      env,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	doc, err := st.Load(ctx)
	if err != nil {
		log.Warn("Stored ledger unreadable, starting from default document",
			zap.Error(err))
		doc = nil
	}
	if doc == nil {
		doc = domain.DefaultLedger()
	}
	normalize(doc)
	l.doc = doc

	log.Info("Ledger active",
		zap.Int("total_sessions", doc.TotalSessions),
		zap.Int("events", len(doc.Events)))

	return l
}

// normalize repairs nil maps and slices in a freshly decoded document so
// the recording path can assume they exist.
func normalize(doc *domain.Ledger) {
	if doc.Events == nil {
		doc.Events = []domain.Event{}
	}
	if doc.FunnelMetrics == nil {
		doc.FunnelMetrics = map[string]int{}
	}
	if doc.DailyStats == nil {
		doc.DailyStats = map[string]domain.DayStats{}
	}
	if doc.ConversionRates == nil {
		doc.ConversionRates = map[string]string{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []*domain.Session{}
	}
	for _, s := range doc.Sessions {
		if s.Events == nil {
			s.Events = []string{}
		}
		if s.FunnelFlags == nil {
			s.FunnelFlags = map[string]bool{}
		}
	}
}

// RecordEvent appends one interaction event and updates every derived
// counter, then persists the whole document. It never fails: persistence
// is best-effort and the in-memory document stays authoritative when the
// write does not land.
func (l *Ledger) RecordEvent(ctx context.Context, name string, payload map[string]any) {
	l.mu.Lock()

	now := l.now()
	evCtx := map[string]any{}
	for k, v := range l.env.Describe() {
		evCtx[k] = v
	}
	for k, v := range payload {
		evCtx[k] = v
	}

	pageURL, _ := evCtx["url"].(string)
	event := domain.Event{
		Name:      name,
		SessionID: l.sessions.SessionID(),
		Timestamp: now,
		Page:      domain.ClassifyPage(pageURL),
		Context:   evCtx,
	}

	l.doc.Events = append(l.doc.Events, event)

	if domain.IsFunnelStage(name) {
		l.doc.FunnelMetrics[name]++
	}

	day := domain.DayKey(now)
	bucket, ok := l.doc.DailyStats[day]
	if !ok {
		bucket = domain.DayStats{Events: map[string]int{}}
		l.doc.DailyStats[day] = bucket
	}
	bucket.Events[name]++

	sess := l.doc.FindSession(event.SessionID)
	if sess == nil {
		sess = domain.NewSession(event.SessionID, now)
		l.doc.Sessions = append(l.doc.Sessions, sess)
		l.doc.TotalSessions++
	}
	sess.Touch(name, now)

	l.doc.ConversionRates = ComputeConversionRates(l.doc.FunnelMetrics)

	l.persist(ctx)

	l.log.Debug("Event recorded",
		zap.String("event_name", name),
		zap.String("session_id", event.SessionID),
		zap.String("page", string(event.Page)))

	l.mu.Unlock()

	l.notifySinks(ctx, event, payload)
}

// persist writes the document to the store. Failure is logged and
// swallowed: the in-memory document remains correct and later events will
// retry the write. Callers hold the mutex.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, l.doc); err != nil {
		l.log.Error("Failed to persist ledger, continuing in memory",
			zap.Error(err))
	}
}

// notifySinks dispatches the best-effort notification to every registered
// sink. Each dispatch has its own error and panic boundary so one failing
// integration cannot affect the others or the recording path.
func (l *Ledger) notifySinks(ctx context.Context, event domain.Event, payload map[string]any) {
	n := sink.Notification{
		EventName: event.Name,
		Category:  sinkCategory,
		Label:     string(event.Page),
		Value:     payload,
	}
	for _, s := range l.sinks {
		l.dispatch(ctx, s, n)
	}
}

func (l *Ledger) dispatch(ctx context.Context, s sink.Sink, n sink.Notification) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("Sink panicked",
				zap.String("event_name", n.EventName),
				zap.Any("panic", r))
		}
	}()

	if err := s.Track(ctx, n); err != nil {
		l.log.Warn("Sink rejected event",
			zap.String("event_name", n.EventName),
			zap.Error(err))
	}
}

// Snapshot returns a deep copy of the current document. Callers may
// mutate the copy freely without affecting the ledger.
func (l *Ledger) Snapshot() *domain.Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Clone()
}

// Reset replaces the document with the default empty document when
// confirmed is true, persisting the fresh document best-effort. The
// confirmation decision belongs to the caller; this is a pure state
// transition.
func (l *Ledger) Reset(ctx context.Context, confirmed bool) bool {
	if !confirmed {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.doc = domain.DefaultLedger()
	l.persist(ctx)

	l.log.Info("Ledger reset")
	return true
}

// Close releases the underlying store.
func (l *Ledger) Close() error {
	return l.store.Close()
}
