package domain

import "time"

// Canonical funnel stage names recognized by the aggregator. Any other
// event name is logged in the event stream but not counted in FunnelMetrics.
const (
	StageQuizLoaded        = "quiz_loaded"
	StageQuizStarted       = "quiz_started"
	StageQuizCompleted     = "quiz_completed"
	StageSalesPageLoaded   = "sales_page_loaded"
	StageSalesPageScrolled = "sales_page_scrolled"
	StageCheckoutClicked   = "checkout_clicked"
)

// FunnelStages lists the canonical stages in funnel order.
var FunnelStages = []string{
	StageQuizLoaded,
	StageQuizStarted,
	StageQuizCompleted,
	StageSalesPageLoaded,
	StageSalesPageScrolled,
	StageCheckoutClicked,
}

var funnelStageSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(FunnelStages))
	for _, name := range FunnelStages {
		set[name] = struct{}{}
	}
	return set
}()

// IsFunnelStage reports whether name is one of the canonical funnel stages.
func IsFunnelStage(name string) bool {
	_, ok := funnelStageSet[name]
	return ok
}

// Event represents one observed interaction. Events are immutable once
// created and only ever appended to the ledger's event log.
type Event struct {
	Name      string         `json:"name"`
	SessionID string         `json:"sessionId"`
	Timestamp time.Time      `json:"timestamp"`
	Page      Page           `json:"page"`
	Context   map[string]any `json:"context"`
}
