package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFunnelStage(t *testing.T) {
	for _, stage := range FunnelStages {
		assert.True(t, IsFunnelStage(stage), stage)
	}
	assert.False(t, IsFunnelStage("page_view"))
	assert.False(t, IsFunnelStage(""))
	assert.False(t, IsFunnelStage("QUIZ_LOADED"), "membership is case sensitive")
}

func TestClassifyPage(t *testing.T) {
	tests := []struct {
		url  string
		want Page
	}{
		{"https://example.com/quiz", PageQuiz},
		{"https://example.com/quiz/step-2?utm_source=ads", PageQuiz},
		{"https://example.com/sales", PageSales},
		{"https://example.com/vendas", PageSales},
		{"https://example.com/dashboard", PageDashboard},
		{"https://example.com/", PageUnknown},
		{"", PageUnknown},
		{"::not a url::", PageUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPage(tt.url), tt.url)
	}
}

func TestDayKey_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2026, 3, 14, 22, 0, 0, 0, loc) // 03:00 next day in UTC

	assert.Equal(t, "2026-03-15", DayKey(late))
	assert.Equal(t, "2026-03-14", DayKey(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)))
}

func TestDefaultLedger(t *testing.T) {
	l := DefaultLedger()

	assert.Equal(t, 0, l.TotalSessions)
	assert.NotNil(t, l.Events)
	assert.Empty(t, l.Events)
	assert.Empty(t, l.Sessions)
	assert.Empty(t, l.DailyStats)
	assert.Empty(t, l.ConversionRates)

	for _, stage := range FunnelStages {
		count, ok := l.FunnelMetrics[stage]
		assert.True(t, ok, stage)
		assert.Equal(t, 0, count)
	}
}

func TestSessionTouch(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s := NewSession("s1", start)

	s.Touch(StageQuizLoaded, start.Add(time.Minute))
	s.Touch(StageQuizLoaded, start.Add(2*time.Minute))

	assert.Equal(t, []string{StageQuizLoaded, StageQuizLoaded}, s.Events)
	assert.Len(t, s.FunnelFlags, 1)
	assert.Equal(t, start, s.StartTime)
	assert.Equal(t, start.Add(2*time.Minute), s.LastActivity)
}

func TestLedgerClone_DeepCopies(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	l := DefaultLedger()
	l.Events = append(l.Events, Event{
		Name:      StageQuizLoaded,
		SessionID: "s1",
		Timestamp: now,
		Page:      PageQuiz,
		Context:   map[string]any{"url": "/quiz"},
	})
	l.FunnelMetrics[StageQuizLoaded] = 1
	l.DailyStats["2026-01-02"] = DayStats{Events: map[string]int{StageQuizLoaded: 1}}
	l.Sessions = append(l.Sessions, NewSession("s1", now))
	l.TotalSessions = 1

	clone := l.Clone()
	clone.Events[0].Context["url"] = "/tampered"
	clone.FunnelMetrics[StageQuizLoaded] = 99
	clone.DailyStats["2026-01-02"].Events[StageQuizLoaded] = 99
	clone.Sessions[0].FunnelFlags["tampered"] = true

	assert.Equal(t, "/quiz", l.Events[0].Context["url"])
	assert.Equal(t, 1, l.FunnelMetrics[StageQuizLoaded])
	assert.Equal(t, 1, l.DailyStats["2026-01-02"].Events[StageQuizLoaded])
	assert.False(t, l.Sessions[0].FunnelFlags["tampered"])
}

func TestFindSession(t *testing.T) {
	now := time.Now()
	l := DefaultLedger()
	l.Sessions = append(l.Sessions, NewSession("s1", now), NewSession("s2", now))

	assert.Equal(t, "s2", l.FindSession("s2").ID)
	assert.Nil(t, l.FindSession("missing"))
}
