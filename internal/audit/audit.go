package audit

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/debitsync/debitsync/internal/model"
)

const dayKey = "2006-01-02"

// Log tracks which discrepant days a human has confirmed during the
// current session. It is a display-layer annotation: confirming a date
// never alters a DayReport. The log starts empty, grows only through
// Confirm, and is owned by whoever constructs it.
type Log struct {
	mu    sync.Mutex
	dates map[string]struct{}
}

// NewLog creates an empty audit log.
func NewLog() *Log {
	return &Log{dates: make(map[string]struct{})}
}

// Confirm marks a date as human-approved. Idempotent. Confirming a
// balanced date is allowed and has no visible effect.
func (l *Log) Confirm(date time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dates[date.Format(dayKey)] = struct{}{}
}

// Confirmed reports whether a date has been approved this session.
func (l *Log) Confirmed(date time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.dates[date.Format(dayKey)]
	return ok
}

// DisplayStatus returns the status to present for a report: audited
// when the day has been confirmed, the report's own status otherwise.
func (l *Log) DisplayStatus(r model.DayReport) model.Status {
	if l.Confirmed(r.Date) {
		return model.StatusAudited
	}
	return r.Status
}

// Summary aggregates a reconciliation run for the metrics panel.
type Summary struct {
	Days           int
	DiscrepantDays int             // excludes audited days
	MatchedTotal   decimal.Decimal // all days, audited or not
}

// Summarize counts days still displaying as discrepant and sums the
// matched totals. Matching is independent of human sign-off, so the
// total includes audited days.
func (l *Log) Summarize(reports []model.DayReport) Summary {
	s := Summary{Days: len(reports), MatchedTotal: decimal.Zero}
	for _, r := range reports {
		if l.DisplayStatus(r) == model.StatusDiscrepant {
			s.DiscrepantDays++
		}
		s.MatchedTotal = s.MatchedTotal.Add(r.MatchedTotal)
	}
	return s
}
