package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status classifies a reconciled day.
type Status string

const (
	StatusBalanced   Status = "balanced"
	StatusDiscrepant Status = "discrepant"
	// StatusAudited is display-only: a discrepant day a human has
	// confirmed. It is produced by the audit overlay and never stored
	// in a DayReport.
	StatusAudited Status = "audited"
)

// DayReport is the reconciliation result for one calendar date.
// Reports are computed once per run and not mutated afterwards.
type DayReport struct {
	Date         time.Time
	BankCount    int
	AppCount     int
	MatchedTotal decimal.Decimal
	BankLeftover []decimal.Decimal // bank amounts with no app counterpart, ascending
	AppLeftover  []decimal.Decimal // app amounts with no bank counterpart, ascending
	Status       Status
}
