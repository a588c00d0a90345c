package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is a loosely structured tabular export: ordered rows of text
// cells. No row is assumed to be the header; loaders hand the table to
// the schema parser as-is.
type RawTable [][]string

// PlaceholderField is substituted for optional fields absent from a
// source, so every record has the same shape downstream.
const PlaceholderField = "-"

// Record is a normalized transaction from either statement source.
type Record struct {
	Time             time.Time       // full timestamp; time-of-day feeds risk scoring
	Amount           decimal.Decimal // negative = outflow, positive = inflow
	Description      string
	Counterparty     string
	CounterpartyName string
	Product          string
}

// Date returns the record's calendar date at midnight UTC, which is the
// granularity reconciliation works at.
func (r Record) Date() time.Time {
	return time.Date(r.Time.Year(), r.Time.Month(), r.Time.Day(), 0, 0, 0, 0, time.UTC)
}
