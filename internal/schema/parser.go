package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/debitsync/debitsync/internal/amount"
	"github.com/debitsync/debitsync/internal/model"
)

// Error reports a source whose mandatory columns could not be located
// after header inference.
type Error struct {
	Source  string
	Missing []Field
}

func (e *Error) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: cannot locate required column(s): %s", e.Source, strings.Join(names, ", "))
}

// headerScanLimit bounds how many leading rows are inspected when
// locating the header. Payment-app exports carry up to ~17 preamble
// rows; 40 leaves slack.
const headerScanLimit = 40

// descriptionPlaceholder is used when no descriptive column binds.
const descriptionPlaceholder = "(no description)"

// descriptionSep joins the descriptive columns of one row.
const descriptionSep = " | "

// Parser infers a column schema from a raw export and emits normalized
// records. A Parser is immutable once built and safe to share across
// concurrent Parse calls.
type Parser struct {
	rules        []Rule
	timeTokens   []string
	amountTokens []string
	amounts      amount.Normalizer
}

// NewParser creates a Parser with the default rule and token tables.
func NewParser() *Parser {
	return &Parser{
		rules:        DefaultRules(),
		timeTokens:   DefaultTimeTokens(),
		amountTokens: DefaultAmountTokens(),
		amounts:      amount.New(nil),
	}
}

// NewParserWith creates a Parser with explicit tables; any empty
// argument falls back to the default.
func NewParserWith(rules []Rule, timeTokens, amountTokens []string, amounts amount.Normalizer) *Parser {
	p := &Parser{rules: rules, timeTokens: timeTokens, amountTokens: amountTokens, amounts: amounts}
	if len(p.rules) == 0 {
		p.rules = DefaultRules()
	}
	if len(p.timeTokens) == 0 {
		p.timeTokens = DefaultTimeTokens()
	}
	if len(p.amountTokens) == 0 {
		p.amountTokens = DefaultAmountTokens()
	}
	return p
}

// Parse locates the header row, binds columns to canonical fields, and
// normalizes the data rows. label names the source in errors only.
// Rows whose date cannot be parsed, or whose amount cell is empty, are
// dropped; zero surviving rows is a valid empty result.
func (p *Parser) Parse(table model.RawTable, label string) ([]model.Record, error) {
	if len(table) == 0 {
		return nil, &Error{Source: label, Missing: []Field{FieldTime, FieldAmount}}
	}

	headerRow := p.findHeader(table)
	bound := p.bindColumns(table[headerRow])

	var missing []Field
	if _, ok := bound[FieldTime]; !ok {
		missing = append(missing, FieldTime)
	}
	if _, ok := bound[FieldAmount]; !ok {
		missing = append(missing, FieldAmount)
	}
	if len(missing) > 0 {
		return nil, &Error{Source: label, Missing: missing}
	}

	var recs []model.Record
	for _, row := range table[headerRow+1:] {
		rec, ok := p.normalizeRow(row, bound)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// findHeader returns the index of the first row, within the scan limit,
// whose concatenated non-empty cells contain both a time token and an
// amount token. Falls back to row 0; the mandatory-field check catches
// genuinely headerless tables.
func (p *Parser) findHeader(table model.RawTable) int {
	limit := len(table)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		var cells []string
		for _, c := range table[i] {
			if strings.TrimSpace(c) != "" {
				cells = append(cells, c)
			}
		}
		text := strings.ToLower(strings.Join(cells, " "))
		if containsAny(text, p.timeTokens) && containsAny(text, p.amountTokens) {
			return i
		}
	}
	return 0
}

// bindColumns maps canonical fields to column indexes. For each rule,
// columns are scanned in file order and the first unbound column whose
// name contains any synonym is taken; a column is never rebound, so the
// mapping is injective.
func (p *Parser) bindColumns(header []string) map[Field]int {
	bound := make(map[Field]int, len(p.rules))
	used := make(map[int]bool, len(header))
	for _, rule := range p.rules {
		for col, name := range header {
			if used[col] {
				continue
			}
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if containsAny(name, rule.Synonyms) {
				bound[rule.Field] = col
				used[col] = true
				break
			}
		}
	}
	return bound
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func (p *Parser) normalizeRow(row []string, bound map[Field]int) (model.Record, bool) {
	ts, ok := parseTime(cell(row, bound, FieldTime))
	if !ok {
		return model.Record{}, false
	}

	rawAmount := cell(row, bound, FieldAmount)
	var amt decimal.Decimal
	if _, hasDir := bound[FieldDirection]; hasDir {
		amt, ok = p.amounts.ParseWithDirection(rawAmount, cell(row, bound, FieldDirection))
	} else {
		amt, ok = p.amounts.Parse(rawAmount)
	}
	if !ok {
		return model.Record{}, false
	}

	return model.Record{
		Time:             ts,
		Amount:           amt,
		Description:      p.describe(row, bound),
		Counterparty:     orPlaceholder(cell(row, bound, FieldCounterparty)),
		CounterpartyName: orPlaceholder(cell(row, bound, FieldCounterpartyName)),
		Product:          orPlaceholder(cell(row, bound, FieldProduct)),
	}, true
}

// describe joins the descriptive columns in the fixed order summary,
// merchant, product. Unbound fields contribute nothing; a bound
// column's empty cell still occupies its slot.
func (p *Parser) describe(row []string, bound map[Field]int) string {
	var parts []string
	for _, f := range []Field{FieldSummary, FieldMerchant, FieldProduct} {
		if _, ok := bound[f]; ok {
			parts = append(parts, cell(row, bound, f))
		}
	}
	if len(parts) == 0 {
		return descriptionPlaceholder
	}
	return strings.Join(parts, descriptionSep)
}

func orPlaceholder(s string) string {
	if s == "" {
		return model.PlaceholderField
	}
	return s
}

func cell(row []string, bound map[Field]int, f Field) string {
	col, ok := bound[f]
	if !ok || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// timeLayouts are tried in order when parsing the time cell.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	time.RFC3339,
}

// excel serial date epoch (1899-12-30); xlsx loaders can surface date
// cells as serial numbers when the workbook lacks a date style.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

func parseTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 && serial < 200000 {
		days := int(serial)
		frac := serial - float64(days)
		return excelEpoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour))), true
	}
	return time.Time{}, false
}
