package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalizer converts raw statement cells into signed decimal amounts.
// The zero value uses no outflow markers; build one with New for the
// defaults.
type Normalizer struct {
	// outflowMarkers are substrings of a direction cell that force the
	// amount negative (e.g. the 支 of a 收/支 column).
	outflowMarkers []string
}

// DefaultOutflowMarkers returns the direction-cell substrings treated
// as expenditure indicators.
func DefaultOutflowMarkers() []string {
	return []string{"支", "out", "debit"}
}

// New creates a Normalizer. Empty markers fall back to the defaults.
func New(outflowMarkers []string) Normalizer {
	if len(outflowMarkers) == 0 {
		outflowMarkers = DefaultOutflowMarkers()
	}
	return Normalizer{outflowMarkers: outflowMarkers}
}

// currency symbols and grouping separators stripped before parsing
var cleaner = strings.NewReplacer("¥", "", "￥", "", "$", "", ",", "", " ", "")

// Parse converts a raw amount cell into a signed decimal rounded to 2
// fraction digits. A leading + or - is honored. Malformed non-empty
// cells degrade to zero rather than failing (best effort, matching the
// source exports' looseness); empty cells report ok=false so the
// caller can drop the row.
func (n Normalizer) Parse(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cleaner.Replace(raw))
	if s == "" {
		return decimal.Zero, false
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		s = s[1:]
		neg = true
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, true
	}
	if neg {
		d = d.Neg()
	}
	return d.Round(2), true
}

// ParseWithDirection parses the amount and applies the outflow-marker
// rule: when the direction text carries a marker, the sign is forced
// negative, overriding any explicit sign character in the amount text.
// Direction text without a marker leaves the parsed sign untouched.
func (n Normalizer) ParseWithDirection(raw, direction string) (decimal.Decimal, bool) {
	d, ok := n.Parse(raw)
	if !ok {
		return d, false
	}
	dir := strings.ToLower(direction)
	for _, m := range n.outflowMarkers {
		if m != "" && strings.Contains(dir, strings.ToLower(m)) {
			return d.Abs().Neg(), true
		}
	}
	return d, true
}
