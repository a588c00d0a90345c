package risk

import (
	"fmt"
	"strings"

	"github.com/debitsync/debitsync/internal/model"
)

// Transactions between these hours (inclusive) are flagged as occurring
// at an unusual time.
const (
	nightStartHour = 1
	nightEndHour   = 5
)

// DefaultKeywords are the description/counterparty substrings treated
// as suspicious spending categories.
func DefaultKeywords() []string {
	return []string{"游戏", "内购", "充值", "捐赠", "爱心", "打赏", "直播", "App Store"}
}

// Finding flags one record with the reasons it tripped.
type Finding struct {
	Record  model.Record
	Reasons []string
}

// Scanner flags records by keyword and time-of-day heuristics. The
// zero value uses the default keyword list.
type Scanner struct {
	keywords []string
}

// NewScanner creates a Scanner. Empty keywords fall back to the
// defaults.
func NewScanner(keywords []string) Scanner {
	if len(keywords) == 0 {
		keywords = DefaultKeywords()
	}
	return Scanner{keywords: keywords}
}

// Scan returns a finding for every record matching a keyword or falling
// in the night window. Pure function over the records; order is
// preserved.
func (s Scanner) Scan(recs []model.Record) []Finding {
	kw := s.keywords
	if len(kw) == 0 {
		kw = DefaultKeywords()
	}

	var findings []Finding
	for _, r := range recs {
		text := strings.Join([]string{r.Description, r.Counterparty, r.CounterpartyName}, " ")

		var hits []string
		for _, k := range kw {
			if k != "" && strings.Contains(text, k) {
				hits = append(hits, k)
			}
		}

		var reasons []string
		if len(hits) > 0 {
			reasons = append(reasons, "matches keywords: "+strings.Join(hits, ", "))
		}
		if h := r.Time.Hour(); h >= nightStartHour && h <= nightEndHour {
			reasons = append(reasons, fmt.Sprintf("unusual hour (%02d:00)", h))
		}

		if len(reasons) > 0 {
			findings = append(findings, Finding{Record: r, Reasons: reasons})
		}
	}
	return findings
}
