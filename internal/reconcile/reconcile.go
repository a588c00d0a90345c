package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/debitsync/debitsync/internal/model"
)

// Daily reconciles the two record sets day by day. Every date present
// on either side is reported, ascending. The function is total: a day
// with records on only one side simply leaves that side's amounts as
// leftover.
//
// Matching is exact equality on the normalized 2-decimal amount. Two
// unrelated same-day transactions that happen to share an amount are
// indistinguishable from a true match; the report answers "do the two
// logs agree on the day's amounts", not "is every transaction paired
// with its semantic counterpart".
func Daily(bank, app []model.Record) []model.DayReport {
	bankDays := amountsByDay(bank)
	appDays := amountsByDay(app)

	seen := make(map[time.Time]bool, len(bankDays)+len(appDays))
	var dates []time.Time
	for d := range bankDays {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for d := range appDays {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	reports := make([]model.DayReport, 0, len(dates))
	for _, d := range dates {
		reports = append(reports, matchDay(d, bankDays[d], appDays[d]))
	}
	return reports
}

// amountsByDay groups amounts by calendar date, ascending within each
// day (stable, so equal amounts keep encounter order).
func amountsByDay(recs []model.Record) map[time.Time][]decimal.Decimal {
	days := make(map[time.Time][]decimal.Decimal)
	for _, r := range recs {
		d := r.Date()
		days[d] = append(days[d], r.Amount)
	}
	for _, amts := range days {
		sort.SliceStable(amts, func(i, j int) bool { return amts[i].LessThan(amts[j]) })
	}
	return days
}

// matchDay scans the bank amounts against a removable bag of app
// amounts. Each exact match consumes one occurrence from the bag; the
// scan leftovers and the remaining bag become the two leftover lists.
func matchDay(date time.Time, bank, app []decimal.Decimal) model.DayReport {
	bag := make([]decimal.Decimal, len(app))
	copy(bag, app)

	matched := decimal.Zero
	var bankLeft []decimal.Decimal
	for _, amt := range bank {
		if i := indexOf(bag, amt); i >= 0 {
			bag = append(bag[:i], bag[i+1:]...)
			matched = matched.Add(amt)
		} else {
			bankLeft = append(bankLeft, amt)
		}
	}

	status := model.StatusBalanced
	if len(bankLeft) > 0 || len(bag) > 0 {
		status = model.StatusDiscrepant
	}

	return model.DayReport{
		Date:         date,
		BankCount:    len(bank),
		AppCount:     len(app),
		MatchedTotal: matched,
		BankLeftover: bankLeft,
		AppLeftover:  bag,
		Status:       status,
	}
}

func indexOf(amts []decimal.Decimal, target decimal.Decimal) int {
	for i, a := range amts {
		if a.Equal(target) {
			return i
		}
	}
	return -1
}
