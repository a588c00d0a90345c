package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debitsync/debitsync/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func rec(day int, amt string) model.Record {
	return model.Record{
		Time:   time.Date(2026, 1, day, 12, 0, 0, 0, time.UTC),
		Amount: dec(amt),
	}
}

func sum(amts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amts {
		total = total.Add(a)
	}
	return total
}

func TestDaily_FullyMatchedDay(t *testing.T) {
	bank := []model.Record{rec(20, "-25.00"), rec(20, "-648.00")}
	app := []model.Record{rec(20, "-648.00"), rec(20, "-25.00")}

	reports := Daily(bank, app)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, model.StatusBalanced, r.Status)
	assert.Equal(t, "-673.00", r.MatchedTotal.StringFixed(2))
	assert.Empty(t, r.BankLeftover)
	assert.Empty(t, r.AppLeftover)
	assert.Equal(t, 2, r.BankCount)
	assert.Equal(t, 2, r.AppCount)
}

func TestDaily_BankExtraTransaction(t *testing.T) {
	bank := []model.Record{rec(20, "-25.00"), rec(20, "-648.00")}
	app := []model.Record{rec(20, "-25.00")}

	reports := Daily(bank, app)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, model.StatusDiscrepant, r.Status)
	require.Len(t, r.BankLeftover, 1)
	assert.Equal(t, "-648.00", r.BankLeftover[0].StringFixed(2))
	assert.Empty(t, r.AppLeftover)
	assert.Equal(t, "-25.00", r.MatchedTotal.StringFixed(2))
}

func TestDaily_DateUnionSortedAscending(t *testing.T) {
	bank := []model.Record{rec(22, "-10.00"), rec(20, "-5.00")}
	app := []model.Record{rec(21, "-7.00")}

	reports := Daily(bank, app)
	require.Len(t, reports, 3)
	assert.Equal(t, 20, reports[0].Date.Day())
	assert.Equal(t, 21, reports[1].Date.Day())
	assert.Equal(t, 22, reports[2].Date.Day())

	// The app-only day leaves the whole app side as leftover.
	assert.Equal(t, 0, reports[1].BankCount)
	require.Len(t, reports[1].AppLeftover, 1)
	assert.Equal(t, model.StatusDiscrepant, reports[1].Status)
}

func TestDaily_DuplicateAmountsConsumeOneEach(t *testing.T) {
	bank := []model.Record{rec(20, "-10.00"), rec(20, "-10.00")}
	app := []model.Record{rec(20, "-10.00")}

	reports := Daily(bank, app)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "-10.00", r.MatchedTotal.StringFixed(2))
	require.Len(t, r.BankLeftover, 1)
	assert.Empty(t, r.AppLeftover)
}

func TestDaily_LeftoversAscending(t *testing.T) {
	bank := []model.Record{rec(20, "300.00"), rec(20, "-648.00"), rec(20, "-25.00")}
	app := []model.Record{rec(20, "1.00")}

	reports := Daily(bank, app)
	require.Len(t, reports, 1)

	left := reports[0].BankLeftover
	require.Len(t, left, 3)
	assert.Equal(t, "-648.00", left[0].StringFixed(2))
	assert.Equal(t, "-25.00", left[1].StringFixed(2))
	assert.Equal(t, "300.00", left[2].StringFixed(2))
}

func TestDaily_Conservation(t *testing.T) {
	bank := []model.Record{
		rec(20, "-25.00"), rec(20, "-648.00"), rec(20, "128.00"),
		rec(21, "-10.00"), rec(21, "-10.00"),
	}
	app := []model.Record{
		rec(20, "-648.00"), rec(20, "-3.50"),
		rec(21, "-10.00"), rec(22, "99.99"),
	}

	bankDays := amountsByDay(bank)
	appDays := amountsByDay(app)

	for _, r := range Daily(bank, app) {
		bankTotal := sum(bankDays[r.Date])
		appTotal := sum(appDays[r.Date])
		assert.True(t, bankTotal.Equal(r.MatchedTotal.Add(sum(r.BankLeftover))),
			"bank conservation on %s", r.Date.Format("2006-01-02"))
		assert.True(t, appTotal.Equal(r.MatchedTotal.Add(sum(r.AppLeftover))),
			"app conservation on %s", r.Date.Format("2006-01-02"))
	}
}

func TestDaily_Symmetry(t *testing.T) {
	a := []model.Record{
		rec(20, "-25.00"), rec(20, "-648.00"), rec(20, "-648.00"),
		rec(21, "40.00"),
	}
	b := []model.Record{
		rec(20, "-648.00"), rec(20, "-7.00"),
		rec(21, "40.00"), rec(21, "40.00"),
	}

	forward := Daily(a, b)
	reverse := Daily(b, a)
	require.Len(t, reverse, len(forward))

	for i := range forward {
		f, r := forward[i], reverse[i]
		assert.True(t, f.MatchedTotal.Equal(r.MatchedTotal), "day %d matched total", i)
		assert.Equal(t, f.Status, r.Status)

		// Leftovers swap sides; both are ascending so they compare directly.
		require.Len(t, r.AppLeftover, len(f.BankLeftover))
		for j := range f.BankLeftover {
			assert.True(t, f.BankLeftover[j].Equal(r.AppLeftover[j]))
		}
		require.Len(t, r.BankLeftover, len(f.AppLeftover))
		for j := range f.AppLeftover {
			assert.True(t, f.AppLeftover[j].Equal(r.BankLeftover[j]))
		}
	}
}

func TestDaily_BalancedIffLeftoversEmpty(t *testing.T) {
	bank := []model.Record{rec(20, "-5.00"), rec(21, "-5.00")}
	app := []model.Record{rec(20, "-5.00"), rec(21, "-6.00")}

	for _, r := range Daily(bank, app) {
		balanced := len(r.BankLeftover) == 0 && len(r.AppLeftover) == 0
		if balanced {
			assert.Equal(t, model.StatusBalanced, r.Status)
		} else {
			assert.Equal(t, model.StatusDiscrepant, r.Status)
		}
	}
}

func TestDaily_NoRecords(t *testing.T) {
	assert.Empty(t, Daily(nil, nil))
}
