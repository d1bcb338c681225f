// Package report computes the read-only aggregation views: per-period
// category totals and the cumulative mean/spread across all prior periods.
package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"expenses/internal/registry"
	"expenses/internal/store"
)

// ErrNoData marks a cumulative query with zero prior periods. It is distinct
// from an all-zero result: zero periods means nothing to average over.
var ErrNoData = errors.New("no prior periods recorded")

// CategoryTotal is one category's summed spend for a single period.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// CategoryStat is one category's cumulative average spend per period, with
// the population standard deviation across those periods.
type CategoryStat struct {
	Name   string
	Mean   decimal.Decimal
	StdDev float64
}

// PeriodTotals sums value per category across one period's rows. Every
// canonical category is present in registry order; unreferenced ones are
// zero.
func PeriodTotals(entries []store.Entry) ([]CategoryTotal, error) {
	totals := store.ZeroTotals()
	for _, e := range entries {
		amount, err := decimal.NewFromString(e.Value)
		if err != nil {
			return nil, fmt.Errorf("stored value %q: %w", e.Value, err)
		}
		totals[e.Category] = totals[e.Category].Add(amount)
	}

	out := make([]CategoryTotal, 0, len(registry.Categories))
	for _, c := range registry.Categories {
		out = append(out, CategoryTotal{Name: c, Total: totals[c]})
	}
	return out, nil
}

// CumulativeStats computes, per category, the arithmetic mean and population
// standard deviation of the per-period totals. Periods with no spend
// contribute a zero data point: the figures mean "average spend per calendar
// period since tracking began", not "average among periods with spending".
func CumulativeStats(periods map[string]store.CategoryTotals) ([]CategoryStat, error) {
	if len(periods) == 0 {
		return nil, ErrNoData
	}

	n := decimal.NewFromInt(int64(len(periods)))
	out := make([]CategoryStat, 0, len(registry.Categories))
	for _, c := range registry.Categories {
		sum := decimal.Zero
		for _, totals := range periods {
			sum = sum.Add(totals[c])
		}
		mean := sum.Div(n)

		meanF := mean.InexactFloat64()
		var acc float64
		for _, totals := range periods {
			d := totals[c].InexactFloat64() - meanF
			acc += d * d
		}

		out = append(out, CategoryStat{
			Name:   c,
			Mean:   mean,
			StdDev: math.Sqrt(acc / float64(len(periods))),
		})
	}
	return out, nil
}
