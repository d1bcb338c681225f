// Package store defines the persistence ports used by the surfaces and the
// aggregator. Implementations: store/memory and the SQLite repository in
// internal/storage.
package store

import (
	"context"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
	"expenses/internal/registry"
)

// Entry is one row of a period listing, in storage order.
type Entry struct {
	Day         string
	Category    string
	Value       string
	Description string
}

// CategoryTotals maps canonical category names to summed values. Every
// canonical category is always present, zero included.
type CategoryTotals map[string]decimal.Decimal

type (
	Writer interface {
		// Append inserts the record. The caller has already validated it;
		// failures are I/O only. Duplicate tuples produce duplicate rows.
		Append(ctx context.Context, r core.Record) error

		// Delete removes the first row matching all six fields and reports
		// whether a deletion occurred. With duplicate tuples an arbitrary
		// one of them is removed.
		Delete(ctx context.Context, r core.Record) (bool, error)
	}

	PeriodReader interface {
		// ListPeriod returns the rows of one (month, year) period in
		// storage order; callers re-sort for display.
		ListPeriod(ctx context.Context, month, year string) ([]Entry, error)
	}

	CumulativeReader interface {
		// CumulativeUntil returns per-category totals keyed by "Month|Year"
		// for every period strictly before the target, walking the registry
		// span chronologically. Periods without records are present with
		// all-zero totals.
		CumulativeUntil(ctx context.Context, month, year string) (map[string]CategoryTotals, error)
	}

	// Store is the full persistence surface.
	Store interface {
		Writer
		PeriodReader
		CumulativeReader
	}
)

// ZeroTotals returns a totals map with every canonical category at zero.
func ZeroTotals() CategoryTotals {
	t := make(CategoryTotals, len(registry.Categories))
	for _, c := range registry.Categories {
		t[c] = decimal.Zero
	}
	return t
}

// CumulativeSkeleton builds the zero-filled period map CumulativeUntil
// implementations start from.
func CumulativeSkeleton(month, year string) map[string]CategoryTotals {
	periods := registry.PeriodsUntil(month, year)
	out := make(map[string]CategoryTotals, len(periods))
	for _, p := range periods {
		out[p.Key()] = ZeroTotals()
	}
	return out
}
