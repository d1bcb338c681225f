package report

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"expenses/internal/registry"
	"expenses/internal/store"
)

// Order selects one of the two display orderings. Exactly one is active at a
// time; day order is the default.
type Order int

const (
	ByDay Order = iota
	ByCategory
)

// OrderFromString maps a query parameter to an Order; anything other than
// "category" falls back to the default.
func OrderFromString(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), "category") {
		return ByCategory
	}
	return ByDay
}

// SortEntries reorders the display list in place. Both orderings are stable:
// ties keep the original storage order. Persisted order is never touched.
func SortEntries(entries []store.Entry, order Order) {
	switch order {
	case ByCategory:
		slices.SortStableFunc(entries, func(a, b store.Entry) int {
			return cmp.Compare(registry.CategoryIndex(a.Category), registry.CategoryIndex(b.Category))
		})
	default:
		slices.SortStableFunc(entries, func(a, b store.Entry) int {
			return cmp.Compare(dayNumber(a.Day), dayNumber(b.Day))
		})
	}
}

func dayNumber(day string) int {
	n, err := strconv.Atoi(day)
	if err != nil {
		return 0
	}
	return n
}

// Column widths of the fixed-layout text rendering.
const (
	colsDay      = 5
	colsCategory = 15
	colsValue    = 10
)

// FormatEntry renders one row in the fixed-column layout used by the text
// listing: day, category and value padded, description verbatim.
func FormatEntry(e store.Entry) string {
	return pad(e.Day, colsDay) + pad(e.Category, colsCategory) + pad(e.Value, colsValue) + e.Description
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
