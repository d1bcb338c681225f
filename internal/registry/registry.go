// Package registry holds the closed category, month and year enumerations
// shared by the parser, the aggregator and both user surfaces. Order is
// significant: category order drives the category sort and the zero-filled
// summaries, month order drives the chronological period walk.
package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Categories is the canonical, display-form category set.
var Categories = []string{
	"Home", "Food", "Leisure", "To myself", "Travel", "Education", "Others",
}

// Months are the canonical English month names, January first.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Supported year span, inclusive.
const (
	MinYear = 2024
	MaxYear = 2030
)

var (
	categoryByKey = make(map[string]string, len(Categories))
	categoryIndex = make(map[string]int, len(Categories))
	monthByNumber = make(map[int]string, len(Months))
	numberByMonth = make(map[string]int, len(Months))
	monthByKey    = make(map[string]string, len(Months))
)

func init() {
	for i, c := range Categories {
		categoryByKey[NormalizeCategory(c)] = c
		categoryIndex[c] = i
	}
	for i, m := range Months {
		monthByNumber[i+1] = m
		numberByMonth[m] = i + 1
		monthByKey[strings.ToLower(m)] = m
	}
}

// NormalizeCategory lowercases and strips all spaces. The result is only ever
// used as a lookup key, never stored.
func NormalizeCategory(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// CanonicalCategory resolves user input to the canonical category name.
func CanonicalCategory(s string) (string, bool) {
	c, ok := categoryByKey[NormalizeCategory(s)]
	return c, ok
}

// CategoryIndex returns the fixed position of a canonical category name,
// or -1 if the name is not canonical.
func CategoryIndex(name string) int {
	if i, ok := categoryIndex[name]; ok {
		return i
	}
	return -1
}

// MonthName returns the canonical name for a month number 1-12.
func MonthName(n int) (string, bool) {
	m, ok := monthByNumber[n]
	return m, ok
}

// MonthNumber returns the 1-based number of a canonical month name.
func MonthNumber(name string) (int, bool) {
	n, ok := numberByMonth[name]
	return n, ok
}

// CanonicalMonth resolves a month name case-insensitively to its canonical
// form.
func CanonicalMonth(s string) (string, bool) {
	m, ok := monthByKey[strings.ToLower(s)]
	return m, ok
}

// Years returns the supported year span as 4-digit strings, ascending.
func Years() []string {
	out := make([]string, 0, MaxYear-MinYear+1)
	for y := MinYear; y <= MaxYear; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// YearSupported reports whether the 4-digit year string falls in the span.
func YearSupported(year string) bool {
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return false
	}
	return y >= MinYear && y <= MaxYear
}

// Period is a (month, year) pair, the unit of aggregation.
type Period struct {
	Month string
	Year  string
}

// Key returns the "Month|Year" form used as a map key by the cumulative
// queries.
func (p Period) Key() string {
	return fmt.Sprintf("%s|%s", p.Month, p.Year)
}

// PeriodsUntil walks the supported span in (year ascending, month order)
// and returns every period strictly before the target. The target itself is
// excluded; an unknown target yields the whole span.
func PeriodsUntil(month, year string) []Period {
	var out []Period
	for _, y := range Years() {
		for _, m := range Months {
			if y == year && m == month {
				return out
			}
			out = append(out, Period{Month: m, Year: y})
		}
	}
	return out
}
