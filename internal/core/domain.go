package core

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"expenses/internal/registry"
)

// Record is the unit of persistence: six normalized text fields. There is no
// separate identity; a record is identified by the full tuple, so two equal
// tuples are indistinguishable in the store.
type Record struct {
	Month       string // canonical month name, e.g. "December"
	Year        string // 4-digit year inside the registry span
	Day         string // zero-padded day of month, "01"-"31"
	Category    string // canonical category name
	Value       string // non-negative amount, exactly 2 decimals
	Description string // non-empty free text
}

var (
	ErrBadFormat        = errors.New("message does not split into 4 ';' segments")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("year outside supported span")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
)

var (
	dayPattern   = regexp.MustCompile(`^\d{2}$`)
	valuePattern = regexp.MustCompile(`^\d+\.\d{2}$`)
)

// Validate checks every field against its normalized form. A record that
// fails any field is rejected as a whole; there are no partial writes.
func (r Record) Validate() error {
	if _, ok := registry.MonthNumber(r.Month); !ok {
		return ErrInvalidMonth
	}
	if !registry.YearSupported(r.Year) {
		return ErrInvalidYear
	}
	if !dayPattern.MatchString(r.Day) {
		return ErrInvalidDay
	}
	if d, err := strconv.Atoi(r.Day); err != nil || d < 1 || d > 31 {
		return ErrInvalidDay
	}
	if registry.CategoryIndex(r.Category) < 0 {
		return ErrInvalidCategory
	}
	if !valuePattern.MatchString(r.Value) {
		return ErrInvalidValue
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Amount returns the record value as a decimal for aggregation.
func (r Record) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(r.Value)
}

// Message renders the record back into the wire format accepted by Parse.
// Re-parsing the result yields an equivalent record.
func (r Record) Message() string {
	month, _ := registry.MonthNumber(r.Month)
	return r.Day + "/" + strconv.Itoa(month) + "/" + r.Year + "; " +
		r.Value + "; " + r.Category + "; " + r.Description
}
