// Package core provides the expense record type and the message parsing
// pipeline shared by the HTTP and bot surfaces.
//
// This file handles monetary values: a value segment is a "+"-joined list of
// non-negative terms with at most two decimal places, summed and normalized
// to fixed 2-decimal text before storage.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// One or more digits, optionally a decimal point followed by exactly 1 or 2
// digits. No sign, no exponent, no thousands separators.
var valueTermPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParseValue evaluates a value segment and returns the sum formatted with
// exactly two decimals.
//
// Terms are split on '+' and matched as-is; a single failing term fails the
// whole segment even if the others are valid.
//
// Examples:
//
//	ParseValue("35.00+45.1+3") -> "83.10", nil
//	ParseValue("5")            -> "5.00", nil
//	ParseValue("5.123")        -> "", ErrInvalidValue
func ParseValue(s string) (string, error) {
	total := decimal.Zero
	for _, term := range strings.Split(s, "+") {
		if !valueTermPattern.MatchString(term) {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		d, err := decimal.NewFromString(term)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		total = total.Add(d)
	}
	return total.StringFixed(2), nil
}
