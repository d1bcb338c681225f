package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"expenses/internal/registry"
)

// Accepts both padded and unpadded day/month, requires a 4-digit year, and
// rejects impossible calendar dates (e.g. 31/02/2024).
const dateLayout = "2/1/2006"

// Parse turns a raw "DD/MM/YYYY; VALUE; CATEGORY; DESCRIPTION" message into a
// normalized Record.
//
// If the message does not split into exactly four ';' segments it fails
// immediately with ErrBadFormat. Otherwise every field is parsed
// independently and the returned error is the join of all field failures, so
// callers can log which segments were wrong. The record is usable only when
// the error is nil.
func Parse(message string) (Record, error) {
	parts := strings.Split(message, ";")
	if len(parts) != 4 {
		return Record{}, fmt.Errorf("%w: %q", ErrBadFormat, message)
	}

	var rec Record
	var errs []error

	day, month, year, err := parseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		errs = append(errs, err)
	} else {
		rec.Day, rec.Month, rec.Year = day, month, year
	}

	value, err := ParseValue(strings.TrimSpace(parts[1]))
	if err != nil {
		errs = append(errs, err)
	} else {
		rec.Value = value
	}

	if category, ok := registry.CanonicalCategory(strings.TrimSpace(parts[2])); ok {
		rec.Category = category
	} else {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCategory, strings.TrimSpace(parts[2])))
	}

	if description := strings.TrimSpace(parts[3]); description != "" {
		rec.Description = description
	} else {
		errs = append(errs, ErrEmptyDescription)
	}

	if len(errs) > 0 {
		return Record{}, errors.Join(errs...)
	}
	return rec, nil
}

func parseDate(s string) (day, month, year string, err error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	name, ok := registry.MonthName(int(t.Month()))
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return fmt.Sprintf("%02d", t.Day()), name, strconv.Itoa(t.Year()), nil
}
