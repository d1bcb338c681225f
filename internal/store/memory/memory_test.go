package memory

import (
	"context"
	"testing"

	"expenses/internal/core"
)

func record(month, year, day, category, value, description string) core.Record {
	return core.Record{
		Month: month, Year: year, Day: day,
		Category: category, Value: value, Description: description,
	}
}

func TestAppendAndListPeriod(t *testing.T) {
	ctx := context.Background()
	s := New()

	recs := []core.Record{
		record("December", "2024", "24", "Others", "83.10", "test"),
		record("December", "2024", "03", "Home", "5.00", "buy milk"),
		record("January", "2025", "01", "Food", "12.00", "groceries"),
	}
	for _, r := range recs {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append(%+v) error: %v", r, err)
		}
	}

	entries, err := s.ListPeriod(ctx, "December", "2024")
	if err != nil {
		t.Fatalf("ListPeriod error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Storage order, not day order.
	if entries[0].Day != "24" || entries[1].Day != "03" {
		t.Fatalf("unexpected storage order: %+v", entries)
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := New()
	bad := record("December", "2031", "05", "Home", "5.00", "x")
	if err := s.Append(context.Background(), bad); err == nil {
		t.Fatal("expected validation error for out-of-span year")
	}
	if s.Len() != 0 {
		t.Fatalf("invalid record must not be stored, len=%d", s.Len())
	}
}

func TestDeleteRemovesExactlyOneDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()
	r := record("December", "2024", "05", "Home", "5.00", "x")

	for i := 0; i < 2; i++ {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	deleted, err := s.Delete(ctx, r)
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v; want true, nil", deleted, err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one row removed, len=%d", s.Len())
	}

	deleted, err = s.Delete(ctx, record("December", "2024", "05", "Home", "5.00", "y"))
	if err != nil || deleted {
		t.Fatalf("Delete of unknown tuple = %v, %v; want false, nil", deleted, err)
	}
}

func TestCumulativeUntilZeroFills(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Append(ctx, record("January", "2024", "10", "Food", "10.00", "a")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := s.Append(ctx, record("March", "2024", "02", "Food", "20.00", "b")); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	// Record in the target period must not contribute.
	if err := s.Append(ctx, record("April", "2024", "02", "Food", "99.00", "c")); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	periods, err := s.CumulativeUntil(ctx, "April", "2024")
	if err != nil {
		t.Fatalf("CumulativeUntil error: %v", err)
	}
	if len(periods) != 3 {
		t.Fatalf("expected 3 prior periods, got %d", len(periods))
	}

	feb, ok := periods["February|2024"]
	if !ok {
		t.Fatal("empty period missing from the map")
	}
	if !feb["Food"].IsZero() || !feb["Home"].IsZero() {
		t.Fatalf("empty period should be all zero, got %v", feb)
	}
	if got := periods["January|2024"]["Food"].StringFixed(2); got != "10.00" {
		t.Fatalf("January Food = %s, want 10.00", got)
	}
	if got := periods["March|2024"]["Food"].StringFixed(2); got != "20.00" {
		t.Fatalf("March Food = %s, want 20.00", got)
	}
}
