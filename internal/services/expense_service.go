// Package services orchestrates expense writes across the store and the
// event publisher.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Publisher is the outbound event port; *events.Client implements it.
type Publisher interface {
	PublishRecorded(ctx context.Context, r core.Record) error
	PublishDeleted(ctx context.Context, r core.Record) error
}

type ExpenseService struct {
	store     store.Store
	publisher Publisher
}

// NewExpenseService wires the store with an optional publisher; pass nil to
// run without events.
func NewExpenseService(st store.Store, publisher Publisher) *ExpenseService {
	return &ExpenseService{store: st, publisher: publisher}
}

// Add validates and persists a record, then publishes a recorded event.
// Publishing is best-effort; the record is saved either way.
func (s *ExpenseService) Add(ctx context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}

	if err := s.store.Append(ctx, r); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRecorded(ctx, r); err != nil {
			slog.ErrorContext(ctx, "Failed to publish recorded event",
				"error", err, "category", r.Category, "value", r.Value)
		}
	}

	return nil
}

// Delete removes one row matching the full tuple and reports whether a
// deletion occurred. A deleted event is published only when a row was
// actually removed.
func (s *ExpenseService) Delete(ctx context.Context, r core.Record) (bool, error) {
	deleted, err := s.store.Delete(ctx, r)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	if deleted && s.publisher != nil {
		if err := s.publisher.PublishDeleted(ctx, r); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event",
				"error", err, "category", r.Category, "value", r.Value)
		}
	}

	return deleted, nil
}

// ListPeriod exposes the period listing for the surfaces.
func (s *ExpenseService) ListPeriod(ctx context.Context, month, year string) ([]store.Entry, error) {
	return s.store.ListPeriod(ctx, month, year)
}

// CumulativeUntil exposes the cumulative per-period totals for the surfaces.
func (s *ExpenseService) CumulativeUntil(ctx context.Context, month, year string) (map[string]store.CategoryTotals, error) {
	return s.store.CumulativeUntil(ctx, month, year)
}
