package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"expenses/internal/core"
	"expenses/internal/store"
)

// SQLiteRepository persists expense records in a local SQLite file. Each
// process opens its own connection; there is no cross-process locking.
type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.Writer.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (month, year, day, category, value, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Month, rec.Year, rec.Day, rec.Category, rec.Value, rec.Description)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"month", rec.Month,
		"year", rec.Year,
		"day", rec.Day,
		"category", rec.Category,
		"value", rec.Value)

	return nil
}

// Delete implements store.Writer. The rowid subquery bounds the delete to a
// single row when duplicate tuples exist.
func (r *SQLiteRepository) Delete(ctx context.Context, rec core.Record) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE rowid IN (
			SELECT rowid FROM expenses
			WHERE month = ? AND year = ? AND day = ?
			  AND category = ? AND value = ? AND description = ?
			LIMIT 1
		)`,
		rec.Month, rec.Year, rec.Day, rec.Category, rec.Value, rec.Description)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "Expense deleted",
			"month", rec.Month,
			"year", rec.Year,
			"day", rec.Day,
			"category", rec.Category,
			"value", rec.Value)
	}

	return n > 0, nil
}

// ListPeriod implements store.PeriodReader. Rows come back in insertion
// order; display sorting is the caller's concern.
func (r *SQLiteRepository) ListPeriod(ctx context.Context, month, year string) ([]store.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, category, value, description FROM expenses
		 WHERE month = ? AND year = ?
		 ORDER BY rowid`,
		month, year)
	if err != nil {
		return nil, fmt.Errorf("list period: %w", err)
	}
	defer rows.Close()

	var out []store.Entry
	for rows.Next() {
		var e store.Entry
		if err := rows.Scan(&e.Day, &e.Category, &e.Value, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}

	return out, nil
}

// CumulativeUntil implements store.CumulativeReader. The zero-filled period
// skeleton comes from the registry; rows outside the walked span (including
// the target period itself) are skipped.
func (r *SQLiteRepository) CumulativeUntil(ctx context.Context, month, year string) (map[string]store.CategoryTotals, error) {
	out := store.CumulativeSkeleton(month, year)

	rows, err := r.db.QueryContext(ctx,
		`SELECT month, year, category, value FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("read expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m, y, category, value string
		if err := rows.Scan(&m, &y, &category, &value); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		totals, ok := out[m+"|"+y]
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("stored value %q: %w", value, err)
		}
		totals[category] = totals[category].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}

	return out, nil
}
