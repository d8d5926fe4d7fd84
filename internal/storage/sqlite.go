// Package storage persists the expense collection in a local SQLite
// database. Schema changes are applied through embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kharcha/internal/core"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
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

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List implements backend.Store. Rows come back in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, amount_paise, category, expense_date, paid
		 FROM expenses ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", core.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan expense: %v", core.ErrUnavailable, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", core.ErrUnavailable, err)
	}
	return out, nil
}

// Add implements backend.Store.
func (s *SQLiteStore) Add(ctx context.Context, draft core.Draft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:       uuid.NewString(),
		Name:     draft.Name,
		Amount:   draft.Amount,
		Category: draft.Category,
		Date:     draft.Date,
		Paid:     false,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, name, amount_paise, category, expense_date, paid)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		e.ID, e.Name, e.Amount.Paise, e.Category, e.Date.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: insert expense: %v", core.ErrUnavailable, err)
	}
	return e, nil
}

// SetPaid implements backend.Store.
func (s *SQLiteStore) SetPaid(ctx context.Context, id string, paid bool) (core.Expense, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET paid = ? WHERE id = ?`, boolToInt(paid), id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: update expense: %v", core.ErrUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: update expense: %v", core.ErrUnavailable, err)
	}
	if affected == 0 {
		return core.Expense{}, core.ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, amount_paise, category, expense_date, paid
		 FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: reload expense: %v", core.ErrUnavailable, err)
	}
	return e, nil
}

// Remove implements backend.Store. Deleting an absent id is a success.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete expense: %v", core.ErrUnavailable, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
		paid    int
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Amount.Paise, &e.Category, &dateStr, &paid); err != nil {
		return core.Expense{}, err
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	e.Date = date
	e.Paid = paid != 0
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
