package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"kharcha/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kharcha.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func draft(name string, paise int64) core.Draft {
	return core.Draft{
		Name:     name,
		Amount:   core.Money{Paise: paise},
		Category: "Food",
		Date:     core.NewDate(2024, 1, 1),
	}
}

func TestSQLiteAddAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, err := s.Add(ctx, draft("Coffee", 500))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == "" || e.Paid {
		t.Fatalf("unexpected new record: %+v", e)
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(items))
	}
	if items[0] != e {
		t.Fatalf("stored record differs: %+v != %+v", items[0], e)
	}
}

func TestSQLiteListInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, _ := s.Add(ctx, draft("First", 100))
	second, _ := s.Add(ctx, draft("Second", 200))
	third, _ := s.Add(ctx, draft("Third", 300))

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].ID != first.ID || items[1].ID != second.ID || items[2].ID != third.ID {
		t.Fatalf("expected insertion order, got %+v", items)
	}
}

func TestSQLiteAddValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := draft("", 100)
	if _, err := s.Add(ctx, bad); !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	items, _ := s.List(ctx)
	if len(items) != 0 {
		t.Fatalf("collection mutated on validation failure")
	}
}

func TestSQLiteSetPaid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, _ := s.Add(ctx, draft("Rent", 1500000))

	up, err := s.SetPaid(ctx, e.ID, true)
	if err != nil {
		t.Fatalf("set paid: %v", err)
	}
	if !up.Paid || up.Amount != e.Amount || up.Name != e.Name {
		t.Fatalf("unexpected record after toggle: %+v", up)
	}

	down, err := s.SetPaid(ctx, e.ID, false)
	if err != nil {
		t.Fatalf("unset paid: %v", err)
	}
	if down != e {
		t.Fatalf("toggle round trip changed the record: %+v != %+v", down, e)
	}

	if _, err := s.SetPaid(ctx, "missing", true); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRemoveIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, _ := s.Add(ctx, draft("Coffee", 500))
	if err := s.Remove(ctx, e.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, e.ID); err != nil {
		t.Fatalf("second remove should succeed: %v", err)
	}
	items, _ := s.List(ctx)
	if len(items) != 0 {
		t.Fatalf("record still present after remove")
	}
}

func TestSQLiteDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kharcha.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	e, _ := s.Add(ctx, draft("Coffee", 500))
	if _, err := s.SetPaid(ctx, e.ID, true); err != nil {
		t.Fatalf("set paid: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	items, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != e.ID || !items[0].Paid {
		t.Fatalf("state not durable: %+v", items)
	}
}

// End-to-end walk of the record lifecycle: add, toggle, summarize, remove.
func TestSQLiteCoffeeScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, err := s.Add(ctx, draft("Coffee", 500))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.SetPaid(ctx, e.ID, true); err != nil {
		t.Fatalf("set paid: %v", err)
	}
	items, _ := s.List(ctx)
	sum := core.Summarize(items)
	if sum.Total.Paise != 500 || sum.Paid.Paise != 500 || sum.Unpaid.Paise != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	if err := s.Remove(ctx, e.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = s.List(ctx)
	sum = core.Summarize(items)
	if len(items) != 0 || sum.Total.Paise != 0 || sum.Paid.Paise != 0 || sum.Unpaid.Paise != 0 {
		t.Fatalf("expected empty collection and zero summary, got %+v %+v", items, sum)
	}
}
