package worker

import (
	"context"
	"path/filepath"
	"testing"

	"kharcha/internal/core"
	"kharcha/internal/event"
	"kharcha/internal/localstore"
)

func newMirror(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "mirror.json"))
	if err != nil {
		t.Fatalf("open mirror: %v", err)
	}
	return s
}

func sample(id string, paise int64) core.Expense {
	return core.Expense{
		ID:       id,
		Name:     "Sample",
		Amount:   core.Money{Paise: paise},
		Category: "Food",
		Date:     core.NewDate(2024, 1, 1),
	}
}

func TestHandleEventLifecycle(t *testing.T) {
	mirror := newMirror(t)
	w := NewMirrorWorker(nil, mirror)
	ctx := context.Background()

	e := sample("a", 500)
	if err := w.HandleEvent(ctx, event.NewAdded(e)); err != nil {
		t.Fatalf("added: %v", err)
	}
	if err := w.HandleEvent(ctx, event.NewPaidSet("a", true)); err != nil {
		t.Fatalf("paid_set: %v", err)
	}

	items, _ := mirror.List(ctx)
	if len(items) != 1 || !items[0].Paid {
		t.Fatalf("mirror out of step: %+v", items)
	}

	if err := w.HandleEvent(ctx, event.NewRemoved("a")); err != nil {
		t.Fatalf("removed: %v", err)
	}
	items, _ = mirror.List(ctx)
	if len(items) != 0 {
		t.Fatalf("mirror still holds removed record: %+v", items)
	}
}

func TestHandleEventIsIdempotent(t *testing.T) {
	mirror := newMirror(t)
	w := NewMirrorWorker(nil, mirror)
	ctx := context.Background()

	e := sample("a", 500)
	// Redelivered add must not duplicate the record.
	if err := w.HandleEvent(ctx, event.NewAdded(e)); err != nil {
		t.Fatalf("added: %v", err)
	}
	if err := w.HandleEvent(ctx, event.NewAdded(e)); err != nil {
		t.Fatalf("redelivered add: %v", err)
	}
	items, _ := mirror.List(ctx)
	if len(items) != 1 {
		t.Fatalf("redelivery duplicated record: %+v", items)
	}

	// Remove of an id the mirror never saw is fine.
	if err := w.HandleEvent(ctx, event.NewRemoved("ghost")); err != nil {
		t.Fatalf("removed unknown: %v", err)
	}
	// Paid event for an unknown record defers to the next resync.
	if err := w.HandleEvent(ctx, event.NewPaidSet("ghost", true)); err != nil {
		t.Fatalf("paid unknown: %v", err)
	}
}

func TestResyncReplacesMirror(t *testing.T) {
	source := newMirror(t)
	mirror := newMirror(t)
	ctx := context.Background()

	for _, e := range []core.Expense{sample("a", 100), sample("b", 200)} {
		if err := source.Put(ctx, e); err != nil {
			t.Fatalf("seed source: %v", err)
		}
	}
	// The mirror starts with stale state.
	if err := mirror.Put(ctx, sample("stale", 999)); err != nil {
		t.Fatalf("seed mirror: %v", err)
	}

	w := NewMirrorWorker(source, mirror)
	if err := w.Resync(ctx); err != nil {
		t.Fatalf("resync: %v", err)
	}

	items, _ := mirror.List(ctx)
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("mirror not replaced: %+v", items)
	}
}
