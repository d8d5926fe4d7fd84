// Package worker keeps a local file replica of the expense collection
// in step with the record store, by applying mutation events and by
// periodically resyncing the full snapshot.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kharcha/internal/backend"
	"kharcha/internal/core"
	"kharcha/internal/event"
)

// Mirror is the replica the worker writes to. The local file store
// satisfies it.
type Mirror interface {
	Put(ctx context.Context, e core.Expense) error
	SetPaid(ctx context.Context, id string, paid bool) (core.Expense, error)
	Remove(ctx context.Context, id string) error
	Replace(ctx context.Context, items []core.Expense) error
}

// MirrorWorker applies mutation events to the mirror. The source store
// is only consulted for full resyncs; events carry everything needed
// for incremental updates.
type MirrorWorker struct {
	source backend.Store
	mirror Mirror
}

func NewMirrorWorker(source backend.Store, mirror Mirror) *MirrorWorker {
	return &MirrorWorker{source: source, mirror: mirror}
}

// HandleEvent applies one mutation event to the mirror.
func (w *MirrorWorker) HandleEvent(ctx context.Context, e event.Event) error {
	switch e.Type {
	case event.TypeAdded:
		if err := w.mirror.Put(ctx, *e.Expense); err != nil {
			return fmt.Errorf("apply added event %s: %w", e.ID, err)
		}
	case event.TypePaidSet:
		_, err := w.mirror.SetPaid(ctx, e.ID, e.Paid)
		if errors.Is(err, core.ErrNotFound) {
			// The mirror has not seen this record yet; the next
			// resync will pick it up.
			slog.WarnContext(ctx, "Paid event for unknown record, deferring to resync", "id", e.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("apply paid event %s: %w", e.ID, err)
		}
	case event.TypeRemoved:
		if err := w.mirror.Remove(ctx, e.ID); err != nil {
			return fmt.Errorf("apply removed event %s: %w", e.ID, err)
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

// Resync replaces the mirror's collection with the source's current
// snapshot, healing any missed events.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	items, err := w.source.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}
	if err := w.mirror.Replace(ctx, items); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	slog.InfoContext(ctx, "Mirror resynced", "records", len(items))
	return nil
}

// RunResyncLoop resyncs on the given interval until ctx is cancelled.
// A failed resync is logged and retried at the next tick; the mirror
// keeps its last-known-good contents in the meantime.
func (w *MirrorWorker) RunResyncLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Resync(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
			}
		}
	}
}
