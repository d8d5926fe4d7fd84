// Package service orchestrates expense mutations: every change goes
// through the store, and successful ones are announced on the event
// bus for mirrors to follow.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"kharcha/internal/backend"
	"kharcha/internal/core"
	"kharcha/internal/event"
)

// Publisher sends mutation events. The AMQP client satisfies it; a nil
// publisher degrades the service to store-only.
type Publisher interface {
	Publish(ctx context.Context, e event.Event) error
	Close() error
}

type ExpenseService struct {
	store     backend.Store
	cleanup   backend.CleanupFunc
	publisher Publisher
}

func NewExpenseService(result *backend.Result, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     result.Store,
		cleanup:   result.Cleanup,
		publisher: publisher,
	}
}

// List returns the collection snapshot in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx)
}

// Summary aggregates the current snapshot.
func (s *ExpenseService) Summary(ctx context.Context) (core.Summary, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(items), nil
}

// Add stores a new record and announces it. A failed announcement is
// logged, never surfaced; the record is already durable.
func (s *ExpenseService) Add(ctx context.Context, draft core.Draft) (core.Expense, error) {
	e, err := s.store.Add(ctx, draft)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, event.NewAdded(e))
	return e, nil
}

// SetPaid flips the paid flag of one record and announces it.
func (s *ExpenseService) SetPaid(ctx context.Context, id string, paid bool) (core.Expense, error) {
	e, err := s.store.SetPaid(ctx, id, paid)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, event.NewPaidSet(e.ID, e.Paid))
	return e, nil
}

// Remove deletes a record and announces it. Removing an absent id is a
// success and is still announced, since mirrors apply removes
// idempotently too.
func (s *ExpenseService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, event.NewRemoved(id))
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation event",
			"type", e.Type, "id", e.ID, "error", err)
	}
}

// Close releases the store and the publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
