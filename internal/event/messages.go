package event

import (
	"encoding/json"
	"fmt"
	"time"

	"kharcha/internal/core"
)

// Type identifies a mutation kind.
type Type string

const (
	TypeAdded   Type = "added"
	TypePaidSet Type = "paid_set"
	TypeRemoved Type = "removed"
)

// Event describes one successful mutation of the expense collection.
// Added events carry the full record so mirrors can apply them without
// a read-back; paid_set and removed only need the id.
type Event struct {
	Type      Type          `json:"type"`
	ID        string        `json:"id"`
	Paid      bool          `json:"paid,omitempty"`
	Expense   *core.Expense `json:"expense,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewAdded(e core.Expense) Event {
	return Event{Type: TypeAdded, ID: e.ID, Expense: &e, Timestamp: time.Now()}
}

func NewPaidSet(id string, paid bool) Event {
	return Event{Type: TypePaidSet, ID: id, Paid: paid, Timestamp: time.Now()}
}

func NewRemoved(id string) Event {
	return Event{Type: TypeRemoved, ID: id, Timestamp: time.Now()}
}

// Validate checks the event is applyable.
func (e Event) Validate() error {
	switch e.Type {
	case TypeAdded:
		if e.Expense == nil || e.Expense.ID == "" {
			return fmt.Errorf("added event without expense")
		}
	case TypePaidSet, TypeRemoved:
		if e.ID == "" {
			return fmt.Errorf("%s event without id", e.Type)
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event from JSON bytes.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}
