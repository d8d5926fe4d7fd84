package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Date is a calendar day with no time-of-day semantics. It marshals
	// to and from the wire as "2006-01-02".
	Date struct {
		time.Time
	}

	// Expense is a stored expense record. The id is assigned by the store
	// that created the record and never changes; only Paid is mutated
	// after creation.
	Expense struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
		Paid     bool   `json:"paid"`
	}

	// Draft holds the four user-submitted fields of an expense that has
	// not been stored yet.
	Draft struct {
		Name     string `json:"name"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
	}
)

var (
	// ErrInvalidDraft is the root of all draft validation failures.
	ErrInvalidDraft = errors.New("invalid draft")

	ErrEmptyName     = fmt.Errorf("%w: empty name", ErrInvalidDraft)
	ErrEmptyCategory = fmt.Errorf("%w: empty category", ErrInvalidDraft)
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalidDraft)
	ErrInvalidDate   = fmt.Errorf("%w: invalid date", ErrInvalidDraft)

	// ErrNotFound reports a mutation against an id that is not in the
	// collection.
	ErrNotFound = errors.New("expense not found")

	// ErrUnavailable reports that the backing store could not be reached
	// or read. Callers keep their last-known-good view when they see it.
	ErrUnavailable = errors.New("store unavailable")
)

// IsValidation reports whether err is a draft validation failure, as
// opposed to a store or transport failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDraft)
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ParseDraft builds a Draft from raw user input. All four fields are
// required; amount must parse to a non-negative value and date must be
// a "2006-01-02" day.
func ParseDraft(name, amount, category, date string) (Draft, error) {
	d := Draft{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
	}
	if d.Name == "" {
		return Draft{}, ErrEmptyName
	}
	if d.Category == "" {
		return Draft{}, ErrEmptyCategory
	}
	m, err := ParseAmount(amount)
	if err != nil {
		return Draft{}, err
	}
	d.Amount = m
	day, err := ParseDate(date)
	if err != nil {
		return Draft{}, err
	}
	d.Date = day
	return d, nil
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if len(d.Name) > 200 {
		return fmt.Errorf("%w: name too long (max 200 characters)", ErrInvalidDraft)
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	return d.Date.Validate()
}
