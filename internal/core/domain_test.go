package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDraft(t *testing.T) {
	cases := []struct {
		name, amount, category, date string
		wantErr                      error
	}{
		{"Coffee", "5", "Food", "2024-01-01", nil},
		{"  Coffee  ", "12.34", "Food", "2024-01-01", nil},
		{"", "5", "Food", "2024-01-01", ErrEmptyName},
		{"   ", "5", "Food", "2024-01-01", ErrEmptyName},
		{"Coffee", "5", "", "2024-01-01", ErrEmptyCategory},
		{"Coffee", "", "Food", "2024-01-01", ErrInvalidAmount},
		{"Coffee", "abc", "Food", "2024-01-01", ErrInvalidAmount},
		{"Coffee", "-5", "Food", "2024-01-01", ErrInvalidAmount},
		{"Coffee", "5", "Food", "", ErrInvalidDate},
		{"Coffee", "5", "Food", "01/01/2024", ErrInvalidDate},
	}
	for i, tc := range cases {
		d, err := ParseDraft(tc.name, tc.amount, tc.category, tc.date)
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("case %d expected ok, got %v", i, err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("case %d parsed draft does not validate: %v", i, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("case %d expected %v, got %v", i, tc.wantErr, err)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected a validation error, got %v", i, err)
		}
	}
}

func TestParseDraftTrimsFields(t *testing.T) {
	d, err := ParseDraft("  Lunch ", "9.50", " Food ", "2024-02-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Lunch" || d.Category != "Food" {
		t.Fatalf("fields not trimmed: %+v", d)
	}
	if d.Amount.Paise != 950 {
		t.Fatalf("unexpected amount: %d", d.Amount.Paise)
	}
}

func TestDraftValidateZeroAmount(t *testing.T) {
	// Zero is a valid amount; only negatives are rejected.
	d := Draft{Name: "n", Category: "c", Amount: Money{Paise: 0}, Date: NewDate(2024, 1, 1)}
	if err := d.Validate(); err != nil {
		t.Fatalf("expected ok for zero amount, got %v", err)
	}
	d.Amount.Paise = -1
	if !errors.Is(d.Validate(), ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative amount")
	}
}

func TestIsValidationClassification(t *testing.T) {
	for _, err := range []error{ErrEmptyName, ErrEmptyCategory, ErrInvalidAmount, ErrInvalidDate} {
		if !IsValidation(err) {
			t.Fatalf("%v should classify as validation", err)
		}
	}
	if IsValidation(ErrNotFound) || IsValidation(ErrUnavailable) {
		t.Fatalf("store errors must not classify as validation")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("unexpected wire form: %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestExpenseJSON(t *testing.T) {
	e := Expense{
		ID:       "abc",
		Name:     "Coffee",
		Amount:   Money{Paise: 500},
		Category: "Food",
		Date:     NewDate(2024, 1, 1),
		Paid:     false,
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"abc","name":"Coffee","amount":5,"category":"Food","date":"2024-01-01","paid":false}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", b, want)
	}
	var back Expense
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != e {
		t.Fatalf("round trip mismatch: %+v != %+v", back, e)
	}
}
