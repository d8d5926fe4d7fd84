package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Paise != 0 || s.Paid.Paise != 0 || s.Unpaid.Paise != 0 {
		t.Fatalf("expected all-zero summary, got %+v", s)
	}
}

func TestSummarizeTotals(t *testing.T) {
	expenses := []Expense{
		{ID: "a", Amount: Money{Paise: 500}, Paid: true},
		{ID: "b", Amount: Money{Paise: 1250}, Paid: false},
		{ID: "c", Amount: Money{Paise: 75}, Paid: true},
	}
	s := Summarize(expenses)
	if s.Total.Paise != 1825 {
		t.Fatalf("unexpected total: %d", s.Total.Paise)
	}
	if s.Paid.Paise != 575 {
		t.Fatalf("unexpected paid: %d", s.Paid.Paise)
	}
	if s.Unpaid.Paise != 1250 {
		t.Fatalf("unexpected unpaid: %d", s.Unpaid.Paise)
	}
}

// Total must equal Paid + Unpaid exactly for any snapshot.
func TestSummarizeIdentity(t *testing.T) {
	snapshots := [][]Expense{
		nil,
		{{Amount: Money{Paise: 1}, Paid: true}},
		{{Amount: Money{Paise: 333}}, {Amount: Money{Paise: 667}, Paid: true}},
		{{Amount: Money{Paise: 10}}, {Amount: Money{Paise: 10}}, {Amount: Money{Paise: 10}, Paid: true}},
	}
	for i, snap := range snapshots {
		s := Summarize(snap)
		if s.Total.Paise != s.Paid.Paise+s.Unpaid.Paise {
			t.Fatalf("snapshot %d: total %d != paid %d + unpaid %d", i, s.Total.Paise, s.Paid.Paise, s.Unpaid.Paise)
		}
	}
}

// Duplicate ids should not occur upstream, but the aggregator just sums
// what it is given.
func TestSummarizeDuplicateIDs(t *testing.T) {
	expenses := []Expense{
		{ID: "x", Amount: Money{Paise: 100}, Paid: true},
		{ID: "x", Amount: Money{Paise: 100}, Paid: true},
	}
	s := Summarize(expenses)
	if s.Total.Paise != 200 || s.Paid.Paise != 200 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestBarHeight(t *testing.T) {
	s := Summary{Paid: Money{Paise: 500}, Unpaid: Money{Paise: 1000}}
	if h := s.BarHeight(s.Unpaid, 200); h != 200 {
		t.Fatalf("tallest bar should hit the scale, got %d", h)
	}
	if h := s.BarHeight(s.Paid, 200); h != 100 {
		t.Fatalf("half-sized bar should be half the scale, got %d", h)
	}

	// All-zero summary must not divide by zero.
	var zero Summary
	if h := zero.BarHeight(Money{}, 200); h != 0 {
		t.Fatalf("expected zero height for empty summary, got %d", h)
	}
}
