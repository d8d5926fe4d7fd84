package core

// Summary holds the derived totals for a collection snapshot.
type Summary struct {
	Total  Money `json:"total"`
	Paid   Money `json:"paid"`
	Unpaid Money `json:"unpaid"`
}

// Summarize computes the paid/unpaid totals of a snapshot. It is pure:
// no I/O, deterministic for a given input, and it sums exactly what it
// is given without assuming order or deduplication. An empty snapshot
// yields all-zero totals.
func Summarize(expenses []Expense) Summary {
	var s Summary
	for _, e := range expenses {
		s.Total.Paise += e.Amount.Paise
		if e.Paid {
			s.Paid.Paise += e.Amount.Paise
		}
	}
	s.Unpaid.Paise = s.Total.Paise - s.Paid.Paise
	return s
}

// BarHeight scales v proportionally to the larger of the paid and
// unpaid totals, for rendering the two-bar chart. When both totals are
// zero the denominator is substituted with one paisa so the result is
// zero rather than a division by zero.
func (s Summary) BarHeight(v Money, scale int) int {
	max := s.Paid.Paise
	if s.Unpaid.Paise > max {
		max = s.Unpaid.Paise
	}
	if max < 1 {
		max = 1
	}
	return int(v.Paise * int64(scale) / max)
}
