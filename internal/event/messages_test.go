package event

import (
	"testing"

	"kharcha/internal/core"
)

func TestEventJSONRoundTrip(t *testing.T) {
	exp := core.Expense{
		ID:       "abc",
		Name:     "Coffee",
		Amount:   core.Money{Paise: 500},
		Category: "Food",
		Date:     core.NewDate(2024, 1, 1),
	}

	cases := []Event{
		NewAdded(exp),
		NewPaidSet("abc", true),
		NewRemoved("abc"),
	}
	for i, in := range cases {
		data, err := in.ToJSON()
		if err != nil {
			t.Fatalf("case %d marshal: %v", i, err)
		}
		out, err := FromJSON(data)
		if err != nil {
			t.Fatalf("case %d unmarshal: %v", i, err)
		}
		if out.Type != in.Type || out.ID != in.ID || out.Paid != in.Paid {
			t.Fatalf("case %d round trip mismatch: %+v != %+v", i, out, in)
		}
	}

	added, _ := FromJSON(mustJSON(t, NewAdded(exp)))
	if added.Expense == nil || *added.Expense != exp {
		t.Fatalf("added event lost the record: %+v", added.Expense)
	}
}

func mustJSON(t *testing.T, e Event) []byte {
	t.Helper()
	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte(`{`),
		[]byte(`{"type":"added"}`),            // no expense payload
		[]byte(`{"type":"paid_set"}`),         // no id
		[]byte(`{"type":"removed"}`),          // no id
		[]byte(`{"type":"renamed","id":"x"}`), // unknown type
	}
	for i, data := range cases {
		if _, err := FromJSON(data); err == nil {
			t.Fatalf("case %d expected error for %s", i, data)
		}
	}
}
