package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"kharcha/internal/core"
)

// chartScale is the tallest bar the frontend renders, in pixels.
const chartScale = 160

type createRequest struct {
	Name     *string          `json:"name"`
	Amount   *json.RawMessage `json:"amount"`
	Category *string          `json:"category"`
	Date     *string          `json:"date"`
}

type setPaidRequest struct {
	Paid bool `json:"paid"`
}

type summaryResponse struct {
	core.Summary
	Chart chartResponse `json:"chart"`
}

type chartResponse struct {
	PaidHeight   int `json:"paid_height"`
	UnpaidHeight int `json:"unpaid_height"`
	Scale        int `json:"scale"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if items == nil {
		items = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	draft, err := core.ParseDraft(deref(req.Name), rawString(req.Amount), deref(req.Category), deref(req.Date))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.svc.Add(r.Context(), draft)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSetPaid(w http.ResponseWriter, r *http.Request) {
	var req setPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	updated, err := s.svc.SetPaid(r.Context(), r.PathValue("id"), req.Paid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleRemoveExpense deletes a record. Deleting an id that is already
// gone answers 200 as well, so retried deletes stay safe.
func (s *Server) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summary(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary: summary,
		Chart: chartResponse{
			PaidHeight:   summary.BarHeight(summary.Paid, chartScale),
			UnpaidHeight: summary.BarHeight(summary.Unpaid, chartScale),
			Scale:        chartScale,
		},
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawString renders an amount field as text whether the client sent a
// JSON number or a quoted string.
func rawString(raw *json.RawMessage) string {
	if raw == nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(string(*raw)), `"`)
}
