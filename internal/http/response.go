package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"kharcha/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps domain errors onto status codes. Anything the
// domain does not classify is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "expense not found")
	case errors.Is(err, core.ErrUnavailable):
		slog.Error("Store unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		slog.Error("Unhandled store error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
