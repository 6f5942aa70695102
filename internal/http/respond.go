package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/inkpost/inkpost/internal/domain"
)

// writeJSON writes a JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends a single-message error in the shared errors envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeFieldErrors(w, status, []domain.FieldError{{Msg: msg}})
}

// writeFieldErrors sends field-level errors in the shared errors envelope.
func writeFieldErrors(w http.ResponseWriter, status int, fields []domain.FieldError) {
	writeJSON(w, status, map[string]any{"errors": fields})
}
