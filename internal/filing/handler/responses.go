package handler

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/sunsetmark/palyingwithedgar-sub001/pkg/domain-errors"
)

// errorEnvelope is the JSON error body every route returns.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError centralizes domain error translation to HTTP responses so every
// route renders the same envelope for the same condition.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Error:   string(code),
		Message: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
