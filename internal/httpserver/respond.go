// Package httpserver hosts the chi server, middleware chain, and response
// helpers shared by every handler, adapted from wisbric/core/pkg/httpserver
// and nightowl's internal/httpserver.
package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ANGHOOO/godlife/internal/apperr"
)

// Respond writes data as a JSON body with the given status code.
func Respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse is the JSON shape returned for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondError inspects err and writes the matching status and body. Tagged
// apperr.Error values map to their declared status and code; anything else
// is an internal error (§7).
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := apperr.StatusFor(err)
	code := apperr.CodeFor(err)
	if code == "" {
		code = "internal_error"
		logger.Error("unhandled error", "error", err)
	}
	Respond(w, status, ErrorResponse{Error: string(code), Message: err.Error()})
}
