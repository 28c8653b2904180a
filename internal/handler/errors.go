package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vanhire/backend/internal/domain"
)

// errorResponse is the JSON body returned for every non-2xx outcome.
// Conflict is populated only for booking conflicts, carrying the committed
// range that blocked the request.
type errorResponse struct {
	Error    errorDetail   `json:"error"`
	Conflict *dateRangeDTO `json:"conflict,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON marshals v into the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service-layer error onto an HTTP status and JSON body.
// Unrecognized errors become a 500 with a generic body; the detail goes to
// the log, not the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ue *domain.UnavailableError
	switch {
	case errors.As(err, &ue):
		conflict := rangeToResponse(ue.Conflict)
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:    errorDetail{Code: "van_unavailable", Message: "van is already booked for the selected dates"},
			Conflict: &conflict,
		})
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "email_taken", Message: domain.ErrEmailTaken.Error()},
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "not found"},
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error: errorDetail{Code: "forbidden", Message: "you do not have access to this resource"},
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: errorDetail{Code: "invalid_credentials", Message: domain.ErrInvalidCredentials.Error()},
		})
	case errors.Is(err, domain.ErrDatesInPast):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: domain.ErrDatesInPast.Error()},
		})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRate):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	default:
		slog.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// requestError rejects a request before it reaches the service layer
// (malformed body, bad path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.VanService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrInvalidRate.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
