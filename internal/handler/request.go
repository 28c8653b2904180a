package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/middleware"
)

// requester pulls the authenticated identity from the request context.
// On routes behind the authenticator the second return is always true;
// the false branch exists so a miswired route fails closed with 401.
func requester(w http.ResponseWriter, r *http.Request) (domain.Requester, bool) {
	req, ok := middleware.RequesterFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: errorDetail{Code: "invalid_credentials", Message: "authentication required"},
		})
	}
	return req, ok
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// decodeJSON reads the request body into dst. The body size is already
// capped by the max-body-size middleware.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// queryInt parses an optional integer query parameter, returning nil when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
