package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vanhire/backend/internal/auth"
	"github.com/vanhire/backend/internal/domain"
)

type contextKey string

// requesterKey stores the authenticated domain.Requester in the request context.
const requesterKey contextKey = "requester"

// TokenVerifier validates a bearer token string. Satisfied by *auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. On success the verified
// domain.Requester is placed in the request context; on any failure the
// request is rejected with 401 and a JSON error body.
func NewAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			requester := domain.Requester{ID: claims.UserID, Admin: claims.Admin}
			ctx := context.WithValue(r.Context(), requesterKey, requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequesterFromContext returns the authenticated requester stored by
// NewAuthenticator. The boolean is false on routes that skipped the
// authenticator.
func RequesterFromContext(ctx context.Context) (domain.Requester, bool) {
	requester, ok := ctx.Value(requesterKey).(domain.Requester)
	return requester, ok
}

// ContextWithRequester injects a requester directly, bypassing token
// verification. For handler tests.
func ContextWithRequester(ctx context.Context, requester domain.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, requester)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"invalid or missing credentials"}`))
}
