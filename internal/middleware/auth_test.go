package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/auth"
	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/middleware"
)

// TestAuthenticator_ValidToken verifies that a well-formed bearer token is
// accepted and the requester it names is available from the request context.
func TestAuthenticator_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tokens.Issue(userID, true)
	require.NoError(t, err)

	var got domain.Requester
	var ok bool
	h := middleware.NewAuthenticator(tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = middleware.RequesterFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, userID, got.ID)
	assert.True(t, got.Admin)
}

// TestAuthenticator_MissingHeader verifies that a request without an
// Authorization header is rejected with 401 before reaching the handler.
func TestAuthenticator_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	h := middleware.NewAuthenticator(tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// TestAuthenticator_BadToken verifies that tokens signed with a different
// secret are rejected with 401.
func TestAuthenticator_BadToken(t *testing.T) {
	other := auth.NewTokenManager("other-secret", time.Hour)
	token, err := other.Issue(uuid.New(), false)
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := middleware.NewAuthenticator(tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuthenticator_ExpiredToken verifies that an expired token is rejected.
func TestAuthenticator_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", -time.Hour)
	token, err := tokens.Issue(uuid.New(), false)
	require.NoError(t, err)

	h := middleware.NewAuthenticator(tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
