package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"proofpack/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	var seenUser string
	var seenRoles []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = requestcontext.UserID(r.Context()).String()
		seenRoles = requestcontext.Roles(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		mw := RequireAuth(stubValidator{}, discardLogger())
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		mw := RequireAuth(stubValidator{err: errors.New("bad")}, discardLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed subject is unauthorized", func(t *testing.T) {
		mw := RequireAuth(stubValidator{claims: &JWTClaims{UserID: "not-a-uuid"}}, discardLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token sets caller", func(t *testing.T) {
		mw := RequireAuth(stubValidator{claims: &JWTClaims{UserID: userID.String(), Roles: []string{"reviewer"}}}, discardLogger())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, userID.String(), seenUser)
		assert.Equal(t, []string{"reviewer"}, seenRoles)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mw := RequireRole("admin", discardLogger())

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestcontext.WithRoles(req.Context(), []string{"admin"}))
	rr = httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRequireAnyRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mw := RequireAnyRole(discardLogger(), "reviewer", "admin")

	for _, roles := range [][]string{{"reviewer"}, {"admin"}, {"sme", "admin"}} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(requestcontext.WithRoles(req.Context(), roles))
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code, "roles %v", roles)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestcontext.WithRoles(req.Context(), []string{"buyer"}))
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
