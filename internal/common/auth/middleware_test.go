package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRevoker struct {
	revoked map[string]bool
	err     error
}

func (m *mockRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[jti], nil
}

func newTestMiddleware(t *testing.T) (*Manager, *Middleware, *mockRevoker) {
	t.Helper()
	manager := NewManager("test-secret", time.Hour)
	revoker := &mockRevoker{revoked: map[string]bool{}}
	return manager, NewMiddleware(manager, revoker, "access_token"), revoker
}

func claimsEcho(t *testing.T, captured **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = FromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_CookieToken(t *testing.T) {
	manager, mw, _ := newTestMiddleware(t)

	token, err := manager.GenerateToken("user-1", "driver")
	require.NoError(t, err)

	var got *Claims
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
}

func TestMiddleware_BearerFallback(t *testing.T) {
	manager, mw, _ := newTestMiddleware(t)

	token, err := manager.GenerateToken("user-2", "admin")
	require.NoError(t, err)

	var got *Claims
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-2", got.UserID)
}

func TestMiddleware_MissingToken(t *testing.T) {
	_, mw, _ := newTestMiddleware(t)

	var got *Claims
	req := httptest.NewRequest("GET", "/me", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	_, mw, _ := newTestMiddleware(t)

	var got *Claims
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "bogus"})
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestMiddleware_RevokedToken(t *testing.T) {
	manager, mw, revoker := newTestMiddleware(t)

	token, err := manager.GenerateToken("user-1", "driver")
	require.NoError(t, err)
	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	revoker.revoked[claims.ID] = true

	var got *Claims
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()
	mw.Authenticate(claimsEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}
