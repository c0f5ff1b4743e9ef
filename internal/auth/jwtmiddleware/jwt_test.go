package jwtmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mowistore/backend/internal/auth"
	"github.com/mowistore/backend/internal/auth/jwtmiddleware"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, user *models.User, secret string) string {
	t.Helper()
	token, err := auth.NewToken(context.Background(), user, secret, time.Hour)
	assert.NoError(t, err)
	return token
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := issueToken(t, &models.User{ID: 42, Email: "ana@example.com", IsAdmin: true}, testSecret)

	var gotUserID int64
	var gotAdmin bool
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = jwtmiddleware.FromContext(r.Context())
		gotAdmin = jwtmiddleware.IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.True(t, gotAdmin)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_BadFormat(t *testing.T) {
	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist/", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := issueToken(t, &models.User{ID: 7, Email: "ana@example.com"}, "other-secret")

	handler := jwtmiddleware.NewJWTMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() {
		jwtmiddleware.NewJWTMiddleware("")
	})
}
