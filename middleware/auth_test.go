package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nadgodziny/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 7, Username: "pracownik", Role: models.RoleEmployee}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "pracownik", claims.Username)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: 7, Username: "pracownik", Role: models.RoleEmployee}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	SetJWTSecret("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	SetJWTSecret("test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nie autoryzowano")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	SetJWTSecret("test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
}

func TestRequireRole(t *testing.T) {
	var reached bool
	handler := RequireRole(models.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// Employee is refused.
	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), &models.User{Role: models.RoleEmployee})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Manager passes.
	req = withUser(httptest.NewRequest(http.MethodGet, "/", nil), &models.User{Role: models.RoleManager})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	// No user at all.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	handler := RequireRole(models.RoleManager, models.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), &models.User{Role: models.RoleHR})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
