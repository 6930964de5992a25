package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nadgodziny/config"
	"nadgodziny/middleware"
	"nadgodziny/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[string]*models.User
	saved *models.User
}

func (f *fakeUserStore) GetByUsername(username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeUserStore) Save(user *models.User) error {
	f.saved = user
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
	}
}

func seededUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Username:     "pracownik",
		FullName:     "Anna Nowak",
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
	}
}

func TestLogin_Success(t *testing.T) {
	middleware.SetJWTSecret("test-secret")
	user := seededUser(t, "tajnehaslo")
	h := NewAuthHandler(testConfig(), &fakeUserStore{users: map[string]*models.User{"pracownik": user}})

	req := requestWithUser(http.MethodPost, "/api/login",
		`{"username":"pracownik","password":"tajnehaslo"}`, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	// Cookie is set and the token validates.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	claims, err := middleware.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	middleware.SetJWTSecret("test-secret")
	user := seededUser(t, "tajnehaslo")
	h := NewAuthHandler(testConfig(), &fakeUserStore{users: map[string]*models.User{"pracownik": user}})

	req := requestWithUser(http.MethodPost, "/api/login",
		`{"username":"pracownik","password":"zlehaslo"}`, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	h := NewAuthHandler(testConfig(), &fakeUserStore{users: map[string]*models.User{}})

	req := requestWithUser(http.MethodPost, "/api/login",
		`{"username":"nieistnieje","password":"x"}`, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	user := seededUser(t, "starehaslo")
	user.MustChangePassword = true
	store := &fakeUserStore{users: map[string]*models.User{"pracownik": user}}
	h := NewAuthHandler(testConfig(), store)

	req := requestWithUser(http.MethodPost, "/api/change-password",
		`{"current_password":"starehaslo","new_password":"nowehaslo"}`, user)
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.saved)
	assert.False(t, store.saved.MustChangePassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.saved.PasswordHash), []byte("nowehaslo")))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	user := seededUser(t, "starehaslo")
	h := NewAuthHandler(testConfig(), &fakeUserStore{users: map[string]*models.User{"pracownik": user}})

	req := requestWithUser(http.MethodPost, "/api/change-password",
		`{"current_password":"zle","new_password":"nowehaslo"}`, user)
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword_TooShort(t *testing.T) {
	user := seededUser(t, "starehaslo")
	h := NewAuthHandler(testConfig(), &fakeUserStore{users: map[string]*models.User{"pracownik": user}})

	req := requestWithUser(http.MethodPost, "/api/change-password",
		`{"current_password":"starehaslo","new_password":"abc"}`, user)
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
