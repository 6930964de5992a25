package handlers

import (
	"encoding/json"
	"net/http"

	"nadgodziny/apperrors"
	"nadgodziny/config"
	"nadgodziny/middleware"
	"nadgodziny/models"

	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	GetByUsername(username string) (*models.User, error)
	Save(user *models.User) error
}

type AuthHandler struct {
	config *config.Config
	users  userStore
}

func NewAuthHandler(cfg *config.Config, users userStore) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		users:  users,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowe dane logowania"))
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		writeError(w, apperrors.Persistence("Błąd logowania", err))
		return
	}
	if user == nil {
		writeError(w, apperrors.Authentication("Nieprawidłowa nazwa użytkownika lub hasło"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, apperrors.Authentication("Nieprawidłowa nazwa użytkownika lub hasło"))
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, apperrors.Persistence("Błąd logowania", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, apperrors.Authentication("Nie autoryzowano"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowe dane"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		writeError(w, apperrors.Validation("Obecne hasło jest nieprawidłowe"))
		return
	}

	if len(req.NewPassword) < 5 {
		writeError(w, apperrors.Validation("Hasło musi mieć co najmniej 5 znaków"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, apperrors.Persistence("Błąd zmiany hasła", err))
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := h.users.Save(user); err != nil {
		writeError(w, apperrors.Persistence("Błąd zmiany hasła", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
