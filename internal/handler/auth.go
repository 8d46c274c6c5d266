package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/middleware"
	"github.com/ramhdi/vimana2/internal/service"
)

// AuthHandler owns the login and logout endpoints and the session cookie
// they manage.
type AuthHandler struct {
	service  *service.AuthService
	basePath string
	logger   *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, basePath string, logger *slog.Logger) *AuthHandler {
	if basePath == "" {
		basePath = "/"
	}
	return &AuthHandler{service: svc, basePath: basePath, logger: logger}
}

// Login verifies credentials and sets the session cookie. The response is
// identical for an unknown username and a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     h.basePath,
		MaxAge:   int(h.service.SessionTTL().Seconds()),
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

// Logout deletes the caller's session and replaces the cookie with an
// immediately expiring one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.Logout(ac.UserID, ac.Token); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     h.basePath,
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
