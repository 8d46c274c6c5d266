package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/service"
)

// UserHandler owns the privileged account-creation endpoint.
type UserHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

func NewUserHandler(svc *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.service.CreateUser(ac.Role, req.Username, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
