package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/model"
	"github.com/ramhdi/vimana2/internal/store"
	"github.com/ramhdi/vimana2/internal/websocket"
)

const dateLayout = "2006-01-02"

type VehicleHandler struct {
	store  *store.VehicleStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewVehicleHandler(s *store.VehicleStore, hub *websocket.Hub, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{store: s, hub: hub, logger: logger}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brand              string `json:"brand"`
		Model              string `json:"model"`
		Registration       string `json:"registration"`
		RegistrationExpiry string `json:"registration_expiry_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Brand = strings.TrimSpace(req.Brand)
	req.Model = strings.TrimSpace(req.Model)
	req.Registration = strings.TrimSpace(req.Registration)
	if req.Brand == "" || req.Model == "" || req.Registration == "" {
		writeError(w, http.StatusUnprocessableEntity, "brand, model, and registration are required")
		return
	}
	if _, err := time.Parse(dateLayout, req.RegistrationExpiry); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "registration_expiry_date must be YYYY-MM-DD")
		return
	}

	v, err := h.store.Create(auth.UserID(r.Context()), req.Brand, req.Model, req.Registration, req.RegistrationExpiry)
	if err != nil {
		writeInternal(w, h.logger, "create vehicle", err)
		return
	}

	h.hub.Broadcast(websocket.NewMessage("vehicle", "created", v.ID))
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.store.ListByUserID(auth.UserID(r.Context()))
	if err != nil {
		writeInternal(w, h.logger, "list vehicles", err)
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.store, h.logger, "id")
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := resolveOwnedVehicle(w, r, h.store, h.logger, "id")
	if existing == nil {
		return
	}

	var req struct {
		Brand              *string `json:"brand"`
		Model              *string `json:"model"`
		Registration       *string `json:"registration"`
		RegistrationExpiry *string `json:"registration_expiry_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	brand := existing.Brand
	vmodel := existing.Model
	registration := existing.Registration
	expiry := existing.RegistrationExpiry
	if req.Brand != nil {
		brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		vmodel = strings.TrimSpace(*req.Model)
	}
	if req.Registration != nil {
		registration = strings.TrimSpace(*req.Registration)
	}
	if req.RegistrationExpiry != nil {
		expiry = *req.RegistrationExpiry
	}
	if brand == "" || vmodel == "" || registration == "" {
		writeError(w, http.StatusUnprocessableEntity, "brand, model, and registration must not be empty")
		return
	}
	if _, err := time.Parse(dateLayout, expiry); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "registration_expiry_date must be YYYY-MM-DD")
		return
	}

	v, err := h.store.Update(existing.ID, brand, vmodel, registration, expiry)
	if err != nil {
		writeInternal(w, h.logger, "update vehicle", err)
		return
	}

	h.hub.Broadcast(websocket.NewMessage("vehicle", "updated", v.ID))
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := resolveOwnedVehicle(w, r, h.store, h.logger, "id")
	if existing == nil {
		return
	}

	if _, err := h.store.Delete(existing.ID); err != nil {
		writeInternal(w, h.logger, "delete vehicle", err)
		return
	}

	h.hub.Broadcast(websocket.NewMessage("vehicle", "deleted", existing.ID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}
