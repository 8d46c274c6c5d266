package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ramhdi/vimana2/internal/model"
	"github.com/ramhdi/vimana2/internal/store"
	"github.com/ramhdi/vimana2/internal/websocket"
)

type RefuelHandler struct {
	store    *store.RefuelStore
	vehicles *store.VehicleStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewRefuelHandler(s *store.RefuelStore, vehicles *store.VehicleStore, hub *websocket.Hub, logger *slog.Logger) *RefuelHandler {
	return &RefuelHandler{store: s, vehicles: vehicles, hub: hub, logger: logger}
}

// Create records a refuel event. Every refuel carries the odometer value
// read at the pump, which is stored as a regular odometer reading.
func (h *RefuelHandler) Create(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	var req struct {
		Timestamp *time.Time `json:"timestamp"`
		Quantity  *float64   `json:"refuel_quantity"`
		Odometer  *float64   `json:"odometer_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "refuel_quantity must be a positive number")
		return
	}
	if req.Odometer == nil || *req.Odometer < 0 {
		writeError(w, http.StatusUnprocessableEntity, "odometer_value must be a non-negative number")
		return
	}
	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	refuel, err := h.store.Create(v.ID, timestamp, *req.Quantity, *req.Odometer)
	if err != nil {
		writeInternal(w, h.logger, "create refuel", err)
		return
	}

	h.hub.Broadcast(websocket.NewMessage("refuel", "created", refuel.ID))
	writeJSON(w, http.StatusCreated, refuel)
}

func (h *RefuelHandler) Latest(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	refuel, err := h.store.Latest(v.ID)
	if err != nil {
		writeInternal(w, h.logger, "latest refuel", err)
		return
	}
	if refuel == nil {
		writeError(w, http.StatusNotFound, "no refuels for vehicle")
		return
	}
	writeJSON(w, http.StatusOK, refuel)
}

func (h *RefuelHandler) Timeseries(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	from, to, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "from/to must be RFC 3339 timestamps")
		return
	}

	refuels, err := h.store.Series(v.ID, from, to)
	if err != nil {
		writeInternal(w, h.logger, "refuel series", err)
		return
	}
	if refuels == nil {
		refuels = []model.Refuel{}
	}
	writeJSON(w, http.StatusOK, refuels)
}
