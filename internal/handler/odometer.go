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

type OdometerHandler struct {
	store    *store.OdometerStore
	vehicles *store.VehicleStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewOdometerHandler(s *store.OdometerStore, vehicles *store.VehicleStore, hub *websocket.Hub, logger *slog.Logger) *OdometerHandler {
	return &OdometerHandler{store: s, vehicles: vehicles, hub: hub, logger: logger}
}

func (h *OdometerHandler) Create(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	var req struct {
		Timestamp *time.Time `json:"timestamp"`
		Value     *float64   `json:"odometer_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Value == nil || *req.Value < 0 {
		writeError(w, http.StatusUnprocessableEntity, "odometer_value must be a non-negative number")
		return
	}
	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	reading, err := h.store.Create(v.ID, timestamp, *req.Value)
	if err != nil {
		writeInternal(w, h.logger, "create odometer reading", err)
		return
	}

	h.hub.Broadcast(websocket.NewMessage("odometer", "created", reading.ID))
	writeJSON(w, http.StatusCreated, reading)
}

func (h *OdometerHandler) Latest(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	reading, err := h.store.Latest(v.ID)
	if err != nil {
		writeInternal(w, h.logger, "latest odometer reading", err)
		return
	}
	if reading == nil {
		writeError(w, http.StatusNotFound, "no odometer readings for vehicle")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (h *OdometerHandler) Timeseries(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	from, to, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "from/to must be RFC 3339 timestamps")
		return
	}

	readings, err := h.store.Series(v.ID, from, to)
	if err != nil {
		writeInternal(w, h.logger, "odometer series", err)
		return
	}
	if readings == nil {
		readings = []model.OdometerReading{}
	}
	writeJSON(w, http.StatusOK, readings)
}

func (h *OdometerHandler) Traveled(w http.ResponseWriter, r *http.Request) {
	v := resolveOwnedVehicle(w, r, h.vehicles, h.logger, "vehicleID")
	if v == nil {
		return
	}

	from, to, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "from/to must be RFC 3339 timestamps")
		return
	}

	distance, count, err := h.store.Traveled(v.ID, from, to)
	if err != nil {
		writeInternal(w, h.logger, "traveled distance", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle_id": v.ID,
		"distance":   distance,
		"readings":   count,
	})
}
