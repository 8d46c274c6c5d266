package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/model"
	"github.com/ramhdi/vimana2/internal/service"
	"github.com/ramhdi/vimana2/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy to HTTP statuses.
// Anything unrecognized is an internal failure: the detail is logged and
// captured, never sent to the client.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, service.ErrForbidden.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, service.ErrSessionNotFound.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, service.ErrUsernameTaken.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("internal error", "error", err)
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeInternal logs and captures an unexpected failure and answers with a
// generic 500.
func writeInternal(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	logger.Error(op, "error", err)
	sentry.CaptureException(err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// resolveOwnedVehicle maps the named path parameter to a vehicle owned by
// the caller. A vehicle that exists but belongs to someone else reads the
// same as one that doesn't exist.
func resolveOwnedVehicle(w http.ResponseWriter, r *http.Request, vehicles *store.VehicleStore, logger *slog.Logger, param string) *model.Vehicle {
	v, err := vehicles.GetByID(r.PathValue(param))
	if err != nil {
		writeInternal(w, logger, "get vehicle", err)
		return nil
	}
	if v == nil || v.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return nil
	}
	return v
}

// parseTimeRange reads optional from/to RFC 3339 query parameters.
func parseTimeRange(r *http.Request) (from, to time.Time, err error) {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}
