package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/config"
	"github.com/ramhdi/vimana2/internal/handler"
	"github.com/ramhdi/vimana2/internal/middleware"
	"github.com/ramhdi/vimana2/internal/service"
	"github.com/ramhdi/vimana2/internal/store"
	ws "github.com/ramhdi/vimana2/internal/websocket"
)

// Server wires stores, services, and handlers together and owns the route
// table.
type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	authService  *service.AuthService
	authH        *handler.AuthHandler
	userH        *handler.UserHandler
	vehicleH     *handler.VehicleHandler
	odometerH    *handler.OdometerHandler
	refuelH      *handler.RefuelHandler
	wsH          *handler.WSHandler
	logger       *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	vehicleStore := store.NewVehicleStore(db)
	odometerStore := store.NewOdometerStore(db)
	refuelStore := store.NewRefuelStore(db)

	hasher := auth.NewHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userStore, sessionStore, hasher, auth.RolePolicy{}, cfg.SessionTTL)

	return &Server{
		db:           db,
		hub:          hub,
		userStore:    userStore,
		sessionStore: sessionStore,
		authService:  authService,
		authH:        handler.NewAuthHandler(authService, cfg.BasePath, logger.With("component", "auth")),
		userH:        handler.NewUserHandler(authService, logger.With("component", "user")),
		vehicleH:     handler.NewVehicleHandler(vehicleStore, hub, logger.With("component", "vehicle")),
		odometerH:    handler.NewOdometerHandler(odometerStore, vehicleStore, hub, logger.With("component", "odometer")),
		refuelH:      handler.NewRefuelHandler(refuelStore, vehicleStore, hub, logger.With("component", "refuel")),
		wsH:          handler.NewWSHandler(hub, logger.With("component", "ws")),
		logger:       logger,
	}
}

// AuthService exposes the auth service for startup tasks (admin bootstrap).
func (s *Server) AuthService() *service.AuthService {
	return s.authService
}

// SessionStore exposes the session store for the expiry sweeper.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/public/login", s.authH.Login)
	mux.HandleFunc("GET /api/public/health", s.healthHandler)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/protected/health", s.healthHandler)
	protected.HandleFunc("POST /api/protected/logout", s.authH.Logout)
	protected.HandleFunc("POST /api/protected/users", s.userH.Create)

	protected.HandleFunc("POST /api/protected/vehicles", s.vehicleH.Create)
	protected.HandleFunc("GET /api/protected/vehicles", s.vehicleH.List)
	protected.HandleFunc("GET /api/protected/vehicles/{id}", s.vehicleH.Get)
	protected.HandleFunc("PUT /api/protected/vehicles/{id}", s.vehicleH.Update)
	protected.HandleFunc("DELETE /api/protected/vehicles/{id}", s.vehicleH.Delete)

	protected.HandleFunc("POST /api/protected/odometer/{vehicleID}", s.odometerH.Create)
	protected.HandleFunc("GET /api/protected/odometer/{vehicleID}/latest", s.odometerH.Latest)
	protected.HandleFunc("GET /api/protected/odometer/{vehicleID}/timeseries", s.odometerH.Timeseries)
	protected.HandleFunc("GET /api/protected/odometer/{vehicleID}/traveled", s.odometerH.Traveled)

	protected.HandleFunc("POST /api/protected/refuel/{vehicleID}", s.refuelH.Create)
	protected.HandleFunc("GET /api/protected/refuel/{vehicleID}/latest", s.refuelH.Latest)
	protected.HandleFunc("GET /api/protected/refuel/{vehicleID}/timeseries", s.refuelH.Timeseries)

	protected.HandleFunc("GET /api/protected/ws", s.wsH.Serve)

	requireAuth := middleware.RequireAuth(s.sessionStore, s.userStore, s.logger.With("component", "authn"))
	mux.Handle("/api/protected/", requireAuth(protected))

	var h http.Handler = mux
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	h = middleware.Recover(s.logger.With("component", "recover"))(h)
	return h
}

// healthHandler reports service and storage reachability. It serves both
// mounts; the copy under /api/protected/ sits behind the session check like
// everything else there.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
