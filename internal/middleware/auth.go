package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ramhdi/vimana2/internal/auth"
	"github.com/ramhdi/vimana2/internal/store"
)

// SessionCookieName is the cookie slot carrying the opaque session token.
const SessionCookieName = "session_token"

// RequireAuth resolves the session cookie to a live session and injects the
// owning account's identity into the request context. A missing, unknown,
// or expired token is rejected with a uniform 401; only a storage failure
// becomes a 500.
func RequireAuth(sessions *store.SessionStore, users *store.UserStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.GetActiveByToken(cookie.Value, time.Now().UTC())
			if err != nil {
				logger.Error("session lookup", "error", err)
				internalError(w)
				return
			}
			if sess == nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(sess.UserID)
			if err != nil {
				logger.Error("user lookup", "error", err)
				internalError(w)
				return
			}
			if user == nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Context{
				UserID: user.ID,
				Role:   user.Role,
				Token:  sess.Token,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
