package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ramhdi/vimana2/internal/store"
)

// SessionSweeper periodically deletes sessions past their expiry. Expired
// rows are already invisible to authentication; the sweep just keeps the
// table from growing without bound.
type SessionSweeper struct {
	sessions *store.SessionStore
	interval time.Duration
	logger   *slog.Logger
}

func NewSessionSweeper(sessions *store.SessionStore, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionSweeper{sessions: sessions, interval: interval, logger: logger}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (sw *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := sw.sessions.DeleteExpired(time.Now().UTC())
			if err != nil {
				sw.logger.Error("session sweep", "error", err)
				continue
			}
			if deleted > 0 {
				sw.logger.Info("session sweep", "deleted", deleted)
			}
		case <-ctx.Done():
			return
		}
	}
}
