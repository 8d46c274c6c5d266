package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures Sentry from the given DSN. An empty DSN disables
// reporting; every capture call then becomes a no-op.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	})
}

// FlushSentry drains buffered events on shutdown.
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
