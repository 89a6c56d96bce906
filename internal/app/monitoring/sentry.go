// Package monitoring reports errors to Sentry, probes running instances and
// sends alerts to chat webhooks.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global Sentry client. It is a no-op returning
// false when dsn is empty.
func InitSentry(dsn, environment, release string) (bool, error) {
	if dsn == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
		TracesSampleRate: 0.1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialise sentry: %w", err)
	}
	return true, nil
}

// CaptureError sends err to the hub bound to ctx, or to the global hub
func CaptureError(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.CaptureException(err)
	})
}

// FlushSentry waits for buffered events to be delivered
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}
