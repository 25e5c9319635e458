package errs

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err and reports it to Sentry when a client is configured
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	ctxlog.From(ctx).Error(msg, "error", err)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if ge := goerr.Unwrap(err); ge != nil {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		}
		scope.SetTag("message", msg)
		hub.CaptureException(err)
	})
}

// Flush waits for buffered Sentry events to be delivered
func Flush() {
	sentry.Flush(2 * time.Second)
}
