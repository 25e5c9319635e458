package slack

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/slack-go/slack"
)

type webhook struct {
	httpClient *http.Client
}

// Option configures the webhook poster
type Option func(*webhook)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(w *webhook) {
		w.httpClient = hc
	}
}

// NewWebhook creates a WebhookPoster for Slack incoming webhooks
func NewWebhook(opts ...Option) interfaces.WebhookPoster {
	w := &webhook{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Post sends msg to the incoming webhook at url
func (w *webhook) Post(ctx context.Context, url string, msg *slack.WebhookMessage) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, url, w.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook")
	}
	return nil
}
