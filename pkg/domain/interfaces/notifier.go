package interfaces

import (
	"context"

	"github.com/slack-go/slack"
)

// WebhookPoster delivers a message to an incoming webhook URL
type WebhookPoster interface {
	Post(ctx context.Context, url string, msg *slack.WebhookMessage) error
}
