package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/slack-go/slack"
)

const (
	statusSuccess = ":heavy_check_mark: Success :rocket:"
	statusFailure = ":x: Failure :cry:"
)

type notifier struct {
	poster        interfaces.WebhookPoster
	webhookURL    string
	changelogPath string
}

// NewNotifier creates a Notifier posting to webhookURL. An empty URL disables posting.
func NewNotifier(poster interfaces.WebhookPoster, webhookURL, changelogPath string) interfaces.Notifier {
	return &notifier{
		poster:        poster,
		webhookURL:    webhookURL,
		changelogPath: changelogPath,
	}
}

// Notify posts the publish status and release notes
func (uc *notifier) Notify(ctx context.Context, n *model.Notification) (bool, error) {
	logger := ctxlog.From(ctx)

	notes, err := LoadReleaseNotes(uc.changelogPath, n.AppVersion)
	if err != nil {
		logger.Warn("Failed to read changelog, using fallback release notes",
			"path", uc.changelogPath,
			"error", err,
		)
	}
	logger.Info("Release notes", "notes", notes)

	if uc.webhookURL == "" {
		logger.Warn("Slack webhook is not configured, cannot report")
		return false, nil
	}

	msg := BuildMessage(n, notes)
	if err := uc.poster.Post(ctx, uc.webhookURL, msg); err != nil {
		return false, goerr.Wrap(err, "failed to send notification")
	}

	logger.Info("Notification sent", "success", n.Result != nil && n.Result.Success)
	return true, nil
}

// StatusLine formats the first block of the notification
func StatusLine(n *model.Notification) string {
	status := statusFailure
	if n.Result != nil && n.Result.Success {
		status = statusSuccess
	}
	return fmt.Sprintf("%s\n*App*: `%s:%s` => *%s* by %s\n",
		status, n.AppName, n.AppVersion, n.Environment, n.Actor)
}

// BuildMessage builds the two-section webhook message
func BuildMessage(n *model.Notification, releaseNotes string) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, StatusLine(n), false, false), nil, nil),
				slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, releaseNotes, false, false), nil, nil),
			},
		},
	}
}
