package config

import "github.com/urfave/cli/v3"

// Slack holds notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook",
			Usage:       "Slack incoming webhook URL, notification is skipped when empty",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("PANELSHIP_SLACK_WEBHOOK", "SLACK_WEBHOOK"),
		},
	}
}
