package config

import "github.com/urfave/cli/v3"

// Slack holds notification configuration. Notifications are off
// unless a webhook URL is provided.
type Slack struct {
	WebhookURL string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for cycle notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("SCINTPIPE_SLACK_WEBHOOK_URL"),
		},
	}
}
