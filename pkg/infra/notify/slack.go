package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// SlackNotifier posts cycle outcomes to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	post       func(ctx context.Context, url string, msg *slack.WebhookMessage) error
}

// NewSlackNotifier creates a notifier for the given webhook URL
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		post:       slack.PostWebhookContext,
	}
}

// NotifySuccess reports a completed cycle
func (n *SlackNotifier) NotifySuccess(ctx context.Context, result *model.CycleResult) error {
	text := fmt.Sprintf(":satellite: scintillation data updated: %d records in %s (%s)",
		result.RecordCount, result.Duration.Round(10*time.Millisecond), result.CommitURL)

	msg := &slack.WebhookMessage{Text: text}
	if err := n.post(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post success notification to Slack")
	}
	return nil
}

// NotifyFailure reports a skipped cycle and its cause
func (n *SlackNotifier) NotifyFailure(ctx context.Context, cycleErr error) error {
	text := fmt.Sprintf(":warning: scintillation cycle skipped: %v", cycleErr)

	msg := &slack.WebhookMessage{Text: text}
	if err := n.post(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post failure notification to Slack")
	}
	return nil
}
