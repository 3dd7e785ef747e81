package notify

import (
	"context"

	slackgo "github.com/slack-go/slack"

	"github.com/corviu/corviu-go/internal/config"
)

// SlackNotifier posts change notifications to a Slack channel.
type SlackNotifier struct {
	client  *slackgo.Client
	channel string
}

// NewSlackNotifier creates a SlackNotifier from its config.
func NewSlackNotifier(cfg *config.SlackNotifyConfig) *SlackNotifier {
	return &SlackNotifier{
		client:  slackgo.New(cfg.BotToken),
		channel: cfg.Channel,
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) Notify(ctx context.Context, text string) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slackgo.MsgOptionText(text, false))
	return err
}
