package discord

import (
	"context"
	"fmt"

	"github.com/RavensCloud/trendbot/tiktok"
	"go.uber.org/zap"
)

// Publisher posts trending profiles into one destination channel, each in
// its own thread. The channel is resolved once on the first publish and
// cached for the remainder of the run.
type Publisher struct {
	client    *Client
	channelID string
	logger    *zap.Logger
	verified  bool
}

// NewPublisher creates a Publisher bound to the destination channel.
func NewPublisher(client *Client, channelID string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:    client,
		channelID: channelID,
		logger:    logger,
	}
}

// Publish creates a thread named after the profile and sends the profile
// embed into it. Any failure (missing channel, missing permissions, API
// error) is returned for the caller to record; it never panics.
func (p *Publisher) Publish(ctx context.Context, profile tiktok.Profile) error {
	if !p.verified {
		if _, err := p.client.GetChannel(ctx, p.channelID); err != nil {
			return fmt.Errorf("verify channel: %w", err)
		}
		p.verified = true
	}

	thread, err := p.client.StartThread(ctx, p.channelID, ThreadName(profile))
	if err != nil {
		return err
	}

	if _, err := p.client.SendEmbed(ctx, thread.ID, ProfileEmbed(profile)); err != nil {
		return err
	}

	p.logger.Info("posted profile",
		zap.String("username", profile.Username),
		zap.String("thread", thread.Name))
	return nil
}
