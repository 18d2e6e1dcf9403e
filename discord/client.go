package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://discord.com/api/v10"

// threadTypePublic is the Discord channel type for public threads.
const threadTypePublic = 11

// Client is a minimal Discord REST client scoped to what the pipeline needs:
// verifying the destination channel, opening a thread, and sending a message.
// One Client holds one bot session for the whole run.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client authenticated with the given bot token.
func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Channel is the subset of the Discord channel object the bot reads.
type Channel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    int    `json:"type"`
	GuildID string `json:"guild_id"`
}

type startThreadRequest struct {
	Name                string `json:"name"`
	AutoArchiveDuration int    `json:"auto_archive_duration"`
	Type                int    `json:"type"`
}

type createMessageRequest struct {
	Embeds []Embed `json:"embeds"`
}

// Message is the subset of the Discord message object the bot reads back.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// GetChannel fetches the destination channel, confirming the bot can see it.
func (c *Client) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	var ch Channel
	if err := c.doRequest(ctx, "GET", "/channels/"+channelID, nil, &ch); err != nil {
		return nil, fmt.Errorf("get channel %s: %w", channelID, err)
	}
	return &ch, nil
}

// StartThread creates a public thread in the channel. Threads auto-archive
// after an hour of inactivity.
func (c *Client) StartThread(ctx context.Context, channelID, name string) (*Channel, error) {
	req := startThreadRequest{
		Name:                name,
		AutoArchiveDuration: 60,
		Type:                threadTypePublic,
	}
	var thread Channel
	if err := c.doRequest(ctx, "POST", "/channels/"+channelID+"/threads", req, &thread); err != nil {
		return nil, fmt.Errorf("start thread in %s: %w", channelID, err)
	}
	return &thread, nil
}

// SendEmbed posts a single embed message into the channel or thread.
func (c *Client) SendEmbed(ctx context.Context, channelID string, embed Embed) (*Message, error) {
	req := createMessageRequest{Embeds: []Embed{embed}}
	var msg Message
	if err := c.doRequest(ctx, "POST", "/channels/"+channelID+"/messages", req, &msg); err != nil {
		return nil, fmt.Errorf("send embed to %s: %w", channelID, err)
	}
	return &msg, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("discord API error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("discord api: unexpected status %s", resp.Status)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
