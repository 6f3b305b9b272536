package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Deliverer sends a payload to a webhook endpoint and returns the created
// message id.
type Deliverer interface {
	Send(ctx context.Context, webhookURL string, payload *WebhookPayload) (string, error)
}

type WebhookClient struct {
	httpClient *resty.Client
}

func NewWebhookClient() *WebhookClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookClient{
		httpClient: client,
	}
}

type webhookMessage struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// Send posts the payload with wait=true so Discord returns the created
// message. Non-2xx responses and timeouts are delivery failures.
func (s *WebhookClient) Send(ctx context.Context, webhookURL string, payload *WebhookPayload) (string, error) {
	var message webhookMessage

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("wait", "true").
		SetBody(payload).
		SetResult(&message).
		Post(webhookURL)
	if err != nil {
		return "", fmt.Errorf("webhook request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return message.ID, nil
}
