package notify

import (
	"context"
	"fmt"
	"net/http"

	"roomdesk/pkg/client"
)

// SlackClient posts plain-text summaries to the facility's notification
// channel via chat.postMessage.
type SlackClient struct {
	http    *client.HttpClient
	botKey  string
	channel string
}

func NewSlackClient(baseURL, botKey, channel string) *SlackClient {
	return &SlackClient{
		http:    client.NewHttpClient(baseURL),
		botKey:  botKey,
		channel: channel,
	}
}

// Enabled reports whether a bot key was configured; without one the Slack
// leg of the fanout is skipped entirely.
func (s *SlackClient) Enabled() bool {
	return s.botKey != ""
}

func (s *SlackClient) PostMessage(ctx context.Context, text string) error {
	payload := map[string]string{
		"channel": s.channel,
		"text":    text,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + s.botKey,
	}

	resp, err := s.http.POSTWithHeaders(ctx, "/chat.postMessage", payload, headers)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return fmt.Errorf("failed to decode slack response: %w", err)
	}

	if !body.OK {
		if body.Error == "" {
			body.Error = "unknown error"
		}
		return fmt.Errorf("slack rejected message: %s", body.Error)
	}

	return nil
}
