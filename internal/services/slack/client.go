package slack

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"leagueops/internal/logger"

	"github.com/goccy/go-json"
)

// Message is an incoming-webhook payload with Block Kit content.
type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Block is a single Block Kit block. Only the shapes this service emits are
// modeled; everything else Slack supports is out of scope.
type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Fields   []Text    `json:"fields,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Element is an interactive element, here always a button.
type Element struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Style    string `json:"style,omitempty"`
	ActionID string `json:"action_id,omitempty"`
	Value    string `json:"value,omitempty"`
}

type Client struct {
	webhookURL string
	channel    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(webhookURL, channel string, logger *logger.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// PostMessage delivers a message through the incoming webhook.
func (c *Client) PostMessage(msg *Message) error {
	if c.webhookURL == "" {
		return fmt.Errorf("no slack webhook URL configured")
	}
	if msg.Channel == "" {
		msg.Channel = c.channel
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequest("POST", c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack request failed: %d - %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Posted slack message to %s", msg.Channel)
	return nil
}
