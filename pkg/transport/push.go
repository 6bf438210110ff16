package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"riskbot/pkg/notify"
	"riskbot/pkg/workflow"
)

type pushPayload struct {
	UserID  int64             `json:"user_id"`
	Text    string            `json:"text"`
	Options []workflow.Option `json:"options,omitempty"`
}

type pushClient struct {
	endpoint string
	token    string
	httpc    *http.Client
}

// NewPush returns a Sender that POSTs messages to an external delivery
// endpoint. Used by the daily reminder.
func NewPush(endpoint, token string) notify.Sender {
	return &pushClient{
		endpoint: endpoint,
		token:    token,
		httpc:    &http.Client{Timeout: 25 * time.Second},
	}
}

func (c *pushClient) Send(userID int64, text string, options []workflow.Option) error {
	body, err := json.Marshal(pushPayload{UserID: userID, Text: text, Options: options})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push: status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

type mockSender struct{}

// NewMockSender logs deliveries instead of sending them. Used when no
// push endpoint is configured.
func NewMockSender() notify.Sender {
	return mockSender{}
}

func (mockSender) Send(userID int64, text string, options []workflow.Option) error {
	log.Printf("[push] (mock) to %d: %.60q (%d options)", userID, text, len(options))
	return nil
}
