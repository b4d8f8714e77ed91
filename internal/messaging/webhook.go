// Package messaging implements the outbound delivery transport.
//
// The dispatcher hands one recipient at a time to this client, which posts the
// message to the downstream delivery endpoint and returns the transport's
// message id. The client is deliberately dumb: no retries, no queueing. Retry
// policy belongs to the caller, which records a per-recipient failure row and
// moves on.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HeaderAuthKey authenticates this service to the delivery endpoint.
const HeaderAuthKey = "X-Auth-Key"

// sendPayload is the JSON body posted to the delivery endpoint.
type sendPayload struct {
	OrganizationID string `json:"organization_id"`
	RecipientID    string `json:"recipient_id"`
	Subject        string `json:"subject,omitempty"`
	Content        string `json:"content"`
}

// sendResponse is the delivery endpoint's reply. MessageID identifies the
// delivered message in the transport and keys later delivery events.
type sendResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}

// WebhookClient sends direct messages over HTTP to a delivery endpoint.
// It implements the dispatcher's Messenger contract.
type WebhookClient struct {
	URL     string
	AuthKey string
	// HTTPClient is used for all calls. A default client with Timeout is
	// built lazily when nil.
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewWebhookClient constructs a delivery client with a dedicated HTTP client.
func NewWebhookClient(url, authKey string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		URL:        url,
		AuthKey:    authKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Timeout:    timeout,
	}
}

// SendDirectMessage posts one message and returns the transport message id.
// Any non-2xx status, transport error, or undecodable body is an error; the
// caller treats all of them as a per-recipient failure.
func (w *WebhookClient) SendDirectMessage(ctx context.Context, organizationID, recipientID, subject, content string) (string, error) {
	body, err := json.Marshal(sendPayload{
		OrganizationID: organizationID,
		RecipientID:    recipientID,
		Subject:        subject,
		Content:        content,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.AuthKey != "" {
		req.Header.Set(HeaderAuthKey, w.AuthKey)
	}

	resp, err := w.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("deliver message: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("delivery endpoint returned status %d", resp.StatusCode)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode delivery response: %w", err)
	}
	if out.MessageID == "" {
		return "", fmt.Errorf("delivery response missing message_id")
	}
	return out.MessageID, nil
}

func (w *WebhookClient) client() *http.Client {
	if w.HTTPClient != nil {
		return w.HTTPClient
	}
	return &http.Client{Timeout: w.Timeout}
}
