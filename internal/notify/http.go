package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// HTTPSender posts messages to a third-party delivery API as JSON. The same
// sender works for email and WhatsApp gateways; only the URL differs.
type HTTPSender struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPSender(url, apiKey string) *HTTPSender {
	return &HTTPSender{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// apiRequest is the JSON body sent to the delivery API.
type apiRequest struct {
	ID        string `json:"id"`
	Channel   string `json:"channel"`
	To        string `json:"to"`
	Subject   string `json:"subject,omitempty"`
	Text      string `json:"text"`
	HTML      string `json:"html,omitempty"`
	Reference string `json:"reference"`
}

type apiResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(apiRequest{
		ID:        msg.ID,
		Channel:   string(msg.Channel),
		To:        msg.To,
		Subject:   msg.Subject,
		Text:      msg.Text,
		HTML:      msg.HTML,
		Reference: msg.ReferenceNumber,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", msg.ID)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delivery api returned %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err == nil && len(apiResp.Errors) > 0 {
		return fmt.Errorf("delivery api error %s: %s", apiResp.Errors[0].Code, apiResp.Errors[0].Detail)
	}
	return nil
}
