package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Session is the subset of a checkout session this service cares about:
// the amount and whether payment completed. Capture itself is handled by
// the external payment processor.
type Session struct {
	ID            string `json:"id"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// Client looks up checkout sessions from the payment processor
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new payments client instance
func NewClient(baseURL, secretKey string, log *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     log,
	}
}

// GetSession fetches a checkout session by id
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	endpoint := fmt.Sprintf("%s/checkout/sessions/%s", c.BaseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read session response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn("Payment session lookup returned error",
			zap.String("session_id", sessionID),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("session lookup status %d: %s", resp.StatusCode, string(body))
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	return &session, nil
}
