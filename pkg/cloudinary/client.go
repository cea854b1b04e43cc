package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DestroyError reports a failed remote asset deletion. The purge sweeper
// treats it as transient: the row stays soft-deleted and is retried on the
// next sweep.
type DestroyError struct {
	PublicID string
	Status   int
	Body     string
	Err      error
}

func (e *DestroyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cloudinary destroy %s: %v", e.PublicID, e.Err)
	}
	return fmt.Sprintf("cloudinary destroy %s: status=%d body=%s", e.PublicID, e.Status, e.Body)
}

func (e *DestroyError) Unwrap() error { return e.Err }

// Client calls the Cloudinary admin API to remove hosted assets
type Client struct {
	CloudName  string
	APIKey     string
	APISecret  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type destroyResponse struct {
	Result string `json:"result"`
}

// NewClient creates a new Cloudinary client instance
func NewClient(cloudName, apiKey, apiSecret string, log *zap.Logger) *Client {
	return &Client{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     log,
	}
}

// Destroy deletes the asset identified by publicID. "not found" from the
// remote side counts as success so an already-removed asset never blocks a
// purge.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	data := url.Values{}
	data.Set("public_id", publicID)
	data.Set("timestamp", timestamp)
	data.Set("api_key", c.APIKey)
	data.Set("signature", c.sign(publicID, timestamp))

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return &DestroyError{PublicID: publicID, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &DestroyError{PublicID: publicID, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return &DestroyError{PublicID: publicID, Status: resp.StatusCode, Body: string(body)}
	}

	var parsed destroyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &DestroyError{PublicID: publicID, Status: resp.StatusCode, Err: err}
	}
	if parsed.Result != "ok" && parsed.Result != "not found" {
		return &DestroyError{PublicID: publicID, Status: resp.StatusCode, Body: string(body)}
	}

	c.Logger.Info("Remote asset deleted",
		zap.String("public_id", publicID),
		zap.String("result", parsed.Result))
	return nil
}

// sign computes the Cloudinary API request signature
func (c *Client) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.APISecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
