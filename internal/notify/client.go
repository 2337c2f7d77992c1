package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Notifier is implemented by Relay and by Client.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (Result, error)
}

// Client calls a remote relay endpoint over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a Client posting to url.
func NewClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{url: url, http: hc}
}

// Notify implements Notifier.
func (c *Client) Notify(ctx context.Context, n Notification) (Result, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call relay: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return Result{}, fmt.Errorf("relay returned %d: %s", resp.StatusCode, e.Error)
	}
	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode relay response: %w", err)
	}
	return out, nil
}
