// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"path"
	"strconv"
	"time"

	"visa-bot/internal/common/metrics"
)

// Client is the HTTP client handed to the Bot API library. It times every
// request by API method; the method is the last path segment, which keeps
// the bot token (part of the path) out of metric labels.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.APIRequestDuration.WithLabelValues(Method(req), status).Observe(time.Since(start).Seconds())

	return resp, err
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}

// Method returns the Bot API method a request calls.
func Method(req *http.Request) string {
	if req == nil || req.URL == nil {
		return "unknown"
	}
	m := path.Base(req.URL.Path)
	if m == "/" || m == "." || m == "" {
		return "unknown"
	}
	return m
}
