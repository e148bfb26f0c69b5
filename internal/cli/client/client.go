package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	hclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"

	"github.com/AlecGordonToTheMaxx/albumctl/pkg/logger"
)

// APIClient wraps a Hertz client for HTTP communication with the album API
// server.
type APIClient struct {
	client *hclient.Client
	server string
	log    *slog.Logger
}

// NewAPIClient creates a new API client for the given server origin.
func NewAPIClient(server string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	// Use standard library dialer for streaming support
	// netpoll doesn't support streaming well, causing panics
	c, err := hclient.NewClient(
		hclient.WithDialTimeout(10*time.Second),
		hclient.WithMaxIdleConnDuration(60*time.Second),
		hclient.WithResponseBodyStream(true),
		hclient.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		log:    logger.New(),
	}, nil
}

// normalizeServerURL normalizes a server URL to ensure it has a scheme and no
// trailing slash.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// doJSON performs a JSON request against the API server. A nil reqBody sends
// no body; a nil out discards the response body. Reads are sent with
// Cache-Control: no-cache so a list load after a mutation is never served
// stale.
func (c *APIClient) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + path)
	if method == "GET" {
		req.Header.Set("Cache-Control", "no-cache")
	}
	if reqBody != nil {
		bodyBytes, err := sonic.Marshal(reqBody)
		if err != nil {
			return wrapLocalError(fmt.Errorf("failed to marshal request: %w", err))
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}

	c.log.Debug("api request", "method", method, "path", path)

	if err := c.client.Do(ctx, req, resp); err != nil {
		c.log.Debug("api request failed", "method", method, "path", path, "error", err)
		return wrapLocalError(fmt.Errorf("request failed: %w", err))
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode >= 300 {
		c.log.Debug("api status error", "method", method, "path", path, "status", statusCode)
		return newStatusError(statusCode, resp.Body())
	}

	if out != nil {
		if err := sonic.Unmarshal(resp.Body(), out); err != nil {
			return wrapLocalError(fmt.Errorf("failed to unmarshal response: %w", err))
		}
	}

	return nil
}
