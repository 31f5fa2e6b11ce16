package repository

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"

	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/auth"
	"github.com/broadinstitute/methods-repo/internal/config"
)

// Client talks to the methods repository REST API. Each Execute call
// performs exactly one request.
type Client struct {
	baseURL   string
	endpoint  config.Endpoint
	transport http.RoundTripper
	creds     auth.Resolver
	logger    *slog.Logger
}

// New creates a Client for the base URL, endpoint and TLS mode in cfg.
func New(cfg config.Config, creds auth.Resolver, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		endpoint:  cfg.Endpoint,
		transport: newTransport(cfg.Insecure),
		creds:     creds,
		logger:    logger,
	}
}

func newTransport(insecure bool) http.RoundTripper {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return base
}

// Endpoint returns the collection this client operates on.
func (c *Client) Endpoint() config.Endpoint {
	return c.endpoint
}

// Execute sends method to baseURL+path with body and returns the raw
// response body when the status equals expected. A nil body sends no
// content. Credentials are resolved for every call.
func (c *Client) Execute(ctx context.Context, method, path string, body []byte, expected int) (string, error) {
	url := c.baseURL + path

	decorate, err := c.creds.Resolve(ctx)
	if err != nil {
		if auth.IsUnavailable(err) {
			return "", err
		}
		return "", auth.Unavailable(err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", connectError(err, url, method)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending request", "method", method, "url", url, "body_bytes", len(body))

	client := &http.Client{Transport: decorate(c.transport)}
	resp, err := client.Do(req)
	if err != nil {
		if auth.IsUnavailable(err) {
			return "", err
		}
		return "", connectError(err, url, method)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", connectError(err, url, method)
	}

	c.logger.Debug("received response", "method", method, "url", url, "status", resp.StatusCode)

	if resp.StatusCode != expected {
		return "", statusError(path, body, resp.StatusCode, resp.Status, content)
	}
	return string(content), nil
}

// IsStatus reports whether err is an unexpected-status failure.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
