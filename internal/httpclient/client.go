package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"usermgmt/internal/logging"
)

// ErrEmptyBody is returned when a response body was expected but none came.
var ErrEmptyBody = errors.New("empty response body")

// HTTPError represents a non-2xx response with the body captured for debugging.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  logging.Logger
}

// New creates an instrumented HTTP client for talking to an external service.
// baseURL is the resource root, e.g. "https://users-api.internal/users";
// request paths are joined below it.
func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse baseURL: %q is not absolute", baseURL)
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Client{
		baseURL: u,
		client:  httpClient,
		logger:  logger,
	}, nil
}

// buildURL joins the base URL with a relative path and optional query parameters.
// An empty path addresses the base URL itself.
func (c *Client) buildURL(path string, query url.Values) string {
	u := *c.baseURL
	if p := strings.Trim(path, "/"); p != "" {
		u = *c.baseURL.JoinPath(p)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// GetJSON performs a GET and decodes the JSON response into out.
// If the status code >= 400, it returns *HTTPError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.buildURL(path, query), nil, out)
}

// PostJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, payload any, out any) error {
	return c.do(ctx, http.MethodPost, c.buildURL(path, nil), payload, out)
}

// PutJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) PutJSON(ctx context.Context, path string, payload any, out any) error {
	return c.do(ctx, http.MethodPut, c.buildURL(path, nil), payload, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.buildURL(path, nil), nil, nil)
}

func (c *Client) do(ctx context.Context, method, urlStr string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("external http error",
			"method", method,
			"status", resp.StatusCode,
			"url", urlStr,
		)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return fmt.Errorf("%s %s: http %d: %w", method, urlStr, resp.StatusCode, ErrEmptyBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal body: %w", err)
	}

	return nil
}
