package backend

// Package backend is the HTTP client for the upstream commerce API. It is
// the only place that knows the API's wire shapes and status conventions;
// everything it returns is a domain type or a domain error.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// ClientConfig holds configuration for the commerce API client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // overall per-request timeout, default 10s

	// HTTPClient is optional; a default client is built from Timeout.
	HTTPClient *http.Client
}

// Client issues requests against the commerce API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a commerce API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpClient,
	}, nil
}

// requestParams groups the inputs for one API call.
type requestParams struct {
	Method string
	Path   string
	Token  string // bearer token, empty for anonymous calls
	Body   any    // JSON-encoded when non-nil
}

// apiError is the commerce API's error envelope.
type apiError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// do performs the request and returns the raw response body for 2xx
// statuses. Non-2xx statuses and transport failures are mapped to the
// domain error taxonomy before returning.
func (c *Client) do(ctx context.Context, p requestParams) ([]byte, error) {
	var reqBody io.Reader
	if p.Body != nil {
		data, err := json.Marshal(p.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, c.baseURL+p.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// DNS/connect/timeout failures all surface the same way: the
		// backend could not be reached and no state was mutated.
		return nil, &domainauth.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainauth.NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, c.mapStatus(resp.StatusCode, body, p.Token)
}

// mapStatus converts a non-2xx response into a domain error. A 401 while a
// token is held always means the session is invalid, regardless of which
// call triggered it.
func (c *Client) mapStatus(status int, body []byte, token string) error {
	if status == http.StatusUnauthorized && token != "" {
		return domainauth.ErrSessionExpired
	}

	var envelope apiError
	_ = json.Unmarshal(body, &envelope)

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return &domainauth.ValidationError{Message: envelope.Message, Fields: envelope.Errors}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domainauth.AuthenticationError{Message: envelope.Message}
	}

	if envelope.Message != "" {
		return fmt.Errorf("backend status %d: %s", status, envelope.Message)
	}
	return fmt.Errorf("backend status %d", status)
}

// decodeInto parses a 2xx body into dst.
func decodeInto(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
