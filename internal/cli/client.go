package cli

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
)

// ErrAdminCodeRequired is returned by admin calls made without a code
var ErrAdminCodeRequired = errors.New("admin code required (--admin-code or BADAN_ADMIN_CODE)")

// Client is an HTTP client for the registration server
type Client struct {
	baseURL    string
	adminCode  string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, adminCode string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		adminCode: adminCode,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// RequestError is returned for any response with status >= 400
type RequestError struct {
	Status int
	API    *APIError
	Body   string
}

func (e *RequestError) Error() string {
	if e.API != nil {
		return e.API.String()
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// Do performs a JSON request, decoding a successful response into result
func (c *Client) Do(ctx context.Context, method, path string, admin bool, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, admin, bodyReader, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, false, nil, result)
}

// GetAdmin performs a GET request carrying the admin code
func (c *Client) GetAdmin(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, true, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, false, body, result)
}

// Download copies an admin-gated response body to w as it arrives
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, http.MethodGet, path, true, nil, "text/csv")
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read response: %w", err)
	}
	return n, nil
}

// send performs the request and turns error statuses into a *RequestError
func (c *Client) send(ctx context.Context, method, path string, admin bool, body io.Reader, accept string) (*http.Response, error) {
	if admin && c.adminCode == "" {
		return nil, ErrAdminCodeRequired
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)
	if admin {
		req.Header.Set("X-Admin-Code", c.adminCode)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

		reqErr := &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			reqErr.API = &errResp.Error
		}
		if resp.StatusCode == http.StatusUnauthorized && reqErr.API == nil {
			reqErr.Body = "invalid admin code"
		}
		return nil, reqErr
	}

	return resp, nil
}
