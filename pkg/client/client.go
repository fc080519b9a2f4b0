// Package client is a Go consumer of the catalog API. It mirrors the
// frontend's data access pattern: fetch the full collection once, then
// filter and resolve relations in memory.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a catalog service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token used for write operations.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL (e.g. "http://localhost:3001").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

// APIError is a non-2xx or unsuccessful envelope response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// FetchAll retrieves the full catalog in one request.
func (c *Client) FetchAll(ctx context.Context) ([]UseCase, error) {
	var useCases []UseCase
	if err := c.do(ctx, http.MethodGet, "/api/use-cases", nil, &useCases); err != nil {
		return nil, err
	}
	return useCases, nil
}

// Get retrieves a single record.
func (c *Client) Get(ctx context.Context, id string) (*UseCase, error) {
	var uc UseCase
	if err := c.do(ctx, http.MethodGet, "/api/use-cases/"+id, nil, &uc); err != nil {
		return nil, err
	}
	return &uc, nil
}

// Create registers a new use case. Requires a token with the editor or
// admin role.
func (c *Client) Create(ctx context.Context, payload any) (*UseCase, error) {
	var uc UseCase
	if err := c.do(ctx, http.MethodPost, "/api/use-cases", payload, &uc); err != nil {
		return nil, err
	}
	return &uc, nil
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id string, payload any) (*UseCase, error) {
	var uc UseCase
	if err := c.do(ctx, http.MethodPut, "/api/use-cases/"+id, payload, &uc); err != nil {
		return nil, err
	}
	return &uc, nil
}

// Delete removes a record. Requires an admin token.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/use-cases/"+id, nil, nil)
}

type loginData struct {
	Token string `json:"token"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var data loginData
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &data); err != nil {
		return err
	}
	c.token = data.Token
	return nil
}
