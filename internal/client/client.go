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

	"letter_system/internal/model"
)

// Client is a typed JSON client for the letter system API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError carries the status code and error string of a failed call
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Identity is the payload returned by register and login
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request and decodes the response into out (if non-nil).
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload messageResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates a user account
func (c *Client) Register(ctx context.Context, username, password, role string) (*Identity, error) {
	var id Identity
	err := c.do(ctx, http.MethodPost, "/api/register", credentials{Username: username, Password: password, Role: role}, &id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Login authenticates and returns the stored identity. The caller
// routes on Role and should treat anything outside admin/user as an
// error.
func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	var id Identity
	err := c.do(ctx, http.MethodPost, "/api/login", credentials{Username: username, Password: password}, &id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ListLetters fetches the full letter list, most recent first
func (c *Client) ListLetters(ctx context.Context) ([]model.Letter, error) {
	var letters []model.Letter
	if err := c.do(ctx, http.MethodGet, "/api/letters", nil, &letters); err != nil {
		return nil, err
	}
	return letters, nil
}

// GetLetter fetches a single letter by id
func (c *Client) GetLetter(ctx context.Context, id int64) (*model.Letter, error) {
	var letter model.Letter
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/letters/%d", id), nil, &letter); err != nil {
		return nil, err
	}
	return &letter, nil
}

// CreateLetter records a new letter and returns it with its assigned id
func (c *Client) CreateLetter(ctx context.Context, req model.CreateLetterRequest) (*model.Letter, error) {
	var letter model.Letter
	if err := c.do(ctx, http.MethodPost, "/api/letters", req, &letter); err != nil {
		return nil, err
	}
	return &letter, nil
}

// UpdateLetter fully replaces a letter's mutable fields
func (c *Client) UpdateLetter(ctx context.Context, id int64, req model.UpdateLetterRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/letters/%d", id), req, nil)
}

// DeleteLetter removes a letter
func (c *Client) DeleteLetter(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/letters/%d", id), nil, nil)
}
