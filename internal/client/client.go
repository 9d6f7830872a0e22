package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inmobot/internal/model"
)

// APIError is a non-2xx reply from the assistant API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the assistant HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL. A zero timeout waits
// indefinitely.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat sends the conversation and returns the assistant's reply
func (c *Client) Chat(ctx context.Context, messages []model.ChatMessage) (string, error) {
	var resp model.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", model.ChatRequest{Messages: messages}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// UpsertProfile stores a profile snapshot and returns its id
func (c *Client) UpsertProfile(ctx context.Context, req model.ProfileUpsertRequest) (string, error) {
	var resp model.ProfileUpsertResponse
	if err := c.do(ctx, http.MethodPost, "/profile/upsert", req, &resp); err != nil {
		return "", err
	}
	return resp.ProfileID, nil
}

// Rank asks for suggestions for a stored profile
func (c *Client) Rank(ctx context.Context, req model.RankRequest) (*model.RankResponse, error) {
	var resp model.RankResponse
	if err := c.do(ctx, http.MethodPost, "/rank", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddToWishlist saves a property URL for a user
func (c *Client) AddToWishlist(ctx context.Context, userID, propertyURL string) error {
	return c.do(ctx, http.MethodPost, "/wishlist/add", model.WishlistAddRequest{
		UserID:      userID,
		PropertyURL: propertyURL,
	}, nil)
}

// Wishlist lists a user's saved properties
func (c *Client) Wishlist(ctx context.Context, userID string) ([]model.Suggestion, error) {
	var resp struct {
		Wishlist []model.Suggestion `json:"wishlist"`
	}
	if err := c.do(ctx, http.MethodGet, "/wishlist/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Wishlist, nil
}

// Health returns the raw /health document
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp model.ErrorResponse
		_ = json.Unmarshal(raw, &errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
