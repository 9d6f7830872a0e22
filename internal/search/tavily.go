package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"inmobot/internal/config"
	"inmobot/internal/model"
)

// ErrMissingAPIKey is returned when no search provider key is configured
var ErrMissingAPIKey = errors.New("search provider API key is not configured")

// Provider runs a raw web search
type Provider interface {
	Search(ctx context.Context, query string) ([]model.Listing, error)
}

// TavilyClient calls the Tavily search API
type TavilyClient struct {
	config     *config.SearchConfig
	httpClient *http.Client
}

// NewTavilyClient creates a new Tavily client
func NewTavilyClient(cfg *config.SearchConfig) *TavilyClient {
	return &TavilyClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// TavilyRequest is the body of POST /search
type TavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

// TavilyResponse is the subset of the search response we read
type TavilyResponse struct {
	Query   string `json:"query"`
	Results []struct {
		URL     string  `json:"url"`
		Title   string  `json:"title"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search performs a search request
func (c *TavilyClient) Search(ctx context.Context, query string) ([]model.Listing, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqBody, err := json.Marshal(TavilyRequest{
		APIKey:         c.config.APIKey,
		Query:          query,
		SearchDepth:    c.config.Depth,
		MaxResults:     c.config.MaxResults,
		IncludeDomains: c.config.Domains,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var result TavilyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	listings := make([]model.Listing, 0, len(result.Results))
	for _, r := range result.Results {
		listings = append(listings, model.Listing{
			URL:     r.URL,
			Title:   r.Title,
			Content: r.Content,
			Score:   r.Score,
		})
	}
	return listings, nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
