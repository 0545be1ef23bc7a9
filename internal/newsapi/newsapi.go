// Package newsapi queries the NewsAPI "everything" endpoint for English
// technology news published on a single calendar day.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsdigest/internal/logger"
)

const DefaultBaseURL = "https://newsapi.org/v2/everything"

// Item is one raw article as NewsAPI returns it.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type searchResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []Item `json:"articles"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns up to 10 English articles for the query, relevance-sorted,
// restricted server-side to the given calendar day.
func (c *Client) Fetch(ctx context.Context, query string, day time.Time) ([]Item, error) {
	date := day.Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", "10")
	params.Set("sortBy", "relevancy")
	params.Set("language", "en")
	params.Set("from", date)
	params.Set("to", date)
	params.Set("apiKey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close newsapi response body", "err", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("newsapi status %d: %s", resp.StatusCode, string(body))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	logger.Debug("newsapi fetch ok", "query", query, "day", date, "items", len(decoded.Articles))
	return decoded.Articles, nil
}
