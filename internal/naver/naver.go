// Package naver queries the Naver open API news search for Korean news.
// The API cannot filter by date, so the client over-fetches newest-first and
// leaves calendar filtering to the normalizer.
package naver

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

const DefaultBaseURL = "https://openapi.naver.com/v1/search/news.json"

// Item is one raw article as the Naver news search returns it. Title and
// Description carry provider markup (<b> emphasis, entity-escaped quotes).
type Item struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type searchResponse struct {
	Total   int    `json:"total"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

type Client struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	HTTPClient   *http.Client
}

func NewClient(clientID, clientSecret string, timeout time.Duration) *Client {
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      DefaultBaseURL,
		HTTPClient:   &http.Client{Timeout: timeout},
	}
}

// Fetch returns up to 20 articles for the query, newest first.
func (c *Client) Fetch(ctx context.Context, query string) ([]Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", "20")
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build naver request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.ClientSecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close naver response body", "err", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("naver status %d: %s", resp.StatusCode, string(body))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode naver response: %w", err)
	}

	logger.Debug("naver fetch ok", "query", query, "items", len(decoded.Items))
	return decoded.Items, nil
}
