// Package translate converts article text between languages on a best-effort
// basis: the free Google Translate endpoint first, Gemini as fallback when
// configured, and the original text when every service fails.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsdigest/internal/gemini"
	"newsdigest/internal/logger"
	"newsdigest/internal/metrics"
)

const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

type Translator struct {
	Endpoint   string
	HTTPClient *http.Client

	ai *gemini.Client // optional fallback, may be nil
}

func New(ai *gemini.Client) *Translator {
	return &Translator{
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		ai:         ai,
	}
}

// Translate returns text translated from one language to another. It never
// fails: a translation outage yields the input unchanged, so callers always
// get something to show.
func (t *Translator) Translate(ctx context.Context, text, from, to string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	result, err := t.googleTranslate(ctx, text, from, to)
	if err == nil && result != "" {
		metrics.Global.IncrementSuccessfulTranslations()
		return result
	}
	logger.Warn("google translate failed", "from", from, "to", to, "err", err)

	if t.ai != nil {
		result, err := t.ai.Translate(ctx, text, from, to)
		if err == nil && result != "" {
			metrics.Global.IncrementSuccessfulTranslations()
			return result
		}
		logger.Warn("gemini translate failed", "from", from, "to", to, "err", err)
	}

	metrics.Global.IncrementFailedTranslations()
	return text
}

// googleTranslate calls the public gtx endpoint.
func (t *Translator) googleTranslate(ctx context.Context, text, from, to string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", from)
	params.Set("tl", to)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close translate response body", "err", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse digs the translated segments out of the endpoint's
// nested-array payload and joins them.
func parseGoogleResponse(body []byte) (string, error) {
	var response []interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response) == 0 {
		return "", errors.New("empty translate response")
	}

	segments, ok := response[0].([]interface{})
	if !ok {
		return "", errors.New("unexpected translate response format")
	}

	var result strings.Builder
	for _, segment := range segments {
		parts, ok := segment.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if translated, ok := parts[0].(string); ok {
			result.WriteString(translated)
		}
	}

	return result.String(), nil
}
