package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-1.5-flash"

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

var languageNames = map[string]string{
	"en": "English",
	"ko": "Korean",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Translate translates a short news fragment between languages. It returns
// only the translated text; prompt leakage (labels, notes) is trimmed off.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	// Titles and descriptions are short; guard against pathological input.
	if utf8.RuneCountInString(text) > 2000 {
		runes := []rune(text)
		text = string(runes[:2000])
	}

	model := c.client.GenerativeModel(modelName)
	prompt := fmt.Sprintf(`Translate the following %s news text to %s.
Keep the meaning and journalistic tone. Do not translate brand or product names.
Reply with the translation only, no labels, no notes.

Text:
%s`, languageName(from), languageName(to), text)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	out := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	out = strings.TrimPrefix(out, "Translation:")
	return strings.TrimSpace(out), nil
}
