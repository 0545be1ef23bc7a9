// Package config assembles the explicit configuration object the rest of the
// program runs from: credentials and mail settings come from the
// environment, keyword pairs and recipients from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"newsdigest/internal/digest"
)

type Config struct {
	// News source credentials
	NewsAPIKey        string
	NaverClientID     string
	NaverClientSecret string

	// Optional Gemini fallback for translation
	GeminiAPIKey string

	// SMTP settings
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	// Mail content
	Sender     string
	Recipients []string
	Subject    string

	// Report sections, in output order
	Keywords []digest.KeywordPair

	// ReferenceTime anchors the today/yesterday windows; defaults to the
	// wall clock but can be pinned via REFERENCE_TIME for reproducible runs.
	ReferenceTime time.Time

	// Seed for the per-section shuffle; derived from ReferenceTime unless
	// DIGEST_SEED pins it.
	Seed int64

	RequestTimeout time.Duration
	Debug          bool
}

// keywordsFile is the YAML layout of the keywords config file.
type keywordsFile struct {
	Keywords   []digest.KeywordPair `yaml:"keywords"`
	Recipients []string             `yaml:"recipients"`
}

// defaultKeywords is used when no keywords file exists.
var defaultKeywords = []digest.KeywordPair{
	{English: "mobile device", Korean: "이동통신 단말기"},
	{English: "mobile modem chipset", Korean: "단말 모뎀 칩셋"},
	{English: "on-device AI", Korean: "온디바이스 AI"},
	{English: "on-device security", Korean: "온디바이스 보안"},
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SMTPHost:       "smtp.gmail.com",
		SMTPPort:       587,
		Subject:        "데일리 뉴스 대시보드",
		Keywords:       defaultKeywords,
		RequestTimeout: 30 * time.Second,
	}

	// Load from environment
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	cfg.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	if subject := os.Getenv("MAIL_SUBJECT"); subject != "" {
		cfg.Subject = subject
	}

	path := getEnvOrDefault("KEYWORDS_CONFIG_PATH", "configs/keywords.yaml")
	if err := cfg.loadKeywordsFile(path); err != nil {
		return nil, err
	}

	if recipients := os.Getenv("MAIL_RECIPIENTS"); recipients != "" {
		cfg.Recipients = splitList(recipients)
	}

	// Sender defaults to the SMTP account
	cfg.Sender = getEnvOrDefault("MAIL_SENDER", cfg.SMTPUser)

	cfg.ReferenceTime = time.Now()
	if ref := os.Getenv("REFERENCE_TIME"); ref != "" {
		t, err := time.Parse(time.RFC3339, ref)
		if err != nil {
			return nil, fmt.Errorf("REFERENCE_TIME must be RFC3339: %w", err)
		}
		cfg.ReferenceTime = t
	}

	cfg.Seed = cfg.ReferenceTime.UnixNano()
	if seed := os.Getenv("DIGEST_SEED"); seed != "" {
		val, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DIGEST_SEED must be an integer: %w", err)
		}
		cfg.Seed = val
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// loadKeywordsFile reads keyword pairs and recipients from the YAML file.
// A missing file is not an error; the compiled-in keyword list stays.
func (c *Config) loadKeywordsFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open keywords config: %w", err)
	}
	defer f.Close()

	var parsed keywordsFile
	if err := yaml.NewDecoder(f).Decode(&parsed); err != nil {
		return fmt.Errorf("parse keywords config %s: %w", path, err)
	}

	if len(parsed.Keywords) > 0 {
		c.Keywords = parsed.Keywords
	}
	if len(parsed.Recipients) > 0 {
		c.Recipients = parsed.Recipients
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWSAPI_KEY is required")
	}
	if c.NaverClientID == "" {
		return fmt.Errorf("NAVER_CLIENT_ID is required")
	}
	if c.NaverClientSecret == "" {
		return fmt.Errorf("NAVER_CLIENT_SECRET is required")
	}
	if c.SMTPUser == "" {
		return fmt.Errorf("SMTP_USER is required")
	}
	if c.SMTPPassword == "" {
		return fmt.Errorf("SMTP_PASSWORD is required")
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword pair is required")
	}
	for i, pair := range c.Keywords {
		if pair.English == "" || pair.Korean == "" {
			return fmt.Errorf("keyword pair %d must have both english and korean terms", i)
		}
	}
	return nil
}
