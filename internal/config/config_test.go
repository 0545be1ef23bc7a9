package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("NEWSAPI_KEY", "na-key")
	t.Setenv("NAVER_CLIENT_ID", "nv-id")
	t.Setenv("NAVER_CLIENT_SECRET", "nv-secret")
	t.Setenv("SMTP_USER", "sender@example.com")
	t.Setenv("SMTP_PASSWORD", "smtp-pass")
	t.Setenv("MAIL_RECIPIENTS", "a@example.com, b@example.com")
	// Point at a nonexistent file so the compiled-in keywords are used.
	t.Setenv("KEYWORDS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "sender@example.com", cfg.Sender)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients)
	require.Len(t, cfg.Keywords, 4)
	assert.Equal(t, "mobile device", cfg.Keywords[0].English)
	assert.Equal(t, "이동통신 단말기", cfg.Keywords[0].Korean)
}

func TestLoadKeywordsFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := `keywords:
  - english: quantum modem
    korean: 양자 모뎀
recipients:
  - file@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("KEYWORDS_CONFIG_PATH", path)
	t.Setenv("MAIL_RECIPIENTS", "") // let the file supply recipients

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Keywords, 1)
	assert.Equal(t, "quantum modem", cfg.Keywords[0].English)
	assert.Equal(t, "양자 모뎀", cfg.Keywords[0].Korean)
	assert.Equal(t, []string{"file@example.com"}, cfg.Recipients)
}

func TestLoadReferenceTimeAndSeed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFERENCE_TIME", "2026-08-31T20:00:00Z")
	t.Setenv("DIGEST_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31T20:00:00Z", cfg.ReferenceTime.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadRejectsBadReferenceTime(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFERENCE_TIME", "yesterday")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEWSAPI_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEWSAPI_KEY")
}

func TestValidateRequiresRecipients(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAIL_RECIPIENTS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestValidateRejectsHalfEmptyPair(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := `keywords:
  - english: lonely term
    korean: ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("KEYWORDS_CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword pair")
}
