// Package app wires the pipeline together for one run: build the digest,
// render it, deliver it. Everything upstream of delivery degrades softly;
// only a mail failure aborts the run.
package app

import (
	"context"
	"fmt"
	"math/rand"

	"newsdigest/internal/article"
	"newsdigest/internal/config"
	"newsdigest/internal/digest"
	"newsdigest/internal/gemini"
	"newsdigest/internal/logger"
	"newsdigest/internal/mail"
	"newsdigest/internal/metrics"
	"newsdigest/internal/naver"
	"newsdigest/internal/newsapi"
	"newsdigest/internal/render"
	"newsdigest/internal/translate"
)

// Run executes one digest build-and-send cycle.
func Run(ctx context.Context, cfg *config.Config) error {
	var ai *gemini.Client
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			// Translation still works through the free endpoint.
			logger.Warn("gemini unavailable, continuing without fallback", "err", err)
		} else {
			ai = client
			defer ai.Close()
		}
	}

	window := article.NewWindow(cfg.ReferenceTime)
	logger.Info("building digest",
		"keywords", len(cfg.Keywords),
		"today", window.Today.Format("2006-01-02"),
		"yesterday", window.Yesterday.Format("2006-01-02"),
	)

	builder := digest.NewBuilder(
		newsapi.NewClient(cfg.NewsAPIKey, cfg.RequestTimeout),
		naver.NewClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.RequestTimeout),
		translate.New(ai),
		window,
		rand.New(rand.NewSource(cfg.Seed)),
	)

	d := builder.Build(ctx, cfg.Keywords)

	html, err := render.Render(d)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("render: %w", err)
	}

	sender := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := sender.Send(cfg.Subject, html, cfg.Sender, cfg.Recipients); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("deliver: %w", err)
	}

	logger.Info("digest delivered", "sections", len(d.Sections), "recipients", len(cfg.Recipients))
	return nil
}
