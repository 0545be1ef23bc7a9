// Package digest assembles the per-keyword article sections that make up one
// daily report.
package digest

import (
	"context"
	"math/rand"
	"time"

	"newsdigest/internal/article"
	"newsdigest/internal/logger"
	"newsdigest/internal/metrics"
	"newsdigest/internal/naver"
	"newsdigest/internal/newsapi"
)

// Each source contributes at most this many articles to a section.
const maxPerSource = 5

// KeywordPair drives one report section: the English term queries the
// foreign source, the Korean term the local one.
type KeywordPair struct {
	English string `yaml:"english"`
	Korean  string `yaml:"korean"`
}

// Section is the frozen article batch for one keyword pair.
type Section struct {
	Pair     KeywordPair
	Articles []article.Article
}

// Digest is the complete report, one section per configured pair in
// configuration order.
type Digest struct {
	Sections []Section
}

// ForeignSource fetches English raw items for a single calendar day.
type ForeignSource interface {
	Fetch(ctx context.Context, query string, day time.Time) ([]newsapi.Item, error)
}

// LocalSource fetches Korean raw items; date filtering happens client-side.
type LocalSource interface {
	Fetch(ctx context.Context, query string) ([]naver.Item, error)
}

// Translator converts text between languages, returning the input unchanged
// on failure.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) string
}

// Builder builds sections strictly sequentially. The random source is
// injected so tests can pin the shuffle order.
type Builder struct {
	foreign    ForeignSource
	local      LocalSource
	translator Translator
	window     article.Window
	rng        *rand.Rand
}

func NewBuilder(foreign ForeignSource, local LocalSource, translator Translator, window article.Window, rng *rand.Rand) *Builder {
	return &Builder{
		foreign:    foreign,
		local:      local,
		translator: translator,
		window:     window,
		rng:        rng,
	}
}

// BuildSection fetches both sources for one pair, normalizes and translates,
// caps each source's contribution and shuffles the combined list once.
// Source failures degrade to an empty contribution; they never abort.
func (b *Builder) BuildSection(ctx context.Context, pair KeywordPair) Section {
	english := b.englishArticles(ctx, pair.English)
	korean := b.koreanArticles(ctx, pair.Korean)

	combined := make([]article.Article, 0, len(english)+len(korean))
	combined = append(combined, english...)
	combined = append(combined, korean...)

	// The only nondeterminism in the pipeline. One shuffle, then frozen.
	b.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	return Section{Pair: pair, Articles: combined}
}

func (b *Builder) englishArticles(ctx context.Context, keyword string) []article.Article {
	raws, err := b.foreign.Fetch(ctx, keyword, b.window.Yesterday)
	if err != nil {
		logger.Warn("foreign source unavailable", "keyword", keyword, "err", err)
		metrics.Global.IncrementSourceFailures()
		return nil
	}
	metrics.Global.AddNewsFetched(len(raws))

	// Relevance order from the server; truncation, not ranking.
	if len(raws) > maxPerSource {
		raws = raws[:maxPerSource]
	}

	out := make([]article.Article, 0, len(raws))
	for _, raw := range raws {
		a := article.FromNewsAPI(raw)
		a.Title = b.translator.Translate(ctx, a.Title, "en", "ko")
		a.Description = b.translator.Translate(ctx, a.Description, "en", "ko")
		out = append(out, a)
	}
	return out
}

func (b *Builder) koreanArticles(ctx context.Context, keyword string) []article.Article {
	raws, err := b.local.Fetch(ctx, keyword)
	if err != nil {
		logger.Warn("local source unavailable", "keyword", keyword, "err", err)
		metrics.Global.IncrementSourceFailures()
		return nil
	}
	metrics.Global.AddNewsFetched(len(raws))

	out := make([]article.Article, 0, maxPerSource)
	for _, raw := range raws {
		if len(out) == maxPerSource {
			break
		}
		a, ok := article.FromNaver(raw, b.window)
		if !ok {
			metrics.Global.IncrementItemsFilteredOut()
			continue
		}
		out = append(out, a)
	}
	return out
}

// Build assembles the whole digest, one section per pair in order.
func (b *Builder) Build(ctx context.Context, pairs []KeywordPair) Digest {
	start := time.Now()
	defer func() {
		metrics.Global.RecordBuildTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	d := Digest{Sections: make([]Section, 0, len(pairs))}
	for _, pair := range pairs {
		section := b.BuildSection(ctx, pair)
		metrics.Global.IncrementSectionsBuilt()
		logger.Info("section built", "keyword", pair.English, "articles", len(section.Articles))
		d.Sections = append(d.Sections, section)
	}
	return d
}
