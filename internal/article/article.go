// Package article holds the normalized article model and the per-provider
// normalizers that turn raw API items into it.
package article

import (
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsdigest/internal/naver"
	"newsdigest/internal/newsapi"
)

// Lang marks the language an article was published in.
type Lang string

const (
	LangEnglish Lang = "en"
	LangKorean  Lang = "ko"
)

// Article is the normalized record both providers converge on. Title and
// Description are plain text; HTML escaping happens only at render time.
type Article struct {
	Title       string
	Description string
	URL         string
	// PublishedAt is "2006-01-02 15:04", or the raw provider string when the
	// timestamp could not be parsed.
	PublishedAt string
	Lang        Lang
}

var seoul = time.FixedZone("KST", 9*60*60)

// Window is the pair of Seoul calendar days the digest is built against.
// Naver items are kept when published Today; NewsAPI is queried for
// Yesterday. The two sources use different days on purpose.
type Window struct {
	Today     time.Time
	Yesterday time.Time
}

// NewWindow derives both days from one reference instant so the whole run
// shares a single notion of "now".
func NewWindow(ref time.Time) Window {
	d := ref.In(seoul)
	today := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, seoul)
	return Window{Today: today, Yesterday: today.AddDate(0, 0, -1)}
}

const displayLayout = "2006-01-02 15:04"

// Naver pubDate looks like "Mon, 02 Jan 2006 15:04:05 +0900". The offset is
// always +0900 for this API, so it is cut off before parsing.
const naverLayout = "Mon, 02 Jan 2006 15:04:05"

func parseNaverTime(pubDate string) (time.Time, bool) {
	if len(pubDate) <= 6 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(naverLayout, strings.TrimSpace(pubDate[:len(pubDate)-6]), seoul)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// cleanProviderText strips Naver's emphasis markup and unescapes entities by
// extracting the text content of the fragment.
func cleanProviderText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	return strings.TrimSpace(doc.Text())
}

// FromNewsAPI normalizes a NewsAPI item. A timestamp that fails to parse is
// kept verbatim; this path never drops an item.
func FromNewsAPI(raw newsapi.Item) Article {
	published := raw.PublishedAt
	if t, err := time.Parse(time.RFC3339, raw.PublishedAt); err == nil {
		published = t.Format(displayLayout)
	}

	return Article{
		Title:       raw.Title,
		Description: raw.Description,
		URL:         raw.URL,
		PublishedAt: published,
		Lang:        LangEnglish,
	}
}

// FromNaver normalizes a Naver item and applies the calendar filter. Items
// published outside w.Today, or whose pubDate cannot be parsed, are dropped
// (unknown date counts as not today). The second return value reports
// whether the item survived.
func FromNaver(raw naver.Item, w Window) (Article, bool) {
	t, ok := parseNaverTime(raw.PubDate)
	if !ok || !sameDay(t, w.Today) {
		return Article{}, false
	}

	return Article{
		Title:       cleanProviderText(raw.Title),
		Description: cleanProviderText(raw.Description),
		URL:         raw.OriginalLink,
		PublishedAt: t.Format(displayLayout),
		Lang:        LangKorean,
	}, true
}
