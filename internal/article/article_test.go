package article

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdigest/internal/naver"
	"newsdigest/internal/newsapi"
)

// 2026-08-31 20:00 UTC is already 2026-09-01 in Seoul.
var ref = time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)

func TestNewWindowUsesSeoulCalendar(t *testing.T) {
	w := NewWindow(ref)

	assert.Equal(t, "2026-09-01", w.Today.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", w.Yesterday.Format("2006-01-02"))
}

func TestNewWindowBeforeMidnightSeoul(t *testing.T) {
	// 2026-08-31 10:00 UTC is 19:00 the same day in Seoul.
	w := NewWindow(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-08-31", w.Today.Format("2006-01-02"))
	assert.Equal(t, "2026-08-30", w.Yesterday.Format("2006-01-02"))
}

func TestFromNewsAPIFormatsTimestamp(t *testing.T) {
	a := FromNewsAPI(newsapi.Item{
		Title:       "Chipmakers race to on-device AI",
		Description: "A new modem generation ships this fall.",
		URL:         "https://example.com/a",
		PublishedAt: "2026-08-31T09:30:00Z",
	})

	assert.Equal(t, "2026-08-31 09:30", a.PublishedAt)
	assert.Equal(t, LangEnglish, a.Lang)
	assert.Equal(t, "https://example.com/a", a.URL)
}

func TestFromNewsAPIKeepsUnparseableTimestamp(t *testing.T) {
	a := FromNewsAPI(newsapi.Item{
		Title:       "Still worth showing",
		PublishedAt: "not-a-timestamp",
	})

	// Never dropped, raw string retained verbatim.
	assert.Equal(t, "not-a-timestamp", a.PublishedAt)
	assert.Equal(t, "Still worth showing", a.Title)
}

func TestFromNaverStripsMarkupAndEntities(t *testing.T) {
	w := NewWindow(ref)

	a, ok := FromNaver(naver.Item{
		Title:        "&quot;갤럭시&quot; <b>최신</b> 칩셋 공개",
		Description:  "<b>온디바이스 AI</b> 보안 기능이 &quot;대폭&quot; 강화됐다",
		OriginalLink: "https://news.example.kr/1",
		PubDate:      "Tue, 01 Sep 2026 09:30:00 +0900",
	}, w)

	require.True(t, ok)
	assert.Equal(t, `"갤럭시" 최신 칩셋 공개`, a.Title)
	assert.Equal(t, `온디바이스 AI 보안 기능이 "대폭" 강화됐다`, a.Description)
	assert.Equal(t, "2026-09-01 09:30", a.PublishedAt)
	assert.Equal(t, LangKorean, a.Lang)
}

func TestFromNaverDropsOtherDays(t *testing.T) {
	w := NewWindow(ref)

	_, ok := FromNaver(naver.Item{
		Title:   "어제 뉴스",
		PubDate: "Mon, 31 Aug 2026 23:59:00 +0900",
	}, w)

	assert.False(t, ok)
}

func TestFromNaverDropsUnparseableDate(t *testing.T) {
	w := NewWindow(ref)

	for _, pubDate := range []string{"", "garbage", "Tue, 01 Sep"} {
		_, ok := FromNaver(naver.Item{Title: "x", PubDate: pubDate}, w)
		assert.False(t, ok, "pubDate %q should be dropped", pubDate)
	}
}

func TestFromNaverUsesOriginalLink(t *testing.T) {
	w := NewWindow(ref)

	a, ok := FromNaver(naver.Item{
		Title:        "기사",
		OriginalLink: "https://publisher.example.kr/article",
		Link:         "https://news.naver.com/mirror",
		PubDate:      "Tue, 01 Sep 2026 12:00:00 +0900",
	}, w)

	require.True(t, ok)
	assert.Equal(t, "https://publisher.example.kr/article", a.URL)
}
