package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSendsCredentialHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id-123", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret-456", r.Header.Get("X-Naver-Client-Secret"))

		q := r.URL.Query()
		assert.Equal(t, "온디바이스 AI", q.Get("query"))
		assert.Equal(t, "20", q.Get("display"))
		assert.Equal(t, "date", q.Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total": 2, "display": 2,
			"items": [
				{
					"title": "<b>온디바이스</b> AI 칩 공개",
					"originallink": "https://publisher.example.kr/1",
					"link": "https://news.naver.com/1",
					"description": "&quot;차세대&quot; 보안 기능",
					"pubDate": "Tue, 01 Sep 2026 09:00:00 +0900"
				},
				{
					"title": "후속 기사",
					"originallink": "https://publisher.example.kr/2",
					"link": "https://news.naver.com/2",
					"description": "요약",
					"pubDate": "Tue, 01 Sep 2026 08:00:00 +0900"
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("id-123", "secret-456", 5*time.Second)
	c.BaseURL = srv.URL

	items, err := c.Fetch(context.Background(), "온디바이스 AI")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Raw items keep provider markup; normalization happens downstream.
	assert.Equal(t, "<b>온디바이스</b> AI 칩 공개", items[0].Title)
	assert.Equal(t, "https://publisher.example.kr/1", items[0].OriginalLink)
	assert.Equal(t, "Tue, 01 Sep 2026 08:00:00 +0900", items[1].PubDate)
}

func TestFetchReturnsErrorOnNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errorMessage":"Not Registered","errorCode":"024"}`))
	}))
	defer srv.Close()

	c := NewClient("id", "secret", 5*time.Second)
	c.BaseURL = srv.URL

	items, err := c.Fetch(context.Background(), "q")
	assert.Nil(t, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
