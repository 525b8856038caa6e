package naver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/pkg/httputil"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

const sampleResponse = `{
  "total": 2, "start": 1, "display": 2,
  "items": [
    {"title": "<b>무기자차</b> 선크림 SPF50+ &amp; PA++++", "link": "https://shop/1", "image": "https://img/1",
     "lprice": "18900", "brand": "라운드랩", "maker": "", "productId": "111",
     "category1": "화장품/미용", "category2": "선케어", "category3": "선크림", "category4": ""},
    {"title": "톤업 <b>선크림</b>", "link": "https://shop/2", "image": "", "lprice": "abc", "brand": " ", "productId": "222"}
  ]
}`

func newTestClient(baseURL, id, secret string) *Client {
	h := httputil.New(logger.Nop(), 2*time.Second).WithRetry(1, time.Millisecond)
	return NewClient(h, logger.Nop(), baseURL, id, secret)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/shop.json", r.URL.Path)
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "무기자차", r.URL.Query().Get("query"))
		assert.Equal(t, "100", r.URL.Query().Get("display")) // 상한 적용
		assert.Equal(t, SortSimilarity, r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	items, err := newTestClient(server.URL, "id", "secret").Search(context.Background(), "무기자차", 500, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "무기자차 선크림 SPF50+ & PA++++", items[0].Title)
	assert.Equal(t, int64(18900), items[0].Price)
	assert.Equal(t, "라운드랩", items[0].Brand)
	assert.Equal(t, []string{"화장품/미용", "선케어", "선크림"}, items[0].Categories)

	assert.Equal(t, "톤업 선크림", items[1].Title)
	assert.Equal(t, int64(0), items[1].Price, "unparseable price → 0")
	assert.Empty(t, items[1].Brand)
}

func TestSearch_NoCredentials(t *testing.T) {
	_, err := newTestClient("http://unused", "", "").Search(context.Background(), "토너", 10, SortDate)
	assert.True(t, errors.Is(err, ErrNoCredentials))
}

func TestSearch_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorCode":"024"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "id", "bad").Search(context.Background(), "토너", 10, "")
	require.Error(t, err)

	var serr *httputil.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<b>시카</b> 크림", "시카 크림"},
		{"  plain  ", "plain"},
		{"A &lt;B&gt;", "A <B>"},
		{"<b></b>", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanHTML(tt.in))
	}
}

func TestSearchKeywordsCoverCategories(t *testing.T) {
	for _, c := range contracts.Categories {
		assert.NotEmpty(t, SearchKeywords[c], "category %s has no keywords", c)
	}
}
