package naver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/skinadvisor/backend/pkg/httputil"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// ErrNoCredentials is returned when client id/secret are not configured
var ErrNoCredentials = errors.New("naver: client id/secret not configured")

// MaxDisplay 네이버 쇼핑 검색 API 1회 최대 결과 수
const MaxDisplay = 100

// Sort orders accepted by the shopping search API
const (
	SortSimilarity = "sim"
	SortDate       = "date"
	SortPriceAsc   = "asc"
	SortPriceDesc  = "dsc"
)

// Client handles communication with the Naver shopping search API
// ⭐ SSOT: 네이버 쇼핑 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	baseURL      string
	clientID     string
	clientSecret string
}

// NewClient creates a new Naver shopping client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   httpClient,
		logger:       log.WithComponent("naver"),
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Configured reports whether API credentials are present
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ShopItem is one cleaned search result
type ShopItem struct {
	Title      string
	Link       string
	Image      string
	Price      int64 // 최저가 (원)
	Brand      string
	Maker      string
	ProductID  string
	Categories []string
}

// searchResponse mirrors /v1/search/shop.json
type searchResponse struct {
	Total   int          `json:"total"`
	Start   int          `json:"start"`
	Display int          `json:"display"`
	Items   []searchItem `json:"items"`
}

type searchItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	LPrice    string `json:"lprice"`
	Brand     string `json:"brand"`
	Maker     string `json:"maker"`
	ProductID string `json:"productId"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Category3 string `json:"category3"`
	Category4 string `json:"category4"`
}

// Search queries the shopping API for a keyword
func (c *Client) Search(ctx context.Context, keyword string, display int, sort string) ([]ShopItem, error) {
	if !c.Configured() {
		return nil, ErrNoCredentials
	}
	if display < 1 {
		display = 1
	}
	if display > MaxDisplay {
		display = MaxDisplay
	}
	if sort == "" {
		sort = SortSimilarity
	}

	params := url.Values{}
	params.Set("query", keyword)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", sort)
	fullURL := fmt.Sprintf("%s/v1/search/shop.json?%s", c.baseURL, params.Encode())

	headers := map[string]string{
		"X-Naver-Client-Id":     c.clientID,
		"X-Naver-Client-Secret": c.clientSecret,
	}

	var resp searchResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, headers, &resp); err != nil {
		return nil, fmt.Errorf("naver search %q: %w", keyword, err)
	}

	items := make([]ShopItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, it.clean())
	}

	c.logger.WithFields(map[string]interface{}{
		"keyword": keyword,
		"total":   resp.Total,
		"count":   len(items),
	}).Debug("Naver search completed")

	return items, nil
}

func (it searchItem) clean() ShopItem {
	price, _ := strconv.ParseInt(strings.TrimSpace(it.LPrice), 10, 64)

	var cats []string
	for _, c := range []string{it.Category1, it.Category2, it.Category3, it.Category4} {
		if c != "" {
			cats = append(cats, c)
		}
	}

	return ShopItem{
		Title:      CleanHTML(it.Title),
		Link:       it.Link,
		Image:      it.Image,
		Price:      price,
		Brand:      strings.TrimSpace(it.Brand),
		Maker:      strings.TrimSpace(it.Maker),
		ProductID:  it.ProductID,
		Categories: cats,
	}
}

// CleanHTML strips markup such as the <b> highlight tags and unescapes entities
func CleanHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
