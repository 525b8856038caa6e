package oliveyoung

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing is one product tile from an Olive Young category page
type Listing struct {
	GoodsNo       string
	Brand         string
	Name          string
	OriginalPrice int64
	FinalPrice    int64
	DiscountPct   float64
	URL           string
	ImageURL      string
}

var digitsRe = regexp.MustCompile(`[^0-9]`)

// ParseListing extracts product tiles from a saved category/ranking page
// 상품명(.tx_name) 기준으로 상위 li 컨테이너를 찾음 (ul 클래스 변경에 강함)
func ParseListing(r io.Reader) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []Listing
	doc.Find(".tx_name").Each(func(i int, nameTag *goquery.Selection) {
		container := nameTag.Closest("li")
		if container.Length() == 0 {
			return
		}

		name := strings.TrimSpace(nameTag.Text())
		if name == "" {
			return
		}

		final := parsePrice(container.Find(".tx_cur").First().Text())
		original := final
		if org := container.Find(".tx_org").First(); org.Length() > 0 {
			original = parsePrice(org.Text())
		}

		l := Listing{
			Brand:         strings.TrimSpace(container.Find(".tx_brand").First().Text()),
			Name:          name,
			OriginalPrice: original,
			FinalPrice:    final,
			DiscountPct:   discount(original, final),
		}

		link := container.Find("a").First()
		l.URL, _ = link.Attr("href")
		if no, ok := link.Attr("data-ref-goodsno"); ok {
			l.GoodsNo = no
		}
		if img := container.Find("img").First(); img.Length() > 0 {
			l.ImageURL, _ = img.Attr("src")
		}

		out = append(out, l)
	})

	return out, nil
}

// parsePrice "12,900원~" → 12900 (숫자 없으면 0)
func parsePrice(s string) int64 {
	n, err := strconv.ParseInt(digitsRe.ReplaceAllString(s, ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func discount(original, final int64) float64 {
	if original <= 0 || final >= original {
		return 0
	}
	pct := float64(original-final) / float64(original) * 100
	return math.Round(pct*10) / 10
}
