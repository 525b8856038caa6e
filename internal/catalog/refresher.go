package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/external/naver"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// ErrNoResults is returned when every keyword search failed or came back empty
var ErrNoResults = errors.New("catalog refresh: no products collected")

// productNamespace 제품 ID(UUIDv5) 네임스페이스
var productNamespace = uuid.MustParse("6f1c2b1e-8d7a-4c55-9a0e-3b4f5e6d7c80")

// ProductID returns the stable id of a (brand, name) pair
func ProductID(p contracts.Product) string {
	return uuid.NewSHA1(productNamespace, []byte(p.Key())).String()
}

// Searcher is the shopping search used to collect products
type Searcher interface {
	Search(ctx context.Context, keyword string, display int, sort string) ([]naver.ShopItem, error)
}

// RefresherConfig controls a refresh run
type RefresherConfig struct {
	Keywords        map[contracts.Category][]string
	Concurrency     int
	ItemsPerKeyword int
}

// Refresher collects products, persists them and publishes a new snapshot
// ⭐ SSOT: 카탈로그 수집/교체 흐름은 여기서만
type Refresher struct {
	search Searcher
	repo   contracts.ProductRepository // nil → 영속화 생략
	store  *Store
	tagger *Tagger
	cfg    RefresherConfig
	logger *logger.Logger
	now    func() time.Time

	mu sync.Mutex // 동시 갱신 방지
}

// NewRefresher creates a refresher; repo may be nil
func NewRefresher(search Searcher, repo contracts.ProductRepository, store *Store, cfg RefresherConfig, log *logger.Logger) *Refresher {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.ItemsPerKeyword < 1 {
		cfg.ItemsPerKeyword = naver.MaxDisplay
	}
	if cfg.Keywords == nil {
		cfg.Keywords = naver.SearchKeywords
	}
	return &Refresher{
		search: search,
		repo:   repo,
		store:  store,
		tagger: NewTagger(),
		cfg:    cfg,
		logger: log.WithComponent("catalog_refresher"),
		now:    time.Now,
	}
}

// RefreshResult summarizes one run
type RefreshResult struct {
	Version        string        `json:"version"`
	Products       int           `json:"products"`
	Duplicates     int           `json:"duplicates"`
	Keywords       int           `json:"keywords"`
	FailedKeywords int           `json:"failed_keywords"`
	Persisted      bool          `json:"persisted"`
	Duration       time.Duration `json:"duration"`
}

type searchJob struct {
	category contracts.Category
	keyword  string
}

// Refresh runs one collection; the store is untouched on failure
func (r *Refresher) Refresh(ctx context.Context) (*RefreshResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.now()
	jobs := r.jobs()

	results := make([][]contracts.Product, len(jobs))
	failed := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			items, err := r.search.Search(gctx, job.keyword, r.cfg.ItemsPerKeyword, naver.SortSimilarity)
			if err != nil {
				// 컨텍스트 취소는 전체 중단, 개별 키워드 실패는 건너뜀
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.WithError(err).WithField("keyword", job.keyword).Warn("Keyword search failed")
				failed[i] = true
				return nil
			}
			results[i] = r.toProducts(items, job.category)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog refresh: %w", err)
	}

	products, dups := dedupe(results)
	failedCount := 0
	for _, f := range failed {
		if f {
			failedCount++
		}
	}

	if len(products) == 0 {
		return nil, ErrNoResults
	}

	res := &RefreshResult{
		Products:       len(products),
		Duplicates:     dups,
		Keywords:       len(jobs),
		FailedKeywords: failedCount,
	}

	if r.repo != nil {
		if _, err := r.repo.ReplaceAll(ctx, products); err != nil {
			return nil, fmt.Errorf("persist catalog: %w", err)
		}
		res.Persisted = true
	}

	now := r.now()
	res.Version = Version(now, len(products))
	r.store.Publish(contracts.NewCatalog(res.Version, now, products))
	res.Duration = now.Sub(start)

	r.logger.WithFields(map[string]interface{}{
		"version":         res.Version,
		"products":        res.Products,
		"duplicates":      res.Duplicates,
		"failed_keywords": res.FailedKeywords,
		"duration":        res.Duration,
	}).Info("Catalog refreshed")

	return res, nil
}

// jobs flattens keywords in category order then keyword order
func (r *Refresher) jobs() []searchJob {
	var jobs []searchJob
	for _, cat := range contracts.Categories {
		for _, kw := range r.cfg.Keywords[cat] {
			jobs = append(jobs, searchJob{category: cat, keyword: kw})
		}
	}
	// Categories 밖의 키는 이름순
	var extra []contracts.Category
	for cat := range r.cfg.Keywords {
		if !isKnown(cat) {
			extra = append(extra, cat)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, cat := range extra {
		for _, kw := range r.cfg.Keywords[cat] {
			jobs = append(jobs, searchJob{category: cat, keyword: kw})
		}
	}
	return jobs
}

func (r *Refresher) toProducts(items []naver.ShopItem, cat contracts.Category) []contracts.Product {
	out := make([]contracts.Product, 0, len(items))
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		brand := it.Brand
		if brand == "" {
			brand = it.Maker
		}
		p := contracts.Product{
			Brand:    brand,
			Name:     it.Title,
			Category: cat,
			Price:    it.Price,
			URL:      it.Link,
			ImageURL: it.Image,
		}
		r.tagger.Apply(&p)
		p.ID = ProductID(p)
		out = append(out, p)
	}
	return out
}

// dedupe keeps the first product per (brand, name)
func dedupe(groups [][]contracts.Product) ([]contracts.Product, int) {
	seen := make(map[string]bool)
	var out []contracts.Product
	dups := 0
	for _, group := range groups {
		for _, p := range group {
			if seen[p.Key()] {
				dups++
				continue
			}
			seen[p.Key()] = true
			out = append(out, p)
		}
	}
	return out, dups
}

func isKnown(cat contracts.Category) bool {
	for _, c := range contracts.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Version formats a snapshot version: UTC timestamp + product count
func Version(at time.Time, count int) string {
	return fmt.Sprintf("%s-%d", at.UTC().Format("20060102T150405Z"), count)
}
