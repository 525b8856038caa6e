package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/external/oliveyoung"
)

// LoadFromRepository publishes the persisted catalog; an empty table publishes nothing
func LoadFromRepository(ctx context.Context, repo contracts.ProductRepository, store *Store) (*contracts.Catalog, error) {
	products, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, contracts.ErrEmptyCatalog
	}

	now := time.Now()
	c := contracts.NewCatalog(Version(now, len(products)), now, products)
	store.Publish(c)
	return c, nil
}

// LoadFile reads a catalog file: either {version, loaded_at, products} or a bare product array
// 태그/대상 feature가 빠진 제품은 제품명으로 보강
func LoadFile(path string) (*contracts.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []contracts.Product
	version := ""
	loadedAt := time.Time{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
		}
	} else {
		var c contracts.Catalog
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
		}
		products = c.Products()
		version = c.Version()
		loadedAt = c.LoadedAt()
	}

	tagger := NewTagger()
	for i := range products {
		if _, err := contracts.ParseCategory(string(products[i].Category)); err != nil {
			return nil, fmt.Errorf("catalog file %s: product %q: %w", path, products[i].Name, err)
		}
		for _, f := range products[i].TargetFeatures {
			if !f.Valid() {
				return nil, fmt.Errorf("catalog file %s: product %q: unknown feature %q", path, products[i].Name, f)
			}
		}
		tagger.Apply(&products[i])
		if products[i].ID == "" {
			products[i].ID = ProductID(products[i])
		}
	}

	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}
	if version == "" {
		version = Version(loadedAt, len(products))
	}
	return contracts.NewCatalog(version, loadedAt, products), nil
}

// FromListings converts parsed ranking-page tiles into tagged products
func FromListings(listings []oliveyoung.Listing, category contracts.Category) []contracts.Product {
	tagger := NewTagger()
	groups := make([]contracts.Product, 0, len(listings))
	for _, l := range listings {
		p := contracts.Product{
			Brand:    l.Brand,
			Name:     l.Name,
			Category: category,
			Price:    l.FinalPrice,
			URL:      l.URL,
			ImageURL: l.ImageURL,
		}
		tagger.Apply(&p)
		p.ID = ProductID(p)
		groups = append(groups, p)
	}
	out, _ := dedupe([][]contracts.Product{groups})
	return out
}
