package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is a product category (routine slot)
type Category string

const (
	CategoryCleanser    Category = "cleanser"
	CategoryToner       Category = "toner"
	CategorySerum       Category = "serum"
	CategoryEssence     Category = "essence"
	CategoryMoisturizer Category = "moisturizer"
	CategorySunscreen   Category = "sunscreen"
	CategoryNightCream  Category = "night-cream"
	CategoryMask        Category = "mask"
)

// Categories lists all known categories
var Categories = []Category{
	CategoryCleanser,
	CategoryToner,
	CategorySerum,
	CategoryEssence,
	CategoryMoisturizer,
	CategorySunscreen,
	CategoryNightCream,
	CategoryMask,
}

// ParseCategory converts a name into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Suitability holds the tags used for preference matching and hard filters
type Suitability struct {
	Texture         Texture `json:"texture,omitempty"`
	SensitivitySafe bool    `json:"sensitivity_safe"`
	NightOnly       bool    `json:"night_only,omitempty"` // 레티노이드 등 (AM 루틴 제외)
}

// Product is a catalog entry
type Product struct {
	ID             string      `json:"id,omitempty"`
	Brand          string      `json:"brand"`
	Name           string      `json:"name"`
	Category       Category    `json:"category"`
	TargetFeatures []Feature   `json:"target_features"`
	Suitability    Suitability `json:"suitability"`
	Tags           []string    `json:"tags,omitempty"`
	Ingredients    []string    `json:"ingredients,omitempty"`
	Price          int64       `json:"price,omitempty"`
	URL            string      `json:"url,omitempty"`
	ImageURL       string      `json:"image_url,omitempty"`
}

// Key is the (brand, name) identity of a product
func (p Product) Key() string {
	return p.Brand + "\x00" + p.Name
}

// Targets reports whether the product addresses f
func (p Product) Targets(f Feature) bool {
	for _, t := range p.TargetFeatures {
		if t == f {
			return true
		}
	}
	return false
}

func (p Product) clone() Product {
	out := p
	out.TargetFeatures = append([]Feature(nil), p.TargetFeatures...)
	out.Tags = append([]string(nil), p.Tags...)
	out.Ingredients = append([]string(nil), p.Ingredients...)
	return out
}

// Catalog is an immutable product snapshot
// ⭐ SSOT: 한 번의 추천 호출은 하나의 Catalog 스냅샷만 사용
type Catalog struct {
	version  string
	loadedAt time.Time
	products []Product
}

// NewCatalog deep-copies products into a new snapshot
func NewCatalog(version string, loadedAt time.Time, products []Product) *Catalog {
	copied := make([]Product, len(products))
	for i, p := range products {
		copied[i] = p.clone()
	}
	return &Catalog{
		version:  version,
		loadedAt: loadedAt,
		products: copied,
	}
}

// EmptyCatalog returns a snapshot with no products
func EmptyCatalog() *Catalog {
	return &Catalog{version: "empty"}
}

// Version returns the snapshot identifier
func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

// LoadedAt returns when the snapshot was built
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

// Len returns the number of products
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Empty reports whether the snapshot has no products
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// At returns a copy of the i-th product in catalog order
func (c *Catalog) At(i int) Product {
	return c.products[i].clone()
}

// Products returns a copy of all products in catalog order
func (c *Catalog) Products() []Product {
	out := make([]Product, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// HasCategory reports whether any product belongs to cat
func (c *Catalog) HasCategory(cat Category) bool {
	for i := 0; i < c.Len(); i++ {
		if c.products[i].Category == cat {
			return true
		}
	}
	return false
}

type catalogJSON struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Products []Product `json:"products"`
}

// MarshalJSON exposes the snapshot for API/CLI output
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(catalogJSON{
		Version:  c.Version(),
		LoadedAt: c.LoadedAt(),
		Products: c.Products(),
	})
}

// UnmarshalJSON builds a snapshot from its JSON form (catalog files)
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = *NewCatalog(raw.Version, raw.LoadedAt, raw.Products)
	return nil
}
