package contracts

import (
	"context"
	"time"
)

// ⭐ SSOT: Repository 인터페이스 정의는 여기서만

// ProductRepository manages the persisted catalog
type ProductRepository interface {
	ListAll(ctx context.Context) ([]Product, error)
	ReplaceAll(ctx context.Context, products []Product) (int, error)
}

// AnalysisRepository reads skin analyses produced by the vision service
type AnalysisRepository interface {
	GetByID(ctx context.Context, id int64) (*AnalysisRecord, error)
	Save(ctx context.Context, profile SkinProfile) (int64, error)
}

// AnalysisRecord is one analysis_log row
type AnalysisRecord struct {
	ID        int64       `json:"id"`
	Profile   SkinProfile `json:"profile"`
	CreatedAt time.Time   `json:"created_at"`
}

// HistoryRepository stores recommendation history
type HistoryRepository interface {
	Save(ctx context.Context, rec *HistoryRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]HistoryRecord, error)
}

// HistoryRecord is one recommendation_log row
type HistoryRecord struct {
	ID             string          `json:"id"` // uuid
	UserID         string          `json:"user_id"`
	AnalysisID     *int64          `json:"analysis_id,omitempty"`
	Input          Input           `json:"input"`
	Recommendation *Recommendation `json:"recommendation"`
	ConfigHash     string          `json:"config_hash"`
	CatalogVersion string          `json:"catalog_version"`
	CreatedAt      time.Time       `json:"created_at"`
}

// WeatherProvider returns current weather; (nil, err) when unavailable
type WeatherProvider interface {
	Current(ctx context.Context) (*Weather, error)
}

// CatalogProvider hands out the current immutable catalog snapshot
type CatalogProvider interface {
	Snapshot() (*Catalog, error)
}
