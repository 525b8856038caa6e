package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// AnalysisRepository reads and writes analysis_log rows written by the vision service
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository 새 저장소 생성
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// GetByID loads one analysis; NULL columns are left out of the profile
func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*contracts.AnalysisRecord, error) {
	query := `
		SELECT id, created_at, moisture, sebum, acne, wrinkles, pores, redness, pigmentation
		FROM analysis_log
		WHERE id = $1`

	var rec contracts.AnalysisRecord
	var values [7]sql.NullFloat64
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.CreatedAt,
		&values[0], &values[1], &values[2], &values[3], &values[4], &values[5], &values[6],
	)
	if err != nil {
		return nil, fmt.Errorf("analysis %d: %w", id, notFound(err))
	}

	// 컬럼 순서 = contracts.Features 순서
	rec.Profile = make(contracts.SkinProfile, len(contracts.Features))
	for i, f := range contracts.Features {
		if values[i].Valid {
			rec.Profile[f] = values[i].Float64
		}
	}
	return &rec, nil
}

// Save inserts a profile and returns its id
func (r *AnalysisRepository) Save(ctx context.Context, profile contracts.SkinProfile) (int64, error) {
	query := `
		INSERT INTO analysis_log (moisture, sebum, acne, wrinkles, pores, redness, pigmentation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	args := make([]any, len(contracts.Features))
	for i, f := range contracts.Features {
		if v, ok := profile[f]; ok {
			args[i] = v
		}
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("save analysis: %w", err)
	}
	return id, nil
}

var _ contracts.AnalysisRepository = (*AnalysisRepository)(nil)
