package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// MaxHistoryLimit caps ListByUser
const MaxHistoryLimit = 100

// HistoryRepository stores recommendation_log rows
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository 새 저장소 생성
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Save inserts a record; ID and CreatedAt are filled when empty
func (r *HistoryRepository) Save(ctx context.Context, rec *contracts.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Recommendation == nil {
		return fmt.Errorf("save history %s: nil recommendation", rec.ID)
	}

	input, err := json.Marshal(rec.Input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	recommendation, err := json.Marshal(rec.Recommendation)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	query := `
		INSERT INTO recommendation_log
			(id, user_id, analysis_id, overall_score, skin_age, top3_products,
			 input, recommendation, config_hash, catalog_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		rec.ID, rec.UserID, rec.AnalysisID,
		rec.Recommendation.OverallScore, rec.Recommendation.SkinAge, nonNil(rec.Recommendation.TopNames()),
		input, recommendation, rec.ConfigHash, rec.CatalogVersion, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save history %s: %w", rec.ID, err)
	}
	return nil
}

// ListByUser returns a user's records, newest first
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]contracts.HistoryRecord, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := `
		SELECT id::text, user_id, analysis_id, input, recommendation,
			   config_hash, catalog_version, created_at
		FROM recommendation_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []contracts.HistoryRecord{}
	for rows.Next() {
		var rec contracts.HistoryRecord
		var input, recommendation []byte
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.AnalysisID, &input, &recommendation,
			&rec.ConfigHash, &rec.CatalogVersion, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if err := json.Unmarshal(input, &rec.Input); err != nil {
			return nil, fmt.Errorf("history %s input: %w", rec.ID, err)
		}
		rec.Recommendation = &contracts.Recommendation{}
		if err := json.Unmarshal(recommendation, rec.Recommendation); err != nil {
			return nil, fmt.Errorf("history %s recommendation: %w", rec.ID, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

var _ contracts.HistoryRepository = (*HistoryRepository)(nil)
