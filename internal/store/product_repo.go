package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// ProductRepository persists the catalog in the products table
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository 새 저장소 생성
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// ListAll returns every product in stored catalog order
func (r *ProductRepository) ListAll(ctx context.Context) ([]contracts.Product, error) {
	query := `
		SELECT id, brand, name, category, target_features, tags, ingredients,
			   texture, sensitivity_safe, night_only, price, url, image_url
		FROM products
		ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []contracts.Product
	for rows.Next() {
		var p contracts.Product
		var category, texture string
		var features []string
		if err := rows.Scan(
			&p.ID, &p.Brand, &p.Name, &category, &features, &p.Tags, &p.Ingredients,
			&texture, &p.Suitability.SensitivitySafe, &p.Suitability.NightOnly,
			&p.Price, &p.URL, &p.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Category = contracts.Category(category)
		p.Suitability.Texture = contracts.Texture(texture)
		for _, f := range features {
			p.TargetFeatures = append(p.TargetFeatures, contracts.Feature(f))
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// ReplaceAll swaps the whole table in one transaction
// 부분 교체 없음: 실패 시 기존 카탈로그 유지
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []contracts.Product) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return 0, fmt.Errorf("clear products: %w", err)
	}

	query := `
		INSERT INTO products
			(id, brand, name, category, target_features, tags, ingredients,
			 texture, sensitivity_safe, night_only, price, url, image_url, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (brand, name) DO NOTHING`

	batch := &pgx.Batch{}
	for i, p := range products {
		features := make([]string, len(p.TargetFeatures))
		for j, f := range p.TargetFeatures {
			features[j] = string(f)
		}
		batch.Queue(query,
			p.ID, p.Brand, p.Name, string(p.Category), features, nonNil(p.Tags), nonNil(p.Ingredients),
			string(p.Suitability.Texture), p.Suitability.SensitivitySafe, p.Suitability.NightOnly,
			p.Price, p.URL, p.ImageURL, i,
		)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range products {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, fmt.Errorf("insert product: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ contracts.ProductRepository = (*ProductRepository)(nil)
