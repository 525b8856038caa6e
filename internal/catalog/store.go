package catalog

import (
	"sync/atomic"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// Store holds the current catalog snapshot
// 갱신은 새 스냅샷 포인터 교체로만 (진행 중인 추천은 이전 스냅샷을 계속 사용)
// ⭐ SSOT: 카탈로그 스냅샷 교체는 이 구조체에서만
type Store struct {
	current atomic.Pointer[contracts.Catalog]
	logger  *logger.Logger
}

// NewStore creates an empty store
func NewStore(log *logger.Logger) *Store {
	return &Store{logger: log.WithComponent("catalog_store")}
}

// Snapshot returns the current snapshot or ErrEmptyCatalog before the first publish
func (s *Store) Snapshot() (*contracts.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, contracts.ErrEmptyCatalog
	}
	return c, nil
}

// Publish atomically replaces the current snapshot
func (s *Store) Publish(c *contracts.Catalog) {
	if c == nil {
		return
	}
	prev := s.current.Swap(c)

	s.logger.WithFields(map[string]interface{}{
		"version":      c.Version(),
		"products":     c.Len(),
		"prev_version": prev.Version(),
	}).Info("Catalog snapshot published")
}

// Version returns the current snapshot version ("" before the first publish)
func (s *Store) Version() string {
	return s.current.Load().Version()
}

var _ contracts.CatalogProvider = (*Store)(nil)
