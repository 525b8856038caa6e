package jobs

import (
	"context"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/metrics"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// Refresher rebuilds and publishes the product catalog
type Refresher interface {
	Refresh(ctx context.Context) (*catalog.RefreshResult, error)
}

// CatalogRefreshJob rebuilds the catalog from the shopping search API
type CatalogRefreshJob struct {
	refresher Refresher
	schedule  string
	logger    *logger.Logger
}

// NewCatalogRefreshJob creates a catalog refresh job
func NewCatalogRefreshJob(refresher Refresher, schedule string, log *logger.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *CatalogRefreshJob) Name() string {
	return "catalog_refresh"
}

// Schedule returns the cron schedule
func (j *CatalogRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes one refresh; 실패 시 이전 스냅샷 유지
func (j *CatalogRefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled catalog refresh")

	res, err := j.refresher.Refresh(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(metrics.OutcomeError, -1)
		return err
	}

	metrics.RecordCatalogRefresh(metrics.OutcomeOK, res.Products)
	j.logger.WithFields(map[string]interface{}{
		"version":         res.Version,
		"products":        res.Products,
		"failed_keywords": res.FailedKeywords,
	}).Info("Catalog refresh completed")

	return nil
}
