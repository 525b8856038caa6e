package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

type fakeRefresher struct {
	res *catalog.RefreshResult
	err error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*catalog.RefreshResult, error) {
	return f.res, f.err
}

func TestCatalogRefreshJob(t *testing.T) {
	ok := NewCatalogRefreshJob(&fakeRefresher{res: &catalog.RefreshResult{Version: "v", Products: 3}}, "0 0 4 * * *", logger.Nop())
	assert.Equal(t, "catalog_refresh", ok.Name())
	assert.Equal(t, "0 0 4 * * *", ok.Schedule())
	require.NoError(t, ok.Run(context.Background()))

	failing := NewCatalogRefreshJob(&fakeRefresher{err: catalog.ErrNoResults}, "@daily", logger.Nop())
	err := failing.Run(context.Background())
	assert.True(t, errors.Is(err, catalog.ErrNoResults))
}
