package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/external/oliveyoung"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_BareArray(t *testing.T) {
	path := writeFile(t, `[
	  {"brand":"A","name":"수분 크림","category":"moisturizer"},
	  {"brand":"B","name":"Serum","category":"serum","target_features":["pigmentation"],"suitability":{"sensitivity_safe":true}}
	]`)

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.NotEmpty(t, c.Version())

	first := c.At(0)
	assert.Equal(t, []contracts.Feature{contracts.FeatureMoisture}, first.TargetFeatures, "derived from name")
	assert.Equal(t, ProductID(first), first.ID)

	second := c.At(1)
	assert.Equal(t, []contracts.Feature{contracts.FeaturePigmentation}, second.TargetFeatures)
	assert.True(t, second.Suitability.SensitivitySafe)
}

func TestLoadFile_CatalogObject(t *testing.T) {
	path := writeFile(t, `{"version":"seed-1","loaded_at":"2026-01-01T00:00:00Z",
	  "products":[{"id":"p1","brand":"A","name":"Toner","category":"toner","target_features":["sebum"]}]}`)

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "seed-1", c.Version())
	assert.Equal(t, "p1", c.At(0).ID)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{"products": [`},
		{"unknown category", `[{"brand":"A","name":"x","category":"perfume"}]`},
		{"unknown feature", `[{"brand":"A","name":"x","category":"toner","target_features":["glow"]}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFromRepository(t *testing.T) {
	store := NewStore(logger.Nop())

	_, err := LoadFromRepository(context.Background(), &fakeProductRepo{}, store)
	assert.True(t, errors.Is(err, contracts.ErrEmptyCatalog))

	repo := &fakeProductRepo{saved: []contracts.Product{{Brand: "a", Name: "b", Category: contracts.CategoryToner}}}
	c, err := LoadFromRepository(context.Background(), repo, store)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, c.Version(), store.Version())

	_, err = LoadFromRepository(context.Background(), &fakeProductRepo{err: errors.New("db")}, store)
	assert.Error(t, err)
}

func TestFromListings(t *testing.T) {
	products := FromListings([]oliveyoung.Listing{
		{Brand: "라운드랩", Name: "독도 수분 토너", FinalPrice: 15000},
		{Brand: "라운드랩", Name: "독도 수분 토너", FinalPrice: 14000},
		{Brand: "닥터지", Name: "레드 블레미쉬 진정 크림", FinalPrice: 32000},
	}, contracts.CategoryToner)

	require.Len(t, products, 2)
	assert.Equal(t, int64(15000), products[0].Price)
	assert.Equal(t, []contracts.Feature{contracts.FeatureMoisture}, products[0].TargetFeatures)
	assert.Equal(t, []contracts.Feature{contracts.FeatureAcne, contracts.FeatureRedness}, products[1].TargetFeatures)
}

func TestLoadFile_Seed(t *testing.T) {
	const seed = "../../config/catalog/seed.json"
	if _, err := os.Stat(seed); os.IsNotExist(err) {
		t.Skip("seed catalog not found")
	}

	c, err := LoadFile(seed)
	require.NoError(t, err)
	assert.Equal(t, "seed-1", c.Version())
	assert.Equal(t, 11, c.Len())

	// 모든 카테고리가 시드에 존재
	for _, cat := range contracts.Categories {
		assert.True(t, c.HasCategory(cat), "category %s", cat)
	}
}
