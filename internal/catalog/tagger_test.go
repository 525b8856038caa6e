package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

func TestTagger_Annotate(t *testing.T) {
	tagger := NewTagger()

	tests := []struct {
		name        string
		title       string
		category    contracts.Category
		features    []contracts.Feature
		texture     contracts.Texture
		safe, night bool
		tags        []string
	}{
		{
			name:     "hydrating cream",
			title:    "라운드랩 자작나무 수분 크림 80ml",
			category: contracts.CategoryMoisturizer,
			features: []contracts.Feature{contracts.FeatureMoisture},
			texture:  contracts.TextureCream,
			tags:     []string{"moisturizing", "hydration"},
		},
		{
			name:     "sensitive soothing gel",
			title:    "약산성 시카 진정 젤 클렌저",
			category: contracts.CategoryCleanser,
			features: []contracts.Feature{contracts.FeatureRedness},
			texture:  contracts.TextureGel,
			safe:     true,
		},
		{
			name:     "strong acid overrides sensitive label",
			title:    "저자극 BHA 모공 토너",
			category: contracts.CategoryToner,
			features: []contracts.Feature{contracts.FeaturePore},
			safe:     false,
		},
		{
			name:     "retinol is night only",
			title:    "레티놀 주름 탄력 크림",
			category: contracts.CategoryNightCream,
			features: []contracts.Feature{contracts.FeatureWrinkles},
			texture:  contracts.TextureCream,
			night:    true,
		},
		{
			name:     "sunscreen gets spf tag",
			title:    "무기자차 톤업 선크림",
			category: contracts.CategorySunscreen,
			features: []contracts.Feature{contracts.FeaturePigmentation},
			texture:  contracts.TextureCream,
			tags:     []string{"brightening", "spf50"},
		},
		{
			name:     "nothing recognised",
			title:    "Plain Product",
			category: contracts.CategoryMask,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := tagger.Annotate(tc.title, tc.category)
			assert.Equal(t, tc.features, a.TargetFeatures)
			assert.Equal(t, tc.texture, a.Texture)
			assert.Equal(t, tc.safe, a.SensitivitySafe)
			assert.Equal(t, tc.night, a.NightOnly)
			if tc.tags != nil {
				assert.Equal(t, tc.tags, a.Tags)
			}
		})
	}
}

func TestTagger_ApplyKeepsExplicitValues(t *testing.T) {
	p := contracts.Product{
		Name:           "수분 크림",
		Category:       contracts.CategoryMoisturizer,
		TargetFeatures: []contracts.Feature{contracts.FeatureSebum},
		Suitability:    contracts.Suitability{Texture: contracts.TextureLotion},
	}
	NewTagger().Apply(&p)

	assert.Equal(t, []contracts.Feature{contracts.FeatureSebum}, p.TargetFeatures)
	assert.Equal(t, contracts.TextureLotion, p.Suitability.Texture)
	assert.Contains(t, p.Tags, "moisturizing")
}

func TestTagger_FeaturesInCanonicalOrder(t *testing.T) {
	a := NewTagger().Annotate("미백 모공 여드름 수분 앰플", contracts.CategorySerum)
	assert.Equal(t, []contracts.Feature{
		contracts.FeatureMoisture,
		contracts.FeatureAcne,
		contracts.FeaturePore,
		contracts.FeaturePigmentation,
	}, a.TargetFeatures)
}
