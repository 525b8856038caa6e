package s6_recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

func scoredOf(score float64, brand, name string, cat contracts.Category) contracts.ScoredProduct {
	return contracts.ScoredProduct{
		Product:    contracts.Product{Brand: brand, Name: name, Category: cat},
		MatchScore: score,
		Reasons:    []string{"reason for " + name},
	}
}

func testCatalog() *contracts.Catalog {
	return contracts.NewCatalog("v1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil)
}

func TestRecommender_Top3DistinctAndRanked(t *testing.T) {
	scored := []contracts.ScoredProduct{
		scoredOf(90, "A", "Serum", contracts.CategorySerum),
		scoredOf(90, "A", "Serum", contracts.CategorySerum), // 중복 (brand, name)
		scoredOf(80, "B", "Toner", contracts.CategoryToner),
		scoredOf(70, "A", "Cream", contracts.CategoryMoisturizer),
		scoredOf(60, "C", "Cleanser", contracts.CategoryCleanser),
	}

	rec := NewRecommender().Recommend(55, 28, scored, testCatalog())

	require.Len(t, rec.Top3, 3)
	assert.Equal(t, []string{"Serum", "Toner", "Cream"}, rec.TopNames())
	for i, p := range rec.Top3 {
		assert.Equal(t, i+1, p.Rank)
	}
	assert.Equal(t, "v1", rec.CatalogVersion)
	assert.Equal(t, 55.0, rec.OverallScore)
	assert.Equal(t, 28.0, rec.SkinAge)
}

func TestRecommender_FewerThanThree(t *testing.T) {
	scored := []contracts.ScoredProduct{scoredOf(10, "A", "Only", contracts.CategorySerum)}

	rec := NewRecommender().Recommend(50, 30, scored, testCatalog())
	assert.Len(t, rec.Top3, 1)
}

func TestRecommender_RoutineSlots(t *testing.T) {
	scored := []contracts.ScoredProduct{
		scoredOf(95, "A", "Retinol Serum", contracts.CategorySerum),
		scoredOf(90, "B", "Vitamin Serum", contracts.CategorySerum),
		scoredOf(80, "C", "Gel Cleanser", contracts.CategoryCleanser),
		scoredOf(70, "D", "Barrier Cream", contracts.CategoryMoisturizer),
		scoredOf(60, "E", "Daily Sunscreen", contracts.CategorySunscreen),
		scoredOf(50, "F", "Sleeping Cream", contracts.CategoryNightCream),
		scoredOf(40, "G", "Sheet Mask", contracts.CategoryMask),
	}
	scored[0].Product.Suitability.NightOnly = true

	rec := NewRecommender().Recommend(50, 30, scored, testCatalog())

	// toner 없음 → 슬롯 생략
	amSlots := slotsOf(rec.Routine.AM)
	pmSlots := slotsOf(rec.Routine.PM)
	assert.Equal(t, []contracts.Category{
		contracts.CategoryCleanser, contracts.CategorySerum, contracts.CategoryMoisturizer, contracts.CategorySunscreen,
	}, amSlots)
	assert.Equal(t, []contracts.Category{
		contracts.CategoryCleanser, contracts.CategorySerum, contracts.CategoryMoisturizer, contracts.CategoryNightCream,
	}, pmSlots)

	// 레티놀은 AM 제외, PM은 최고 점수 세럼
	assert.Equal(t, "Vitamin Serum", rec.Routine.AM[1].Product.Name)
	assert.Equal(t, "Retinol Serum", rec.Routine.PM[1].Product.Name)

	assert.Equal(t, "Cleanse with Gel Cleanser", rec.Routine.AM[0].Instruction)
	for i, step := range rec.Routine.AM {
		assert.Equal(t, i+1, step.Order)
	}
}

func TestRecommender_EmptyScored(t *testing.T) {
	rec := NewRecommender().Recommend(50, 30, nil, contracts.EmptyCatalog())

	assert.NotNil(t, rec.Top3)
	assert.Empty(t, rec.Top3)
	assert.NotNil(t, rec.Routine.AM)
	assert.Empty(t, rec.Routine.AM)
	assert.Empty(t, rec.Routine.PM)
}

func TestSummarizer_Summarize(t *testing.T) {
	s := NewSummarizer(engineconfig.Default().Modulation)
	d := contracts.DeficiencyVector{
		contracts.FeatureMoisture:     72,
		contracts.FeatureSebum:        20,
		contracts.FeatureAcne:         65,
		contracts.FeatureWrinkles:     10,
		contracts.FeaturePore:         30,
		contracts.FeatureRedness:      15,
		contracts.FeaturePigmentation: 20,
	}
	sensitive := true
	ctx := contracts.ContextModifiers{
		Weather:   &contracts.Weather{Humidity: 30, UVIndex: 8, Temperature: 20},
		Lifestyle: &contracts.Lifestyle{Sensitive: &sensitive},
		Pref:      contracts.UserPref{Age: 30},
	}
	rec := &contracts.Recommendation{SkinAge: 34.5}

	lines := s.Summarize(rec, d, ctx)

	assert.Equal(t, []string{
		"Your biggest need today is moisture (72/100)",
		"UV index 8 is high today: sunscreen is essential",
		"Dry air (30% humidity): prioritise hydration",
		"Your skin barrier looks dehydrated",
		"Active breakouts detected: focus on gentle acne care",
		"Estimated skin age is 4.5 years above your age",
		"Products were limited to sensitivity-safe options",
		"No matching products are available right now",
	}, lines)
}

func slotsOf(steps []contracts.RoutineStep) []contracts.Category {
	out := make([]contracts.Category, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Slot)
	}
	return out
}
