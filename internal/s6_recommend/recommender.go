package s6_recommend

import (
	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// TopN is the number of highlighted products
const TopN = 3

// Routine slot order
// ⭐ SSOT: AM/PM 슬롯 순서는 여기서만 정의
var (
	AMSlots = []contracts.Category{
		contracts.CategoryCleanser,
		contracts.CategoryToner,
		contracts.CategorySerum,
		contracts.CategoryMoisturizer,
		contracts.CategorySunscreen,
	}
	PMSlots = []contracts.Category{
		contracts.CategoryCleanser,
		contracts.CategoryToner,
		contracts.CategorySerum,
		contracts.CategoryMoisturizer,
		contracts.CategoryNightCream,
	}
)

// slot instruction templates ({product} = product name)
var instructions = map[contracts.Category]string{
	contracts.CategoryCleanser:    "Cleanse with {product}",
	contracts.CategoryToner:       "Prep skin with {product}",
	contracts.CategorySerum:       "Apply {product} as your treatment serum",
	contracts.CategoryMoisturizer: "Lock in moisture with {product}",
	contracts.CategorySunscreen:   "Finish with {product} for sun protection",
	contracts.CategoryNightCream:  "Seal overnight with {product}",
}

// Recommender selects top products and assembles the AM/PM routine
type Recommender struct{}

// NewRecommender creates a Recommender
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend builds the Recommendation from an already-ordered scored list
// ⭐ SSOT: S6 출력
//   - top3: 서로 다른 (brand, name) 상위 3개
//   - routine: 슬롯별 최고 점수 제품, 해당 카테고리 없으면 슬롯 생략
func (r *Recommender) Recommend(overall, skinAge float64, scored []contracts.ScoredProduct, catalog *contracts.Catalog) *contracts.Recommendation {
	return &contracts.Recommendation{
		OverallScore:   contracts.ClampScore(overall),
		SkinAge:        skinAge,
		Top3:           selectTop(scored, TopN),
		Routine:        contracts.Routine{AM: buildRoutine(AMSlots, scored, true), PM: buildRoutine(PMSlots, scored, false)},
		Summary:        []string{},
		CatalogVersion: catalog.Version(),
	}
}

func selectTop(scored []contracts.ScoredProduct, n int) []contracts.RankedProduct {
	top := make([]contracts.RankedProduct, 0, n)
	seen := make(map[string]bool, n)

	for _, sp := range scored {
		if len(top) == n {
			break
		}
		key := sp.Product.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		top = append(top, contracts.RankedProduct{
			Rank:       len(top) + 1,
			Product:    sp.Product,
			MatchScore: sp.MatchScore,
			Reasons:    append([]string{}, sp.Reasons...),
		})
	}
	return top
}

// buildRoutine: scored는 점수 내림차순이므로 카테고리별 첫 제품이 최고 점수
// AM 루틴에서는 night_only(레티노이드 등) 제품 제외
func buildRoutine(slots []contracts.Category, scored []contracts.ScoredProduct, daytime bool) []contracts.RoutineStep {
	steps := make([]contracts.RoutineStep, 0, len(slots))

	for _, slot := range slots {
		best, ok := bestForSlot(slot, scored, daytime)
		if !ok {
			continue
		}
		steps = append(steps, contracts.RoutineStep{
			Order:       len(steps) + 1,
			Slot:        slot,
			Product:     best.Product,
			Instruction: Instruction(slot, best.Product),
		})
	}
	return steps
}

func bestForSlot(slot contracts.Category, scored []contracts.ScoredProduct, daytime bool) (contracts.ScoredProduct, bool) {
	for _, sp := range scored {
		if sp.Product.Category != slot {
			continue
		}
		if daytime && sp.Product.Suitability.NightOnly {
			continue
		}
		return sp, true
	}
	return contracts.ScoredProduct{}, false
}

// Instruction renders the step text for a slot
func Instruction(slot contracts.Category, p contracts.Product) string {
	tmpl, ok := instructions[slot]
	if !ok {
		tmpl = "Use {product}"
	}
	return replaceProduct(tmpl, p.Name)
}
