package contracts

// Input is everything the engine needs besides the catalog
type Input struct {
	Profile SkinProfile      `json:"profile"`
	Context ContextModifiers `json:"context"`
}

// ScoredProduct is a catalog product matched against a deficiency vector
// ⭐ SSOT: S5 → S6 전달
type ScoredProduct struct {
	Product       Product             `json:"product"`
	MatchScore    float64             `json:"match_score"`
	Reasons       []string            `json:"reasons"`
	Contributions map[Feature]float64 `json:"contributions,omitempty"`
}

// RankedProduct is one top3 entry
type RankedProduct struct {
	Rank       int      `json:"rank"`
	Product    Product  `json:"product"`
	MatchScore float64  `json:"match_score"`
	Reasons    []string `json:"reasons"`
}

// RoutineStep is one filled routine slot
type RoutineStep struct {
	Order       int      `json:"order"`
	Slot        Category `json:"slot"`
	Product     Product  `json:"product"`
	Instruction string   `json:"instruction"`
}

// Routine is the ordered AM/PM plan
type Routine struct {
	AM []RoutineStep `json:"am"`
	PM []RoutineStep `json:"pm"`
}

// Recommendation is the engine output
// ⭐ SSOT: 엔진 출력 (영속화/표시 계층이 소비)
type Recommendation struct {
	OverallScore   float64          `json:"overall_score"` // 0 ~ 100
	SkinAge        float64          `json:"skin_age"`
	Top3           []RankedProduct  `json:"top3"`
	Routine        Routine          `json:"routine"`
	Summary        []string         `json:"summary"`
	Deficiency     DeficiencyVector `json:"deficiency"` // 보정 후
	CatalogVersion string           `json:"catalog_version"`
}

// TopNames returns top3 product names in rank order
func (r *Recommendation) TopNames() []string {
	names := make([]string, 0, len(r.Top3))
	for _, p := range r.Top3 {
		names = append(names, p.Product.Name)
	}
	return names
}
