package contracts

// Normalizer maps raw readings onto [0,100] desirability (S1)
// ⭐ SSOT: S1 정규화 인터페이스
type Normalizer interface {
	Normalize(profile SkinProfile) (NormalizedProfile, error)
}

// Aggregator produces the overall score and deficiency vector (S2)
// ⭐ SSOT: S2 집계 인터페이스
type Aggregator interface {
	Aggregate(normalized NormalizedProfile) (float64, DeficiencyVector)
}

// AgeEstimator maps deficiency + chronological age to skin age (S3)
// ⭐ SSOT: S3 피부 나이 인터페이스
type AgeEstimator interface {
	Estimate(deficiency DeficiencyVector, chronologicalAge float64) float64
}

// ContextModulator adjusts deficiency urgency by context (S4)
// ⭐ SSOT: S4 보정 인터페이스 (입력 벡터를 변경하지 않음)
type ContextModulator interface {
	Modulate(deficiency DeficiencyVector, ctx ContextModifiers) DeficiencyVector
}

// CandidateScorer scores catalog products (S5)
// ⭐ SSOT: S5 후보 점수 인터페이스
type CandidateScorer interface {
	Score(deficiency DeficiencyVector, catalog *Catalog, prefs ScoringPrefs) []ScoredProduct
}

// Recommender selects top3 and builds the routine (S6)
// ⭐ SSOT: S6 추천 인터페이스
type Recommender interface {
	Recommend(overall, skinAge float64, scored []ScoredProduct, catalog *Catalog) *Recommendation
}
