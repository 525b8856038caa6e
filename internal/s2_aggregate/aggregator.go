package s2_aggregate

import (
	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// Aggregator combines normalized features into an overall score
type Aggregator struct {
	weights map[contracts.Feature]float64 // 합 = 1.0 (engineconfig에서 검증)
}

// NewAggregator creates an Aggregator from a validated weight table
func NewAggregator(weights map[contracts.Feature]float64) *Aggregator {
	w := make(map[contracts.Feature]float64, len(weights))
	for f, v := range weights {
		w[f] = v
	}
	return &Aggregator{weights: w}
}

// Aggregate returns the overall score and the per-feature deficiency vector
// ⭐ SSOT: S2 → S3/S4 (overall ∈ [0,100], deficiency = 100 - normalized)
func (a *Aggregator) Aggregate(normalized contracts.NormalizedProfile) (float64, contracts.DeficiencyVector) {
	overall := 0.0
	deficiency := make(contracts.DeficiencyVector, len(contracts.Features))

	// 고정 순서 합산 (부동소수 결과 재현성)
	for _, f := range contracts.Features {
		v := contracts.ClampScore(normalized[f])
		overall += a.weights[f] * v
		deficiency[f] = contracts.ClampScore(contracts.ScoreMax - v)
	}

	return contracts.ClampScore(overall), deficiency
}
