package s3_age

import (
	"math"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

// Estimator maps a deficiency vector plus chronological age to a skin age
type Estimator struct {
	weights       map[contracts.Feature]float64
	baseline      float64
	yearsPerPoint float64
	minAge        float64
	maxAge        float64
}

// NewEstimator creates an Estimator from validated age settings
func NewEstimator(cfg engineconfig.Age) *Estimator {
	return &Estimator{
		weights:       engineconfig.FeatureWeights(cfg.Weights),
		baseline:      cfg.Baseline,
		yearsPerPoint: cfg.YearsPerPoint,
		minAge:        cfg.MinAge,
		maxAge:        cfg.MaxAge,
	}
}

// AgingScore is the age-weighted deficiency in [0,100]
func (e *Estimator) AgingScore(deficiency contracts.DeficiencyVector) float64 {
	score := 0.0
	for _, f := range contracts.Features {
		score += e.weights[f] * contracts.ClampScore(deficiency[f])
	}
	return contracts.ClampScore(score)
}

// Estimate returns age + yearsPerPoint*(agingScore - baseline), clamped and rounded to 0.1
// ⭐ SSOT: S3 피부 나이 (동일 입력 → 동일 출력)
func (e *Estimator) Estimate(deficiency contracts.DeficiencyVector, chronologicalAge float64) float64 {
	if math.IsNaN(chronologicalAge) {
		chronologicalAge = contracts.DefaultAge
	}
	offset := e.yearsPerPoint * (e.AgingScore(deficiency) - e.baseline)
	age := math.Max(e.minAge, math.Min(e.maxAge, chronologicalAge+offset))
	return contracts.Round1(age)
}
