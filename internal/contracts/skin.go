package contracts

import (
	"fmt"
	"math"
)

// Feature is one measured skin attribute
type Feature string

const (
	FeatureMoisture     Feature = "moisture"
	FeatureSebum        Feature = "sebum"
	FeatureAcne         Feature = "acne"
	FeatureWrinkles     Feature = "wrinkles"
	FeaturePore         Feature = "pore"
	FeatureRedness      Feature = "redness"
	FeaturePigmentation Feature = "pigmentation"
)

// Features is the canonical feature order
// ⭐ SSOT: 모든 feature 순회는 이 순서를 따름 (결과 재현성)
var Features = []Feature{
	FeatureMoisture,
	FeatureSebum,
	FeatureAcne,
	FeatureWrinkles,
	FeaturePore,
	FeatureRedness,
	FeaturePigmentation,
}

// Valid reports whether f is one of the known features
func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// Index returns the position of f in Features, or -1
func (f Feature) Index() int {
	for i, known := range Features {
		if f == known {
			return i
		}
	}
	return -1
}

// ParseFeature converts a name into a Feature
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown feature %q", s)
	}
	return f, nil
}

// SkinProfile holds raw readings per feature in each feature's native unit
// ⭐ SSOT: 비전 분석 결과 → S1 입력
type SkinProfile map[Feature]float64

// NormalizedProfile maps feature → desirability in [0,100] (100 = optimal)
type NormalizedProfile map[Feature]float64

// DeficiencyVector maps feature → unmet need in [0,100]
type DeficiencyVector map[Feature]float64

// Clone returns an independent copy
func (d DeficiencyVector) Clone() DeficiencyVector {
	out := make(DeficiencyVector, len(d))
	for f, v := range d {
		out[f] = v
	}
	return out
}

// Max returns the feature with the largest deficiency (canonical order breaks ties)
func (d DeficiencyVector) Max() (Feature, float64) {
	var best Feature
	bestVal := -1.0
	for _, f := range Features {
		if v, ok := d[f]; ok && v > bestVal {
			best, bestVal = f, v
		}
	}
	return best, bestVal
}

const (
	ScoreMin = 0.0
	ScoreMax = 100.0
)

// ClampScore bounds v to [0,100]; NaN becomes 0
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return ScoreMin
	}
	return math.Max(ScoreMin, math.Min(ScoreMax, v))
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
