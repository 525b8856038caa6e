package s1_normalize

import (
	"math"
	"sort"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

// Normalizer maps raw per-feature readings onto [0,100] desirability
type Normalizer struct {
	scales map[contracts.Feature]engineconfig.Scale
}

// NewNormalizer creates a Normalizer from validated scales
func NewNormalizer(scales map[string]engineconfig.Scale) *Normalizer {
	n := &Normalizer{scales: make(map[contracts.Feature]engineconfig.Scale, len(scales))}
	for name, s := range scales {
		n.scales[contracts.Feature(name)] = s
	}
	return n
}

// Normalize validates every required reading and rescales it
// ⭐ SSOT: S1 → S2 정규화 (누락/범위 이탈 시 부분 결과 없이 실패)
func (n *Normalizer) Normalize(profile contracts.SkinProfile) (contracts.NormalizedProfile, error) {
	// 알 수 없는 feature 거부 (조용한 누락 방지)
	var unknown []string
	for f := range profile {
		if !f.Valid() {
			unknown = append(unknown, string(f))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		f := contracts.Feature(unknown[0])
		return nil, &contracts.MeasurementError{Feature: f, Value: profile[f], Reason: "unknown feature"}
	}

	out := make(contracts.NormalizedProfile, len(contracts.Features))
	for _, f := range contracts.Features {
		raw, ok := profile[f]
		if !ok {
			return nil, &contracts.MeasurementError{Feature: f, Value: math.NaN(), Reason: "missing"}
		}
		score, err := n.normalizeOne(f, raw)
		if err != nil {
			return nil, err
		}
		out[f] = score
	}
	return out, nil
}

func (n *Normalizer) normalizeOne(f contracts.Feature, raw float64) (float64, error) {
	scale, ok := n.scales[f]
	if !ok {
		return 0, &contracts.MeasurementError{Feature: f, Value: raw, Reason: "no scale configured"}
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &contracts.MeasurementError{Feature: f, Value: raw, Reason: "not a finite number"}
	}
	if raw < scale.Min {
		return 0, &contracts.MeasurementError{Feature: f, Value: raw, Reason: "below documented minimum"}
	}
	if raw > scale.Max && !scale.Saturate {
		return 0, &contracts.MeasurementError{Feature: f, Value: raw, Reason: "above documented maximum"}
	}

	// 선형 재조정 (count류는 max에서 포화)
	ratio := (math.Min(raw, scale.Max) - scale.Min) / (scale.Max - scale.Min)
	if scale.Direction == engineconfig.LowerIsBetter {
		ratio = 1 - ratio
	}
	return contracts.ClampScore(ratio * contracts.ScoreMax), nil
}
