package s5_candidates

import (
	"sort"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

// Scorer matches catalog products against a modulated deficiency vector
type Scorer struct {
	textureBonus       float64
	sensitiveSafeBonus float64
	maxReasons         int
	templates          ReasonTemplates
}

// NewScorer creates a Scorer from validated scoring settings
func NewScorer(cfg engineconfig.Scoring, reasonOverrides map[string]string) *Scorer {
	return &Scorer{
		textureBonus:       cfg.TextureBonus,
		sensitiveSafeBonus: cfg.SensitiveSafeBonus,
		maxReasons:         cfg.MaxReasons,
		templates:          NewReasonTemplates(reasonOverrides),
	}
}

// Score returns eligible products ordered by match score (desc, catalog order on ties)
// ⭐ SSOT: S5 → S6 후보 점수
//   - match_score = Σ deficiency[f] (f ∈ target_features) × 보너스
//   - 민감 피부 + sensitivity_safe 아님 → 제외 (감점 아님)
func (s *Scorer) Score(deficiency contracts.DeficiencyVector, catalog *contracts.Catalog, prefs contracts.ScoringPrefs) []contracts.ScoredProduct {
	scored := make([]contracts.ScoredProduct, 0, catalog.Len())

	for i := 0; i < catalog.Len(); i++ {
		p := catalog.At(i)
		if prefs.Sensitive && !p.Suitability.SensitivitySafe {
			continue
		}
		scored = append(scored, s.scoreOne(p, deficiency, prefs))
	}

	// stable: 동점이면 카탈로그 순서 유지
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	return scored
}

func (s *Scorer) scoreOne(p contracts.Product, deficiency contracts.DeficiencyVector, prefs contracts.ScoringPrefs) contracts.ScoredProduct {
	contributions := make(map[contracts.Feature]float64, len(p.TargetFeatures))
	base := 0.0
	for _, f := range contracts.Features {
		if !p.Targets(f) {
			continue
		}
		c := contracts.ClampScore(deficiency[f])
		contributions[f] = c
		base += c
	}

	multiplier := 1.0
	textureMatch := prefs.Texture != contracts.TextureAny && p.Suitability.Texture == prefs.Texture
	if textureMatch {
		multiplier *= 1 + s.textureBonus
	}
	safeMatch := prefs.Sensitive && p.Suitability.SensitivitySafe
	if safeMatch {
		multiplier *= 1 + s.sensitiveSafeBonus
	}

	return contracts.ScoredProduct{
		Product:       p,
		MatchScore:    base * multiplier,
		Reasons:       s.reasons(contributions, textureMatch, safeMatch, prefs.Texture),
		Contributions: contributions,
	}
}

// reasons: 기여도 내림차순 (동률은 feature 순서), 최대 maxReasons개
func (s *Scorer) reasons(contributions map[contracts.Feature]float64, textureMatch, safeMatch bool, tex contracts.Texture) []string {
	features := make([]contracts.Feature, 0, len(contributions))
	for _, f := range contracts.Features {
		if c, ok := contributions[f]; ok && c > 0 {
			features = append(features, f)
		}
	}
	sort.SliceStable(features, func(i, j int) bool {
		return contributions[features[i]] > contributions[features[j]]
	})

	out := make([]string, 0, s.maxReasons)
	for _, f := range features {
		if len(out) >= s.maxReasons {
			return out
		}
		out = append(out, s.templates.Feature(f, contributions[f]))
	}
	if textureMatch && len(out) < s.maxReasons {
		out = append(out, s.templates.Texture(tex))
	}
	if safeMatch && len(out) < s.maxReasons {
		out = append(out, s.templates.SensitiveSafe())
	}
	return out
}
