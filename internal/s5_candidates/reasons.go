package s5_candidates

import (
	"math"
	"strconv"
	"strings"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// ValuePlaceholder is replaced by the rounded deficiency in reason templates
const ValuePlaceholder = "{value}"

// defaultReasonTemplates: feature별 고정 템플릿 (설정 reasons로 덮어쓰기 가능)
var defaultReasonTemplates = map[contracts.Feature]string{
	contracts.FeatureMoisture:     "replenishes hydration for your moisture deficiency ({value}/100)",
	contracts.FeatureSebum:        "balances excess oil for your sebum deficiency ({value}/100)",
	contracts.FeatureAcne:         "calms breakouts for your acne deficiency ({value}/100)",
	contracts.FeatureWrinkles:     "supports firmness for your wrinkle deficiency ({value}/100)",
	contracts.FeaturePore:         "refines texture for your pore deficiency ({value}/100)",
	contracts.FeatureRedness:      "soothes irritation for your redness deficiency ({value}/100)",
	contracts.FeaturePigmentation: "evens tone for your pigmentation deficiency ({value}/100)",
}

const (
	reasonTextureMatch  = "matches your preferred texture ({texture})"
	reasonSensitiveSafe = "marked safe for sensitive skin"
)

// ReasonTemplates renders per-feature reasons
type ReasonTemplates struct {
	byFeature map[contracts.Feature]string
}

// NewReasonTemplates merges overrides (feature name → template) over the defaults
func NewReasonTemplates(overrides map[string]string) ReasonTemplates {
	t := ReasonTemplates{byFeature: make(map[contracts.Feature]string, len(defaultReasonTemplates))}
	for f, tmpl := range defaultReasonTemplates {
		t.byFeature[f] = tmpl
	}
	for name, tmpl := range overrides {
		f := contracts.Feature(name)
		if f.Valid() && tmpl != "" {
			t.byFeature[f] = tmpl
		}
	}
	return t
}

// Feature renders the reason for feature f with deficiency value v
func (t ReasonTemplates) Feature(f contracts.Feature, v float64) string {
	tmpl, ok := t.byFeature[f]
	if !ok {
		tmpl = "addresses your elevated " + string(f) + " deficiency ({value}/100)"
	}
	return strings.ReplaceAll(tmpl, ValuePlaceholder, strconv.Itoa(int(math.Round(v))))
}

// Texture renders the texture-match reason
func (t ReasonTemplates) Texture(tex contracts.Texture) string {
	return strings.ReplaceAll(reasonTextureMatch, "{texture}", string(tex))
}

// SensitiveSafe renders the sensitivity-safe reason
func (t ReasonTemplates) SensitiveSafe() string {
	return reasonSensitiveSafe
}
