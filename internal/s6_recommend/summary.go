package s6_recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

const (
	// UVHighIndex WHO 기준 "높음" 이상
	UVHighIndex = 6.0
	// NeedHigh 결핍이 이 값 이상이면 요약에 별도 언급
	NeedHigh = 60.0
	// AgeGapNotice 피부 나이와 실제 나이 차이가 이 이상이면 언급
	AgeGapNotice = 3.0
)

// Summarizer renders the fixed set of summary lines
type Summarizer struct {
	dryThreshold   float64
	humidThreshold float64
}

// NewSummarizer reuses the humidity thresholds of the modulation settings
func NewSummarizer(cfg engineconfig.Modulation) *Summarizer {
	return &Summarizer{
		dryThreshold:   cfg.Humidity.DryThreshold,
		humidThreshold: cfg.Humidity.HumidThreshold,
	}
}

// Summarize returns summary lines in a fixed order
func (s *Summarizer) Summarize(rec *contracts.Recommendation, deficiency contracts.DeficiencyVector, ctx contracts.ContextModifiers) []string {
	lines := []string{}

	if f, v := deficiency.Max(); f != "" && v > 0 {
		lines = append(lines, fmt.Sprintf("Your biggest need today is %s (%d/100)", f, roundInt(v)))
	}

	if w := ctx.Weather; w != nil {
		if w.UVIndex >= UVHighIndex {
			lines = append(lines, fmt.Sprintf("UV index %.0f is high today: sunscreen is essential", w.UVIndex))
		}
		switch {
		case w.Humidity <= s.dryThreshold:
			lines = append(lines, fmt.Sprintf("Dry air (%.0f%% humidity): prioritise hydration", w.Humidity))
		case w.Humidity >= s.humidThreshold:
			lines = append(lines, fmt.Sprintf("Humid air (%.0f%% humidity): keep layers light", w.Humidity))
		}
	}

	if deficiency[contracts.FeatureMoisture] >= NeedHigh {
		lines = append(lines, "Your skin barrier looks dehydrated")
	}
	if deficiency[contracts.FeatureAcne] >= NeedHigh {
		lines = append(lines, "Active breakouts detected: focus on gentle acne care")
	}

	age := float64(ctx.Pref.AgeOrDefault())
	switch gap := rec.SkinAge - age; {
	case gap >= AgeGapNotice:
		lines = append(lines, fmt.Sprintf("Estimated skin age is %.1f years above your age", gap))
	case gap <= -AgeGapNotice:
		lines = append(lines, fmt.Sprintf("Estimated skin age is %.1f years below your age", -gap))
	}

	if ctx.Sensitive() {
		lines = append(lines, "Products were limited to sensitivity-safe options")
	}
	if len(rec.Top3) == 0 {
		lines = append(lines, "No matching products are available right now")
	}
	return lines
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func replaceProduct(tmpl, name string) string {
	return strings.ReplaceAll(tmpl, "{product}", name)
}
