package s4_context

import (
	"math"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

// Modulator adjusts deficiency urgency using weather, lifestyle and sensitivity
type Modulator struct {
	cfg engineconfig.Modulation
}

// NewModulator creates a Modulator from validated modulation settings
func NewModulator(cfg engineconfig.Modulation) *Modulator {
	return &Modulator{cfg: cfg}
}

// Modulate returns an adjusted copy of deficiency; the input is never mutated
// ⭐ SSOT: S4 보정 순서 = 날씨 → 생활습관(습관, 나이) → 민감도
func (m *Modulator) Modulate(deficiency contracts.DeficiencyVector, ctx contracts.ContextModifiers) contracts.DeficiencyVector {
	out := deficiency.Clone()
	for _, f := range contracts.Features {
		out[f] = contracts.ClampScore(out[f])
	}

	m.applyWeather(out, ctx.Weather)
	m.applyLifestyle(out, ctx.Lifestyle, ctx.Pref)
	m.applySensitivity(out, ctx.Sensitive())

	return out
}

// applyWeather: 날씨 없음 = 보정 없음
func (m *Modulator) applyWeather(d contracts.DeficiencyVector, w *contracts.Weather) {
	if w == nil {
		return
	}

	// UV: threshold ~ saturation 구간 선형 증가
	uv := m.cfg.UV
	r := ramp(w.UVIndex, uv.Threshold, uv.Saturation)
	scale(d, contracts.FeaturePigmentation, 1+uv.PigmentationBoost*r)
	scale(d, contracts.FeatureRedness, 1+uv.RednessBoost*r)

	h := m.cfg.Humidity
	switch {
	case w.Humidity <= h.DryThreshold:
		scale(d, contracts.FeatureMoisture, 1+h.DryBoost)
	case w.Humidity >= h.HumidThreshold:
		scale(d, contracts.FeatureSebum, 1+h.HumidBoost)
	}

	t := m.cfg.Temperature
	switch {
	case w.Temperature >= t.Hot:
		scale(d, contracts.FeatureSebum, 1+t.HotBoost)
	case w.Temperature <= t.Cold:
		scale(d, contracts.FeatureMoisture, 1+t.ColdBoost)
	}
}

// applyLifestyle: 습관 보정 후 나이 보정 (설문이 없어도 나이는 적용)
func (m *Modulator) applyLifestyle(d contracts.DeficiencyVector, l *contracts.Lifestyle, pref contracts.UserPref) {
	m.applyHabits(d, l)
	m.applyAge(d, pref)
}

// applyHabits: 수면/수분 부족은 전체 균일 패널티, 세안 습관은 장벽 스트레스
func (m *Modulator) applyHabits(d contracts.DeficiencyVector, l *contracts.Lifestyle) {
	if l == nil {
		return
	}
	c := m.cfg.Lifestyle

	sleepR := ramp(c.SleepTargetHours-l.Sleep(), 0, c.SleepTargetHours-c.SleepFloorHours)
	waterR := ramp(c.WaterTargetML-l.Water(), 0, c.WaterTargetML)
	uniform := math.Min(c.MaxUniformBoost, c.SleepPenalty*sleepR+c.WaterPenalty*waterR)
	if uniform > 0 {
		for _, f := range contracts.Features {
			scale(d, f, 1+uniform)
		}
	}

	barrier := 0.0
	if extra := l.WashFreq() - c.WashFreqTarget; extra > 0 {
		barrier += c.WashFreqStep * extra
	}
	if l.Wash() == contracts.WashHot {
		barrier += c.HotWashBoost
	}
	barrier = math.Min(c.MaxBarrierBoost, barrier)
	if barrier > 0 {
		scale(d, contracts.FeatureSebum, 1+barrier)
		scale(d, contracts.FeatureMoisture, 1+barrier)
	}
}

// applyAge: 일정 나이 이상이면 주름 케어, 20대 초반 지성이면 피지 케어
func (m *Modulator) applyAge(d contracts.DeficiencyVector, pref contracts.UserPref) {
	a := m.cfg.Age
	age := pref.AgeOrDefault()
	switch {
	case a.Threshold > 0 && age >= a.Threshold:
		scale(d, contracts.FeatureWrinkles, 1+a.WrinklesBoost)
	case a.YoungMaxAge > 0 && age <= a.YoungMaxAge && d[contracts.FeatureSebum] > a.YoungSebumThreshold:
		scale(d, contracts.FeatureSebum, 1+a.YoungSebumBoost)
	}
}

func (m *Modulator) applySensitivity(d contracts.DeficiencyVector, sensitive bool) {
	if !sensitive {
		return
	}
	s := m.cfg.Sensitivity
	scale(d, contracts.FeatureRedness, 1+s.RednessBoost)
	scale(d, contracts.FeatureAcne, 1+s.AcneBoost)
}

// scale multiplies d[f] by factor and clamps to [0,100]
// 이미 100인 결핍은 어떤 보정으로도 더 오르지 않음
func scale(d contracts.DeficiencyVector, f contracts.Feature, factor float64) {
	d[f] = contracts.ClampScore(d[f] * factor)
}

// ramp maps v linearly from [lo,hi] onto [0,1]
func ramp(v, lo, hi float64) float64 {
	if hi <= lo || math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
}
