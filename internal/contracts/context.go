package contracts

import (
	"fmt"
	"strings"
)

// Weather is the ambient condition at recommendation time
// nil *Weather = 날씨 정보 없음 (보정 생략)
type Weather struct {
	Humidity    float64 `json:"humidity"`    // %
	UVIndex     float64 `json:"uv_index"`    // 0 ~ 11+
	Temperature float64 `json:"temperature"` // °C
	Source      string  `json:"source,omitempty"`
}

// WashTemp is the usual face-wash water temperature
type WashTemp string

const (
	WashCold WashTemp = "cold"
	WashWarm WashTemp = "warm"
	WashHot  WashTemp = "hot"
)

// ParseWashTemp accepts cold/warm/hot; "normal" is treated as warm
func ParseWashTemp(s string) (WashTemp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cold":
		return WashCold, nil
	case "warm", "normal", "":
		return WashWarm, nil
	case "hot":
		return WashHot, nil
	default:
		return "", fmt.Errorf("unknown wash temp %q", s)
	}
}

// Neutral lifestyle values used when a field is not reported
const (
	NeutralSleepHours = 7.0
	NeutralWaterML    = 1500.0
	NeutralWashFreq   = 2.0
	NeutralWashTemp   = WashWarm
	DefaultAge        = 25
)

// Lifestyle holds self-reported habits; nil fields mean "not reported"
type Lifestyle struct {
	SleepHours7d   *float64  `json:"sleep_hours_7d,omitempty"`
	WaterIntakeML  *float64  `json:"water_intake_ml,omitempty"`
	WashFreqPerDay *float64  `json:"wash_freq_per_day,omitempty"`
	WashTemp       *WashTemp `json:"wash_temp,omitempty"`
	Sensitive      *bool     `json:"sensitivity,omitempty"`
}

// Sleep returns average sleep hours or the neutral value
func (l *Lifestyle) Sleep() float64 {
	if l == nil || l.SleepHours7d == nil {
		return NeutralSleepHours
	}
	return *l.SleepHours7d
}

// Water returns daily water intake (ml) or the neutral value
func (l *Lifestyle) Water() float64 {
	if l == nil || l.WaterIntakeML == nil {
		return NeutralWaterML
	}
	return *l.WaterIntakeML
}

// WashFreq returns washes per day or the neutral value
func (l *Lifestyle) WashFreq() float64 {
	if l == nil || l.WashFreqPerDay == nil {
		return NeutralWashFreq
	}
	return *l.WashFreqPerDay
}

// Wash returns the wash temperature or the neutral value
func (l *Lifestyle) Wash() WashTemp {
	if l == nil || l.WashTemp == nil || *l.WashTemp == "" {
		return NeutralWashTemp
	}
	return *l.WashTemp
}

// IsSensitive reports self-reported sensitivity (default false)
func (l *Lifestyle) IsSensitive() bool {
	return l != nil && l.Sensitive != nil && *l.Sensitive
}

// Texture is a product texture preference
type Texture string

const (
	TextureAny    Texture = ""
	TextureGel    Texture = "gel"
	TextureCream  Texture = "cream"
	TextureLotion Texture = "lotion"
	TextureOil    Texture = "oil"
	TextureBalm   Texture = "balm"
)

// ParseTexture accepts the known textures; empty means no preference
func ParseTexture(s string) (Texture, error) {
	t := Texture(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TextureAny, TextureGel, TextureCream, TextureLotion, TextureOil, TextureBalm:
		return t, nil
	default:
		return "", fmt.Errorf("unknown texture %q", s)
	}
}

// UserPref holds user preferences supplied per call
type UserPref struct {
	Age     int     `json:"age"`
	Texture Texture `json:"pref_texture,omitempty"`
}

// AgeOrDefault returns the age, falling back to DefaultAge when unset
func (p UserPref) AgeOrDefault() int {
	if p.Age <= 0 {
		return DefaultAge
	}
	return p.Age
}

// ContextModifiers bundles all per-call context
// ⭐ SSOT: S4 보정 입력
type ContextModifiers struct {
	Weather   *Weather   `json:"weather,omitempty"`
	Lifestyle *Lifestyle `json:"lifestyle,omitempty"`
	Pref      UserPref   `json:"user_pref"`
}

// Sensitive reports whether the user declared sensitive skin
func (c ContextModifiers) Sensitive() bool {
	return c.Lifestyle.IsSensitive()
}

// ScoringPrefs derives the preferences the candidate scorer needs
func (c ContextModifiers) ScoringPrefs() ScoringPrefs {
	return ScoringPrefs{
		Texture:   c.Pref.Texture,
		Sensitive: c.Sensitive(),
	}
}

// ScoringPrefs are the user preferences relevant to product matching
type ScoringPrefs struct {
	Texture   Texture `json:"texture,omitempty"`
	Sensitive bool    `json:"sensitive"`
}
