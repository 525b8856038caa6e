package engineconfig

import "time"

// Config는 점수/추천 엔진의 전체 튜닝 테이블
// ⭐ SSOT: 가중치/보정 크기는 코드가 아니라 이 설정에서만 결정
type Config struct {
	Meta          Meta               `yaml:"meta" json:"meta"`
	Normalization map[string]Scale   `yaml:"normalization" json:"normalization"`
	ScoreWeights  map[string]float64 `yaml:"score_weights" json:"score_weights"` // 합 = 1.0
	Age           Age                `yaml:"age" json:"age"`
	Modulation    Modulation         `yaml:"modulation" json:"modulation"`
	Scoring       Scoring            `yaml:"scoring" json:"scoring"`
	Reasons       map[string]string  `yaml:"reasons,omitempty" json:"reasons,omitempty"` // feature → 템플릿 (선택)
}

// Meta 메타 정보
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
}

// Direction of a raw reading
const (
	HigherIsBetter = "higher_is_better"
	LowerIsBetter  = "lower_is_better"
)

// Scale S1: feature별 원시값 도메인
type Scale struct {
	Unit      string  `yaml:"unit" json:"unit"` // percent, count, index
	Min       float64 `yaml:"min" json:"min"`
	Max       float64 `yaml:"max" json:"max"`
	Direction string  `yaml:"direction" json:"direction"`
	Saturate  bool    `yaml:"saturate" json:"saturate"` // true: max 초과 시 clamp (count류)
}

// Age S3: 피부 나이 추정
type Age struct {
	Weights       map[string]float64 `yaml:"weights" json:"weights"` // 합 = 1.0
	Baseline      float64            `yaml:"baseline" json:"baseline"`
	YearsPerPoint float64            `yaml:"years_per_point" json:"years_per_point"`
	MinAge        float64            `yaml:"min_age" json:"min_age"`
	MaxAge        float64            `yaml:"max_age" json:"max_age"`
}

// Modulation S4: 컨텍스트 보정 크기
type Modulation struct {
	UV          UVModulation          `yaml:"uv" json:"uv"`
	Humidity    HumidityModulation    `yaml:"humidity" json:"humidity"`
	Temperature TemperatureModulation `yaml:"temperature" json:"temperature"`
	Lifestyle   LifestyleModulation   `yaml:"lifestyle" json:"lifestyle"`
	Sensitivity SensitivityModulation `yaml:"sensitivity" json:"sensitivity"`
	Age         AgeModulation         `yaml:"age" json:"age"`
}

// UVModulation: threshold 이하 보정 없음, saturation 이상 최대 보정
type UVModulation struct {
	Threshold         float64 `yaml:"threshold" json:"threshold"`
	Saturation        float64 `yaml:"saturation" json:"saturation"`
	PigmentationBoost float64 `yaml:"pigmentation_boost" json:"pigmentation_boost"`
	RednessBoost      float64 `yaml:"redness_boost" json:"redness_boost"`
}

type HumidityModulation struct {
	DryThreshold   float64 `yaml:"dry_threshold" json:"dry_threshold"`     // 이하: 건조
	HumidThreshold float64 `yaml:"humid_threshold" json:"humid_threshold"` // 이상: 다습
	DryBoost       float64 `yaml:"dry_boost" json:"dry_boost"`             // moisture
	HumidBoost     float64 `yaml:"humid_boost" json:"humid_boost"`         // sebum
}

type TemperatureModulation struct {
	Hot       float64 `yaml:"hot" json:"hot"`
	Cold      float64 `yaml:"cold" json:"cold"`
	HotBoost  float64 `yaml:"hot_boost" json:"hot_boost"`   // sebum
	ColdBoost float64 `yaml:"cold_boost" json:"cold_boost"` // moisture
}

type LifestyleModulation struct {
	SleepTargetHours float64 `yaml:"sleep_target_hours" json:"sleep_target_hours"`
	SleepFloorHours  float64 `yaml:"sleep_floor_hours" json:"sleep_floor_hours"` // 이하: 최대 패널티
	SleepPenalty     float64 `yaml:"sleep_penalty" json:"sleep_penalty"`
	WaterTargetML    float64 `yaml:"water_target_ml" json:"water_target_ml"`
	WaterPenalty     float64 `yaml:"water_penalty" json:"water_penalty"`
	MaxUniformBoost  float64 `yaml:"max_uniform_boost" json:"max_uniform_boost"`
	WashFreqTarget   float64 `yaml:"wash_freq_target" json:"wash_freq_target"`
	WashFreqStep     float64 `yaml:"wash_freq_step" json:"wash_freq_step"` // 초과 1회당
	HotWashBoost     float64 `yaml:"hot_wash_boost" json:"hot_wash_boost"`
	MaxBarrierBoost  float64 `yaml:"max_barrier_boost" json:"max_barrier_boost"`
}

type SensitivityModulation struct {
	RednessBoost float64 `yaml:"redness_boost" json:"redness_boost"`
	AcneBoost    float64 `yaml:"acne_boost" json:"acne_boost"`
}

// AgeModulation 나이대별 보정
// threshold 이상 → 주름 케어, young_max_age 이하 + 피지 결핍 young_sebum_threshold 초과 → 산뜻한 피지 케어
type AgeModulation struct {
	Threshold           int     `yaml:"threshold" json:"threshold"`
	WrinklesBoost       float64 `yaml:"wrinkles_boost" json:"wrinkles_boost"`
	YoungMaxAge         int     `yaml:"young_max_age" json:"young_max_age"`
	YoungSebumThreshold float64 `yaml:"young_sebum_threshold" json:"young_sebum_threshold"`
	YoungSebumBoost     float64 `yaml:"young_sebum_boost" json:"young_sebum_boost"`
}

// Scoring S5: 제품 매칭 보너스
type Scoring struct {
	TextureBonus       float64 `yaml:"texture_bonus" json:"texture_bonus"`
	SensitiveSafeBonus float64 `yaml:"sensitive_safe_bonus" json:"sensitive_safe_bonus"`
	MaxReasons         int     `yaml:"max_reasons" json:"max_reasons"`
}

// Snapshot 재현성 기록 (추천 이력과 함께 저장)
type Snapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	ConfigID   string    `json:"config_id"`
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}
