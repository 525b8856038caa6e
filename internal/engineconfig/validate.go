package engineconfig

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is match contracts.ErrConfiguration
func (e ValidationError) Is(target error) bool {
	return target == contracts.ErrConfiguration
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 error 반환 (기동 중단, 자동 보정 없음)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ConfigID == "" {
		return ValidationError{"meta.config_id", "required"}
	}

	// === Normalization ===
	if err := validateFeatureKeys(keysOf(cfg.Normalization), true); err != nil {
		return ValidationError{"normalization", err.Error()}
	}
	for _, f := range contracts.Features {
		s := cfg.Normalization[string(f)]
		field := "normalization." + string(f)
		if s.Min >= s.Max {
			return ValidationError{field, "min must be < max"}
		}
		if s.Direction != HigherIsBetter && s.Direction != LowerIsBetter {
			return ValidationError{field + ".direction", fmt.Sprintf("must be %s or %s", HigherIsBetter, LowerIsBetter)}
		}
	}

	// === ScoreWeights ===
	if err := validateFeatureWeights(cfg.ScoreWeights); err != nil {
		return ValidationError{"score_weights", err.Error()}
	}

	// === Age ===
	if err := validateFeatureWeights(cfg.Age.Weights); err != nil {
		return ValidationError{"age.weights", err.Error()}
	}
	if cfg.Age.MinAge >= cfg.Age.MaxAge {
		return ValidationError{"age", "min_age must be < max_age"}
	}
	if cfg.Age.MinAge < 0 {
		return ValidationError{"age.min_age", "must be >= 0"}
	}
	if cfg.Age.YearsPerPoint < 0 {
		return ValidationError{"age.years_per_point", "must be >= 0"}
	}
	if cfg.Age.Baseline < contracts.ScoreMin || cfg.Age.Baseline > contracts.ScoreMax {
		return ValidationError{"age.baseline", "must be in range [0, 100]"}
	}

	// === Modulation ===
	m := cfg.Modulation
	if m.UV.Saturation <= m.UV.Threshold {
		return ValidationError{"modulation.uv", "saturation must be > threshold"}
	}
	if m.Humidity.DryThreshold >= m.Humidity.HumidThreshold {
		return ValidationError{"modulation.humidity", "dry_threshold must be < humid_threshold"}
	}
	if m.Humidity.DryThreshold <= 0 || m.Humidity.HumidThreshold >= 100 {
		return ValidationError{"modulation.humidity", "thresholds must be within (0, 100)"}
	}
	if m.Temperature.Cold >= m.Temperature.Hot {
		return ValidationError{"modulation.temperature", "cold must be < hot"}
	}
	if m.Lifestyle.SleepFloorHours >= m.Lifestyle.SleepTargetHours {
		return ValidationError{"modulation.lifestyle", "sleep_floor_hours must be < sleep_target_hours"}
	}
	if m.Lifestyle.WaterTargetML <= 0 {
		return ValidationError{"modulation.lifestyle.water_target_ml", "must be > 0"}
	}
	if m.Lifestyle.WashFreqTarget < 0 {
		return ValidationError{"modulation.lifestyle.wash_freq_target", "must be >= 0"}
	}

	boosts := []struct {
		field string
		value float64
	}{
		{"modulation.uv.pigmentation_boost", m.UV.PigmentationBoost},
		{"modulation.uv.redness_boost", m.UV.RednessBoost},
		{"modulation.humidity.dry_boost", m.Humidity.DryBoost},
		{"modulation.humidity.humid_boost", m.Humidity.HumidBoost},
		{"modulation.temperature.hot_boost", m.Temperature.HotBoost},
		{"modulation.temperature.cold_boost", m.Temperature.ColdBoost},
		{"modulation.lifestyle.sleep_penalty", m.Lifestyle.SleepPenalty},
		{"modulation.lifestyle.water_penalty", m.Lifestyle.WaterPenalty},
		{"modulation.lifestyle.max_uniform_boost", m.Lifestyle.MaxUniformBoost},
		{"modulation.lifestyle.wash_freq_step", m.Lifestyle.WashFreqStep},
		{"modulation.lifestyle.hot_wash_boost", m.Lifestyle.HotWashBoost},
		{"modulation.lifestyle.max_barrier_boost", m.Lifestyle.MaxBarrierBoost},
		{"modulation.sensitivity.redness_boost", m.Sensitivity.RednessBoost},
		{"modulation.sensitivity.acne_boost", m.Sensitivity.AcneBoost},
		{"modulation.age.wrinkles_boost", m.Age.WrinklesBoost},
		{"modulation.age.young_sebum_boost", m.Age.YoungSebumBoost},
	}
	for _, b := range boosts {
		if b.value < 0 || math.IsNaN(b.value) {
			return ValidationError{b.field, "must be >= 0"}
		}
	}

	if m.Age.YoungMaxAge > 0 && m.Age.Threshold > 0 && m.Age.YoungMaxAge >= m.Age.Threshold {
		return ValidationError{"modulation.age", "young_max_age must be < threshold"}
	}
	if m.Age.YoungSebumThreshold < contracts.ScoreMin || m.Age.YoungSebumThreshold > contracts.ScoreMax {
		return ValidationError{"modulation.age.young_sebum_threshold", "must be in range [0, 100]"}
	}

	// === Scoring ===
	if cfg.Scoring.TextureBonus < 0 {
		return ValidationError{"scoring.texture_bonus", "must be >= 0"}
	}
	if cfg.Scoring.SensitiveSafeBonus < 0 {
		return ValidationError{"scoring.sensitive_safe_bonus", "must be >= 0"}
	}
	if cfg.Scoring.MaxReasons < 1 {
		return ValidationError{"scoring.max_reasons", "must be >= 1"}
	}

	// === Reasons ===
	if err := validateFeatureKeys(keysOf(cfg.Reasons), false); err != nil {
		return ValidationError{"reasons", err.Error()}
	}
	for name, tmpl := range cfg.Reasons {
		if tmpl == "" {
			return ValidationError{"reasons." + name, "must not be empty"}
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 가중치 0 feature는 종합 점수에 반영되지 않음
	for _, f := range contracts.Features {
		if cfg.ScoreWeights[string(f)] == 0 {
			warnings = append(warnings, Warning{
				Code:    "ZERO_SCORE_WEIGHT",
				Message: fmt.Sprintf("%s 가중치 0: 종합 점수에 반영되지 않음", f),
			})
		}
	}

	if cfg.Modulation.Lifestyle.MaxUniformBoost > 0.5 {
		warnings = append(warnings, Warning{
			Code:    "AGGRESSIVE_LIFESTYLE",
			Message: "max_uniform_boost > 0.5: 생활습관 보정이 피부 측정값을 압도할 수 있음",
		})
	}

	if cfg.Modulation.UV.PigmentationBoost > 1.0 {
		warnings = append(warnings, Warning{
			Code:    "AGGRESSIVE_UV",
			Message: "uv.pigmentation_boost > 1.0: 자외선 강한 날 색소 제품만 추천될 수 있음",
		})
	}

	return warnings
}

// === Helper Functions ===

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateFeatureKeys rejects unknown names; requireAll also rejects missing ones
func validateFeatureKeys(keys []string, requireAll bool) error {
	seen := make(map[contracts.Feature]bool, len(keys))
	for _, k := range keys {
		f, err := contracts.ParseFeature(k)
		if err != nil {
			return err
		}
		seen[f] = true
	}
	if requireAll {
		for _, f := range contracts.Features {
			if !seen[f] {
				return fmt.Errorf("missing feature %q", f)
			}
		}
	}
	return nil
}

func validateFeatureWeights(weights map[string]float64) error {
	if err := validateFeatureKeys(keysOf(weights), false); err != nil {
		return err
	}
	values := make([]float64, 0, len(weights))
	for _, k := range keysOf(weights) {
		if weights[k] < 0 {
			return fmt.Errorf("%s must be >= 0, got %.4f", k, weights[k])
		}
		values = append(values, weights[k])
	}
	return validateWeightsSum(values, 1.0, 1e-6)
}

func validateWeightsSum(weights []float64, target float64, epsilon float64) error {
	if len(weights) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-target) > epsilon {
		return fmt.Errorf("must sum to %.2f, got %.4f", target, sum)
	}
	return nil
}

// FeatureWeights converts a validated name→weight table into a Feature-keyed map
// 누락된 feature는 0
func FeatureWeights(weights map[string]float64) map[contracts.Feature]float64 {
	out := make(map[contracts.Feature]float64, len(contracts.Features))
	for _, f := range contracts.Features {
		out[f] = weights[string(f)]
	}
	return out
}
