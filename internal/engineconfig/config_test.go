package engineconfig

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

const defaultYAMLPath = "../../config/engine/default.yaml"

func TestLoad(t *testing.T) {
	if _, err := os.Stat(defaultYAMLPath); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(defaultYAMLPath)
	require.NoError(t, err)

	assert.Equal(t, "skin_advisor_default", cfg.Meta.ConfigID)
	assert.InDelta(t, 0.20, cfg.ScoreWeights["moisture"], 1e-9)
	assert.True(t, cfg.Normalization["acne"].Saturate)

	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	// 동일 설정 → 동일 해시
	hash2, _ := Hash(cfg)
	assert.Equal(t, hash, hash2, "hash not deterministic")

	t.Logf("config hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func TestDefaultMatchesYAML(t *testing.T) {
	if _, err := os.Stat(defaultYAMLPath); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, _, err := Load(defaultYAMLPath)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
	assert.Empty(t, Warn(Default()))
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("meta:\n  config_id: x\n  colour: blue\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrConfiguration))
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "missing config id",
			mutate: func(c *Config) { c.Meta.ConfigID = "" },
			field:  "meta.config_id",
		},
		{
			name:   "score weights do not sum to one",
			mutate: func(c *Config) { c.ScoreWeights["moisture"] = 0.5 },
			field:  "score_weights",
		},
		{
			name:   "unknown feature in score weights",
			mutate: func(c *Config) { c.ScoreWeights["elasticity"] = 0 },
			field:  "score_weights",
		},
		{
			name:   "negative score weight",
			mutate: func(c *Config) { c.ScoreWeights["pore"] = -0.1; c.ScoreWeights["redness"] = 0.3 },
			field:  "score_weights",
		},
		{
			name:   "age weights do not sum to one",
			mutate: func(c *Config) { c.Age.Weights["wrinkles"] = 0.1 },
			field:  "age.weights",
		},
		{
			name:   "missing normalization feature",
			mutate: func(c *Config) { delete(c.Normalization, "pore") },
			field:  "normalization",
		},
		{
			name: "inverted scale",
			mutate: func(c *Config) {
				s := c.Normalization["acne"]
				s.Min, s.Max = 50, 0
				c.Normalization["acne"] = s
			},
			field: "normalization.acne",
		},
		{
			name: "bad direction",
			mutate: func(c *Config) {
				s := c.Normalization["sebum"]
				s.Direction = "sideways"
				c.Normalization["sebum"] = s
			},
			field: "normalization.sebum.direction",
		},
		{
			name:   "age clamp inverted",
			mutate: func(c *Config) { c.Age.MinAge = 120 },
			field:  "age",
		},
		{
			name:   "uv saturation below threshold",
			mutate: func(c *Config) { c.Modulation.UV.Saturation = 2 },
			field:  "modulation.uv",
		},
		{
			name:   "negative boost",
			mutate: func(c *Config) { c.Modulation.Sensitivity.AcneBoost = -0.1 },
			field:  "modulation.sensitivity.acne_boost",
		},
		{
			name:   "young age band overlaps threshold",
			mutate: func(c *Config) { c.Modulation.Age.YoungMaxAge = 35 },
			field:  "modulation.age",
		},
		{
			name:   "negative young sebum boost",
			mutate: func(c *Config) { c.Modulation.Age.YoungSebumBoost = -0.1 },
			field:  "modulation.age.young_sebum_boost",
		},
		{
			name:   "zero max reasons",
			mutate: func(c *Config) { c.Scoring.MaxReasons = 0 },
			field:  "scoring.max_reasons",
		},
		{
			name:   "reason template for unknown feature",
			mutate: func(c *Config) { c.Reasons = map[string]string{"glow": "x"} },
			field:  "reasons",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)

			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.True(t, errors.Is(err, contracts.ErrConfiguration))
		})
	}
}

func TestWarn(t *testing.T) {
	cfg := Default()
	cfg.ScoreWeights["pigmentation"] = 0
	cfg.ScoreWeights["moisture"] = 0.30
	cfg.Modulation.Lifestyle.MaxUniformBoost = 0.8

	warnings := Warn(cfg)
	codes := make([]string, 0, len(warnings))
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	assert.ElementsMatch(t, []string{"ZERO_SCORE_WEIGHT", "AGGRESSIVE_LIFESTYLE"}, codes)
}

func TestHash_ChangesWithWeights(t *testing.T) {
	a, err := Hash(Default())
	require.NoError(t, err)

	cfg := Default()
	cfg.ScoreWeights["moisture"] = 0.25
	cfg.ScoreWeights["sebum"] = 0.10
	b, err := Hash(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestNewSnapshot(t *testing.T) {
	yamlData := []byte("test yaml content")

	snapshot, err := NewSnapshot(Default(), yamlData)
	require.NoError(t, err)

	assert.Equal(t, "skin_advisor_default", snapshot.ConfigID)
	assert.Equal(t, "1.0.0", snapshot.Version)
	assert.Len(t, snapshot.ConfigHash, 64)
	assert.Equal(t, "test yaml content", snapshot.ConfigYAML)
}

func TestLoadOrDefault_Empty(t *testing.T) {
	cfg, raw, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, strings.Contains(string(raw), "score_weights"))

	// 직렬화된 기본 설정은 다시 로드 가능해야 함
	reparsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, cfg, reparsed)
}

func TestValidateWeightsSum(t *testing.T) {
	tests := []struct {
		weights []float64
		target  float64
		valid   bool
	}{
		{[]float64{0.4, 0.35, 0.25}, 1.0, true},
		{[]float64{0.5, 0.5}, 1.0, true},
		{[]float64{0.3, 0.3, 0.3}, 1.0, false}, // 0.9
		{[]float64{}, 1.0, false},
	}

	for _, tc := range tests {
		err := validateWeightsSum(tc.weights, tc.target, 1e-6)
		if tc.valid && err != nil {
			t.Errorf("validateWeightsSum(%v) expected valid, got error: %v", tc.weights, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("validateWeightsSum(%v) expected error, got nil", tc.weights)
		}
	}
}
