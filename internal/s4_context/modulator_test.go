package s4_context

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
)

func newTestModulator() *Modulator {
	return NewModulator(engineconfig.Default().Modulation)
}

func baseDeficiency() contracts.DeficiencyVector {
	return contracts.DeficiencyVector{
		contracts.FeatureMoisture:     60,
		contracts.FeatureSebum:        60,
		contracts.FeatureAcne:         40,
		contracts.FeatureWrinkles:     10,
		contracts.FeaturePore:         30,
		contracts.FeatureRedness:      15,
		contracts.FeaturePigmentation: 20,
	}
}

func ptr[T any](v T) *T { return &v }

func TestModulator_NoContextIsIdentity(t *testing.T) {
	m := newTestModulator()
	d := baseDeficiency()

	out := m.Modulate(d, contracts.ContextModifiers{Pref: contracts.UserPref{Age: 25}})
	assert.Equal(t, d, out)
}

func TestModulator_DoesNotMutateInput(t *testing.T) {
	m := newTestModulator()
	d := baseDeficiency()
	before := d.Clone()

	ctx := contracts.ContextModifiers{
		Weather:   &contracts.Weather{Humidity: 20, UVIndex: 11, Temperature: 35},
		Lifestyle: &contracts.Lifestyle{SleepHours7d: ptr(4.0), Sensitive: ptr(true)},
		Pref:      contracts.UserPref{Age: 45},
	}
	out := m.Modulate(d, ctx)

	assert.Equal(t, before, d)
	assert.NotEqual(t, d, out)
}

func TestModulator_Weather(t *testing.T) {
	m := newTestModulator()

	tests := []struct {
		name    string
		weather contracts.Weather
		check   func(t *testing.T, out contracts.DeficiencyVector)
	}{
		{
			name:    "high uv boosts pigmentation and redness",
			weather: contracts.Weather{Humidity: 50, UVIndex: 11, Temperature: 20},
			check: func(t *testing.T, out contracts.DeficiencyVector) {
				assert.InDelta(t, 30.0, out[contracts.FeaturePigmentation], 1e-9) // 20 * 1.5
				assert.InDelta(t, 18.75, out[contracts.FeatureRedness], 1e-9)     // 15 * 1.25
				assert.InDelta(t, 60.0, out[contracts.FeatureMoisture], 1e-9)
			},
		},
		{
			name:    "low uv leaves pigmentation alone",
			weather: contracts.Weather{Humidity: 50, UVIndex: 2, Temperature: 20},
			check: func(t *testing.T, out contracts.DeficiencyVector) {
				assert.InDelta(t, 20.0, out[contracts.FeaturePigmentation], 1e-9)
			},
		},
		{
			name:    "dry air boosts moisture",
			weather: contracts.Weather{Humidity: 30, UVIndex: 0, Temperature: 20},
			check: func(t *testing.T, out contracts.DeficiencyVector) {
				assert.InDelta(t, 78.0, out[contracts.FeatureMoisture], 1e-9) // 60 * 1.3
				assert.InDelta(t, 60.0, out[contracts.FeatureSebum], 1e-9)
			},
		},
		{
			name:    "humid air boosts sebum",
			weather: contracts.Weather{Humidity: 85, UVIndex: 0, Temperature: 20},
			check: func(t *testing.T, out contracts.DeficiencyVector) {
				assert.InDelta(t, 72.0, out[contracts.FeatureSebum], 1e-9) // 60 * 1.2
				assert.InDelta(t, 60.0, out[contracts.FeatureMoisture], 1e-9)
			},
		},
		{
			name:    "hot and humid stays bounded",
			weather: contracts.Weather{Humidity: 95, UVIndex: 0, Temperature: 35},
			check: func(t *testing.T, out contracts.DeficiencyVector) {
				assert.InDelta(t, 82.8, out[contracts.FeatureSebum], 1e-9) // 60 * 1.2 * 1.15
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := tc.weather
			out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{Weather: &w})
			tc.check(t, out)
		})
	}
}

func TestModulator_UVIsMonotonic(t *testing.T) {
	m := newTestModulator()
	prev := -1.0
	for uv := 0.0; uv <= 14; uv++ {
		out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{
			Weather: &contracts.Weather{Humidity: 50, UVIndex: uv, Temperature: 20},
		})
		assert.GreaterOrEqual(t, out[contracts.FeaturePigmentation], prev)
		prev = out[contracts.FeaturePigmentation]
	}
}

func TestModulator_Lifestyle(t *testing.T) {
	m := newTestModulator()

	t.Run("neutral lifestyle is identity", func(t *testing.T) {
		out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{Lifestyle: &contracts.Lifestyle{}})
		assert.Equal(t, baseDeficiency(), out)
	})

	t.Run("short sleep raises every feature uniformly", func(t *testing.T) {
		out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{
			Lifestyle: &contracts.Lifestyle{SleepHours7d: ptr(4.0)},
		})
		for _, f := range contracts.Features {
			assert.InDelta(t, baseDeficiency()[f]*1.15, out[f], 1e-9, f)
		}
	})

	t.Run("uniform penalty is capped", func(t *testing.T) {
		out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{
			Lifestyle: &contracts.Lifestyle{SleepHours7d: ptr(2.0), WaterIntakeML: ptr(0.0)},
		})
		// 0.15 + 0.10 = 0.25 == cap
		assert.InDelta(t, 10*1.25, out[contracts.FeatureWrinkles], 1e-9)
	})

	t.Run("frequent hot washing stresses the barrier", func(t *testing.T) {
		hot := contracts.WashHot
		out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{
			Lifestyle: &contracts.Lifestyle{WashFreqPerDay: ptr(4.0), WashTemp: &hot},
		})
		// (4-2)*0.1 + 0.1 = 0.3
		assert.InDelta(t, 78.0, out[contracts.FeatureSebum], 1e-9)
		assert.InDelta(t, 78.0, out[contracts.FeatureMoisture], 1e-9)
		assert.InDelta(t, 40.0, out[contracts.FeatureAcne], 1e-9)
	})
}

func TestModulator_AgeAndSensitivity(t *testing.T) {
	m := newTestModulator()

	out := m.Modulate(baseDeficiency(), contracts.ContextModifiers{
		Lifestyle: &contracts.Lifestyle{Sensitive: ptr(true)},
		Pref:      contracts.UserPref{Age: 35},
	})

	assert.InDelta(t, 11.5, out[contracts.FeatureWrinkles], 1e-9) // 10 * 1.15
	assert.InDelta(t, 19.5, out[contracts.FeatureRedness], 1e-9)  // 15 * 1.3
	assert.InDelta(t, 46.0, out[contracts.FeatureAcne], 1e-9)     // 40 * 1.15
}

func TestModulator_Bounded(t *testing.T) {
	m := newTestModulator()
	d := contracts.DeficiencyVector{}
	for _, f := range contracts.Features {
		d[f] = 95
	}
	hot := contracts.WashHot

	out := m.Modulate(d, contracts.ContextModifiers{
		Weather:   &contracts.Weather{Humidity: 10, UVIndex: 12, Temperature: 2},
		Lifestyle: &contracts.Lifestyle{SleepHours7d: ptr(3.0), WaterIntakeML: ptr(200.0), WashFreqPerDay: ptr(6.0), WashTemp: &hot, Sensitive: ptr(true)},
		Pref:      contracts.UserPref{Age: 60},
	})

	for _, f := range contracts.Features {
		assert.LessOrEqual(t, out[f], 100.0, f)
		assert.GreaterOrEqual(t, out[f], 95.0, f)
	}
}

func TestModulator_YoungOilySkin(t *testing.T) {
	m := newTestModulator()

	tests := []struct {
		name  string
		age   int
		sebum float64
		want  float64
	}{
		{"young and oily", 22, 60, 66},   // 60 * 1.1
		{"young band edge", 24, 80, 88},  // 80 * 1.1
		{"young but not oily", 22, 50, 50},
		{"oily but past young band", 25, 60, 60},
		{"age unset uses default 25", 0, 60, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := baseDeficiency()
			d[contracts.FeatureSebum] = tc.sebum

			out := m.Modulate(d, contracts.ContextModifiers{Pref: contracts.UserPref{Age: tc.age}})
			assert.InDelta(t, tc.want, out[contracts.FeatureSebum], 1e-9)
			assert.InDelta(t, d[contracts.FeatureWrinkles], out[contracts.FeatureWrinkles], 1e-9)
		})
	}
}

func TestModulator_UVCannotRaiseSaturatedPigmentation(t *testing.T) {
	m := newTestModulator()
	d := baseDeficiency()
	d[contracts.FeaturePigmentation] = 100

	calm := m.Modulate(d, contracts.ContextModifiers{Weather: &contracts.Weather{Humidity: 50, UVIndex: 0, Temperature: 20}})
	sunny := m.Modulate(d, contracts.ContextModifiers{Weather: &contracts.Weather{Humidity: 50, UVIndex: 10, Temperature: 20}})

	// 범위 불변식이 우선: 포화된 결핍은 UV로 더 오르지 않음
	assert.Equal(t, 100.0, calm[contracts.FeaturePigmentation])
	assert.Equal(t, 100.0, sunny[contracts.FeaturePigmentation])

	// 포화되지 않은 redness는 여전히 UV로 증가
	assert.Greater(t, sunny[contracts.FeatureRedness], calm[contracts.FeatureRedness])
}
