package engineconfig

// Default returns the compiled-in engine configuration.
// config/engine/default.yaml 과 동일한 값을 유지해야 함 (TestDefaultMatchesYAML)
func Default() *Config {
	return &Config{
		Meta: Meta{
			ConfigID: "skin_advisor_default",
			Version:  "1.0.0",
		},
		Normalization: map[string]Scale{
			"moisture":     {Unit: "percent", Min: 0, Max: 100, Direction: HigherIsBetter},
			"sebum":        {Unit: "percent", Min: 0, Max: 100, Direction: LowerIsBetter},
			"acne":         {Unit: "count", Min: 0, Max: 50, Direction: LowerIsBetter, Saturate: true},
			"wrinkles":     {Unit: "index", Min: 0, Max: 100, Direction: LowerIsBetter},
			"pore":         {Unit: "index", Min: 0, Max: 100, Direction: LowerIsBetter},
			"redness":      {Unit: "index", Min: 0, Max: 100, Direction: LowerIsBetter},
			"pigmentation": {Unit: "index", Min: 0, Max: 100, Direction: LowerIsBetter},
		},
		ScoreWeights: map[string]float64{
			"moisture":     0.20,
			"sebum":        0.15,
			"acne":         0.20,
			"wrinkles":     0.15,
			"pore":         0.10,
			"redness":      0.10,
			"pigmentation": 0.10,
		},
		Age: Age{
			Weights: map[string]float64{
				"wrinkles":     0.30,
				"pigmentation": 0.20,
				"pore":         0.15,
				"moisture":     0.15,
				"redness":      0.10,
				"acne":         0.05,
				"sebum":        0.05,
			},
			Baseline:      40,
			YearsPerPoint: 0.2,
			MinAge:        10,
			MaxAge:        100,
		},
		Modulation: Modulation{
			UV: UVModulation{
				Threshold:         3,
				Saturation:        11,
				PigmentationBoost: 0.50,
				RednessBoost:      0.25,
			},
			Humidity: HumidityModulation{
				DryThreshold:   40,
				HumidThreshold: 70,
				DryBoost:       0.30,
				HumidBoost:     0.20,
			},
			Temperature: TemperatureModulation{
				Hot:       28,
				Cold:      10,
				HotBoost:  0.15,
				ColdBoost: 0.15,
			},
			Lifestyle: LifestyleModulation{
				SleepTargetHours: 7,
				SleepFloorHours:  4,
				SleepPenalty:     0.15,
				WaterTargetML:    1500,
				WaterPenalty:     0.10,
				MaxUniformBoost:  0.25,
				WashFreqTarget:   2,
				WashFreqStep:     0.10,
				HotWashBoost:     0.10,
				MaxBarrierBoost:  0.30,
			},
			Sensitivity: SensitivityModulation{
				RednessBoost: 0.30,
				AcneBoost:    0.15,
			},
			Age: AgeModulation{
				Threshold:           30,
				WrinklesBoost:       0.15,
				YoungMaxAge:         24,
				YoungSebumThreshold: 50,
				YoungSebumBoost:     0.10,
			},
		},
		Scoring: Scoring{
			TextureBonus:       0.10,
			SensitiveSafeBonus: 0.05,
			MaxReasons:         3,
		},
	}
}
