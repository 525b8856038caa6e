package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/skinadvisor/backend/internal/advisor"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

var errInvalidRequest = errors.New("invalid request")

// RecommendRequest is the body of POST /api/recommend and of each kiosk message
type RecommendRequest struct {
	UserID     string             `json:"user_id" validate:"omitempty,max=50"`
	AnalysisID *int64             `json:"analysis_id" validate:"omitempty,gt=0"`
	Profile    map[string]float64 `json:"profile" validate:"required_without=AnalysisID"`
	Weather    *WeatherInput      `json:"weather"`
	Lifestyle  *LifestyleInput    `json:"lifestyle"`
	UserPref   UserPrefInput      `json:"user_pref"`
}

// AnalysisRequest is the body of POST /api/analysis
type AnalysisRequest struct {
	Profile map[string]float64 `json:"profile" validate:"required,min=1"`
}

// WeatherInput overrides the weather provider
type WeatherInput struct {
	Humidity    float64 `json:"humidity" validate:"gte=0,lte=100"`
	UVIndex     float64 `json:"uv_index" validate:"gte=0,lte=20"`
	Temperature float64 `json:"temperature" validate:"gte=-50,lte=60"`
}

// LifestyleInput is the self-reported questionnaire
type LifestyleInput struct {
	SleepHours7d   *float64 `json:"sleep_hours_7d" validate:"omitempty,gte=0,lte=24"`
	WaterIntakeML  *float64 `json:"water_intake_ml" validate:"omitempty,gte=0,lte=10000"`
	WashFreqPerDay *float64 `json:"wash_freq_per_day" validate:"omitempty,gte=0,lte=10"`
	WashTemp       string   `json:"wash_temp" validate:"omitempty,oneof=cold warm normal hot"`
	Sensitivity    *bool    `json:"sensitivity"`
}

// UserPrefInput holds age and texture preference
type UserPrefInput struct {
	Age         int    `json:"age" validate:"omitempty,gte=1,lte=120"`
	PrefTexture string `json:"pref_texture" validate:"omitempty,oneof=gel cream lotion oil balm"`
}

// requestValidator wraps validator/v10 and converts DTOs into advisor requests
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// toAdvisorRequest validates the DTO and builds an advisor.Request
func (v *requestValidator) toAdvisorRequest(req *RecommendRequest, channel string) (advisor.Request, error) {
	if err := v.validate.Struct(req); err != nil {
		return advisor.Request{}, fmt.Errorf("%w: %s", errInvalidRequest, describe(err))
	}

	out := advisor.Request{
		UserID:     req.UserID,
		AnalysisID: req.AnalysisID,
		Channel:    channel,
		Pref:       contracts.UserPref{Age: req.UserPref.Age},
	}

	if len(req.Profile) > 0 {
		out.Profile = toSkinProfile(req.Profile)
	}

	if req.Weather != nil {
		out.Weather = &contracts.Weather{
			Humidity:    req.Weather.Humidity,
			UVIndex:     req.Weather.UVIndex,
			Temperature: req.Weather.Temperature,
			Source:      "request",
		}
	}

	if req.Lifestyle != nil {
		l := &contracts.Lifestyle{
			SleepHours7d:   req.Lifestyle.SleepHours7d,
			WaterIntakeML:  req.Lifestyle.WaterIntakeML,
			WashFreqPerDay: req.Lifestyle.WashFreqPerDay,
			Sensitive:      req.Lifestyle.Sensitivity,
		}
		if req.Lifestyle.WashTemp != "" {
			wt, err := contracts.ParseWashTemp(req.Lifestyle.WashTemp)
			if err != nil {
				return advisor.Request{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
			}
			l.WashTemp = &wt
		}
		out.Lifestyle = l
	}

	texture, err := contracts.ParseTexture(req.UserPref.PrefTexture)
	if err != nil {
		return advisor.Request{}, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	out.Pref.Texture = texture

	return out, nil
}

// toProfile validates an analysis DTO; measurement ranges are checked by the engine
func (v *requestValidator) toProfile(req *AnalysisRequest) (contracts.SkinProfile, error) {
	if err := v.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidRequest, describe(err))
	}
	return toSkinProfile(req.Profile), nil
}

func toSkinProfile(m map[string]float64) contracts.SkinProfile {
	out := make(contracts.SkinProfile, len(m))
	for k, val := range m {
		out[contracts.Feature(k)] = val
	}
	return out
}

// describe flattens validator errors into one line
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
}
