package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engine"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

type fakeWeather struct {
	w   *contracts.Weather
	err error
	n   int
}

func (f *fakeWeather) Current(ctx context.Context) (*contracts.Weather, error) {
	f.n++
	return f.w, f.err
}

type fakeAnalyses struct {
	records map[int64]contracts.SkinProfile
	saveErr error
	nextID  int64
}

func (f *fakeAnalyses) GetByID(ctx context.Context, id int64) (*contracts.AnalysisRecord, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	return &contracts.AnalysisRecord{ID: id, Profile: p}, nil
}

func (f *fakeAnalyses) Save(ctx context.Context, profile contracts.SkinProfile) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	if f.records == nil {
		f.records = map[int64]contracts.SkinProfile{}
	}
	f.nextID++
	f.records[f.nextID] = profile
	return f.nextID, nil
}

type fakeHistory struct {
	mu    sync.Mutex
	saved []contracts.HistoryRecord
	err   error
}

func (f *fakeHistory) Save(ctx context.Context, rec *contracts.HistoryRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, *rec)
	return nil
}

func (f *fakeHistory) ListByUser(ctx context.Context, userID string, limit int) ([]contracts.HistoryRecord, error) {
	var out []contracts.HistoryRecord
	for _, r := range f.saved {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func sampleProfile() contracts.SkinProfile {
	return contracts.SkinProfile{
		contracts.FeatureMoisture:     30,
		contracts.FeatureSebum:        50,
		contracts.FeatureAcne:         10,
		contracts.FeatureWrinkles:     20,
		contracts.FeaturePore:         30,
		contracts.FeatureRedness:      25,
		contracts.FeaturePigmentation: 40,
	}
}

func newStore() *catalog.Store {
	s := catalog.NewStore(logger.Nop())
	s.Publish(contracts.NewCatalog("v1", time.Now(), []contracts.Product{
		{Brand: "A", Name: "Hydra Serum", Category: contracts.CategorySerum,
			TargetFeatures: []contracts.Feature{contracts.FeatureMoisture}, Suitability: contracts.Suitability{SensitivitySafe: true}},
		{Brand: "B", Name: "Tone Sunscreen", Category: contracts.CategorySunscreen,
			TargetFeatures: []contracts.Feature{contracts.FeaturePigmentation}},
	}))
	return s
}

func newTestService(t *testing.T, deps Deps) *Service {
	t.Helper()
	e, err := engine.New(engineconfig.Default())
	require.NoError(t, err)
	deps.Engine = e
	if deps.Catalog == nil {
		deps.Catalog = newStore()
	}
	return NewService(deps, logger.Nop())
}

func TestRecommend_InlineProfile(t *testing.T) {
	history := &fakeHistory{}
	weather := &fakeWeather{w: &contracts.Weather{Humidity: 50, UVIndex: 2, Temperature: 20}}
	svc := newTestService(t, Deps{History: history, Weather: weather})

	res, err := svc.Recommend(context.Background(), Request{UserID: "u1", Profile: sampleProfile()})
	require.NoError(t, err)

	assert.Equal(t, "v1", res.Recommendation.CatalogVersion)
	assert.Len(t, res.Recommendation.Top3, 2)
	assert.Equal(t, svc.ConfigHash(), res.ConfigHash)
	assert.Equal(t, 1, weather.n)
	assert.Equal(t, weather.w, res.Input.Context.Weather)

	require.Len(t, history.saved, 1)
	assert.Equal(t, res.HistoryID, history.saved[0].ID)
	assert.Equal(t, "u1", history.saved[0].UserID)
	assert.Equal(t, "v1", history.saved[0].CatalogVersion)
}

func TestRecommend_InlineWeatherWins(t *testing.T) {
	weather := &fakeWeather{w: &contracts.Weather{UVIndex: 11}}
	svc := newTestService(t, Deps{Weather: weather})

	inline := &contracts.Weather{Humidity: 55, UVIndex: 1, Temperature: 18}
	res, err := svc.Recommend(context.Background(), Request{Profile: sampleProfile(), Weather: inline})
	require.NoError(t, err)
	assert.Equal(t, 0, weather.n)
	assert.Equal(t, inline, res.Input.Context.Weather)
	assert.Empty(t, res.HistoryID, "no history repository")
}

func TestRecommend_WeatherFailureSkipsModulation(t *testing.T) {
	withFailure := newTestService(t, Deps{Weather: &fakeWeather{err: errors.New("timeout")}})
	without := newTestService(t, Deps{})

	a, err := withFailure.Recommend(context.Background(), Request{Profile: sampleProfile()})
	require.NoError(t, err)
	b, err := without.Recommend(context.Background(), Request{Profile: sampleProfile()})
	require.NoError(t, err)

	assert.Nil(t, a.Input.Context.Weather)
	assert.Equal(t, b.Recommendation.Deficiency, a.Recommendation.Deficiency)
}

func TestRecommend_AnalysisLookup(t *testing.T) {
	id := int64(7)
	analyses := &fakeAnalyses{records: map[int64]contracts.SkinProfile{id: sampleProfile()}}
	history := &fakeHistory{}
	svc := newTestService(t, Deps{Analyses: analyses, History: history})

	res, err := svc.Recommend(context.Background(), Request{AnalysisID: &id})
	require.NoError(t, err)
	assert.Equal(t, sampleProfile(), res.Input.Profile)
	require.Len(t, history.saved, 1)
	assert.Equal(t, AnonymousUser, history.saved[0].UserID)
	assert.Equal(t, &id, history.saved[0].AnalysisID)

	missing := int64(99)
	_, err = svc.Recommend(context.Background(), Request{AnalysisID: &missing})
	assert.True(t, errors.Is(err, contracts.ErrNotFound))
}

func TestRecommend_Errors(t *testing.T) {
	svc := newTestService(t, Deps{})
	id := int64(1)

	_, err := svc.Recommend(context.Background(), Request{})
	assert.True(t, errors.Is(err, ErrProfileRequired))

	_, err = svc.Recommend(context.Background(), Request{AnalysisID: &id})
	assert.True(t, errors.Is(err, ErrAnalysisUnavailable))

	bad := sampleProfile()
	bad[contracts.FeatureMoisture] = 140
	_, err = svc.Recommend(context.Background(), Request{Profile: bad})
	assert.True(t, errors.Is(err, contracts.ErrInvalidMeasurement))
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	svc := newTestService(t, Deps{Catalog: catalog.NewStore(logger.Nop())})

	res, err := svc.Recommend(context.Background(), Request{Profile: sampleProfile()})
	require.NoError(t, err)
	assert.Empty(t, res.Recommendation.Top3)
	assert.Empty(t, res.Recommendation.Routine.AM)
	assert.Equal(t, "empty", res.Recommendation.CatalogVersion)
}

func TestRecommend_HistoryFailureIsNotFatal(t *testing.T) {
	svc := newTestService(t, Deps{History: &fakeHistory{err: errors.New("db down")}})

	res, err := svc.Recommend(context.Background(), Request{Profile: sampleProfile()})
	require.NoError(t, err)
	assert.Empty(t, res.HistoryID)
	assert.NotNil(t, res.Recommendation)
}

func TestHistory(t *testing.T) {
	_, err := newTestService(t, Deps{}).History(context.Background(), "u1", 10)
	assert.True(t, errors.Is(err, ErrHistoryDisabled))

	history := &fakeHistory{}
	svc := newTestService(t, Deps{History: history})
	_, err = svc.Recommend(context.Background(), Request{UserID: "u1", Profile: sampleProfile()})
	require.NoError(t, err)

	records, err := svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAnalyze_ThenRecommendByID(t *testing.T) {
	analyses := &fakeAnalyses{}
	svc := newTestService(t, Deps{Analyses: analyses})

	id, err := svc.Analyze(context.Background(), sampleProfile())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	res, err := svc.Recommend(context.Background(), Request{AnalysisID: &id})
	require.NoError(t, err)
	assert.Equal(t, sampleProfile(), res.Input.Profile)
}

func TestAnalyze_Errors(t *testing.T) {
	bad := sampleProfile()
	bad[contracts.FeatureMoisture] = 140

	missing := sampleProfile()
	delete(missing, contracts.FeatureRedness)

	tests := []struct {
		name     string
		analyses *fakeAnalyses
		profile  contracts.SkinProfile
		want     error
	}{
		{"out of range", &fakeAnalyses{}, bad, contracts.ErrInvalidMeasurement},
		{"missing feature", &fakeAnalyses{}, missing, contracts.ErrInvalidMeasurement},
		{"invalid before disabled check", nil, bad, contracts.ErrInvalidMeasurement},
		{"database disabled", nil, sampleProfile(), ErrAnalysisUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deps := Deps{}
			if tc.analyses != nil {
				deps.Analyses = tc.analyses
			}
			_, err := newTestService(t, deps).Analyze(context.Background(), tc.profile)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			if tc.analyses != nil {
				assert.Empty(t, tc.analyses.records)
			}
		})
	}

	saveErr := errors.New("db down")
	_, err := newTestService(t, Deps{Analyses: &fakeAnalyses{saveErr: saveErr}}).Analyze(context.Background(), sampleProfile())
	assert.True(t, errors.Is(err, saveErr))
}
