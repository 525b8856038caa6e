package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engine"
	"github.com/wonny/skinadvisor/backend/internal/metrics"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

var (
	// ErrProfileRequired 프로필도 analysis_id도 없음
	ErrProfileRequired = errors.New("profile or analysis_id required")

	// ErrAnalysisUnavailable analysis_id가 왔지만 저장소가 없음
	ErrAnalysisUnavailable = errors.New("analysis lookup unavailable: database disabled")

	// ErrHistoryDisabled 이력 저장소가 없음
	ErrHistoryDisabled = errors.New("history unavailable: database disabled")
)

// AnonymousUser is stored when a request has no user id
const AnonymousUser = "anonymous"

// Channels
const (
	ChannelHTTP  = "http"
	ChannelKiosk = "ws"
	ChannelCLI   = "cli"
)

// Request is one recommendation request from any channel
type Request struct {
	UserID     string
	AnalysisID *int64
	Profile    contracts.SkinProfile
	Weather    *contracts.Weather
	Lifestyle  *contracts.Lifestyle
	Pref       contracts.UserPref
	Channel    string
}

// Result is the advisor output
type Result struct {
	HistoryID      string                    `json:"history_id,omitempty"`
	Recommendation *contracts.Recommendation `json:"recommendation"`
	Input          contracts.Input           `json:"input"`
	ConfigHash     string                    `json:"config_hash"`
}

// Deps are the collaborators of a Service; nil repositories/providers disable that step
type Deps struct {
	Engine   *engine.Engine
	Catalog  contracts.CatalogProvider
	Weather  contracts.WeatherProvider
	Analyses contracts.AnalysisRepository
	History  contracts.HistoryRepository
}

// Service wraps the pure engine with I/O: profile lookup, weather, persistence
// ⭐ SSOT: 엔진 호출 전후의 모든 I/O는 여기서만
type Service struct {
	deps   Deps
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates an advisor service
func NewService(deps Deps, log *logger.Logger) *Service {
	if deps.Catalog == nil {
		panic("advisor: catalog provider required")
	}
	if deps.Engine == nil {
		panic("advisor: engine required")
	}
	return &Service{deps: deps, logger: log.WithComponent("advisor"), now: time.Now}
}

// ConfigHash returns the engine config hash
func (s *Service) ConfigHash() string {
	return s.deps.Engine.ConfigHash()
}

// Recommend resolves inputs, runs the engine and records history
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := s.now()
	channel := req.Channel
	if channel == "" {
		channel = ChannelHTTP
	}

	res, err := s.recommend(ctx, req)

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, contracts.ErrInvalidMeasurement), errors.Is(err, ErrProfileRequired), errors.Is(err, contracts.ErrNotFound):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeError
	}
	metrics.RecordRecommendation(channel, outcome, s.now().Sub(start))

	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"user_id": req.UserID,
			"channel": channel,
		}).Warn("Recommendation failed")
		return nil, err
	}
	return res, nil
}

func (s *Service) recommend(ctx context.Context, req Request) (*Result, error) {
	// 1. 프로필
	profile, err := s.resolveProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. 날씨
	in := contracts.Input{
		Profile: profile,
		Context: contracts.ContextModifiers{
			Weather:   s.resolveWeather(ctx, req.Weather),
			Lifestyle: req.Lifestyle,
			Pref:      req.Pref,
		},
	}

	// 3. 카탈로그 스냅샷 (호출 전체에서 동일 참조)
	snapshot, err := s.deps.Catalog.Snapshot()
	if err != nil {
		if !errors.Is(err, contracts.ErrEmptyCatalog) {
			return nil, fmt.Errorf("catalog snapshot: %w", err)
		}
		s.logger.Warn("Catalog not loaded yet, recommending from an empty snapshot")
		snapshot = contracts.EmptyCatalog()
	}

	// 4. 엔진 (순수)
	rec, err := s.deps.Engine.Recommend(in, snapshot)
	if err != nil {
		return nil, err
	}
	metrics.RecordResult(rec.OverallScore, len(rec.Top3))

	res := &Result{
		Recommendation: rec,
		Input:          in,
		ConfigHash:     s.deps.Engine.ConfigHash(),
	}

	// 5. 이력 저장 (실패해도 응답은 반환)
	if s.deps.History != nil {
		res.HistoryID = s.saveHistory(ctx, req, res)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":         req.UserID,
		"overall_score":   rec.OverallScore,
		"skin_age":        rec.SkinAge,
		"top3":            rec.TopNames(),
		"catalog_version": rec.CatalogVersion,
		"history_id":      res.HistoryID,
	}).Info("Recommendation served")

	return res, nil
}

func (s *Service) resolveProfile(ctx context.Context, req Request) (contracts.SkinProfile, error) {
	if len(req.Profile) > 0 {
		return req.Profile, nil
	}
	if req.AnalysisID == nil {
		return nil, ErrProfileRequired
	}
	if s.deps.Analyses == nil {
		return nil, ErrAnalysisUnavailable
	}

	rec, err := s.deps.Analyses.GetByID(ctx, *req.AnalysisID)
	if err != nil {
		return nil, err
	}
	return rec.Profile, nil
}

// resolveWeather 요청 값 우선, 없으면 provider, 실패 시 nil (보정 생략)
func (s *Service) resolveWeather(ctx context.Context, inline *contracts.Weather) *contracts.Weather {
	if inline != nil {
		metrics.WeatherLookupsTotal.WithLabelValues("inline").Inc()
		return inline
	}
	if s.deps.Weather == nil {
		metrics.WeatherLookupsTotal.WithLabelValues("none").Inc()
		return nil
	}

	w, err := s.deps.Weather.Current(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Weather unavailable, skipping weather modulation")
		metrics.WeatherLookupsTotal.WithLabelValues("none").Inc()
		return nil
	}
	metrics.WeatherLookupsTotal.WithLabelValues("provider").Inc()
	return w
}

func (s *Service) saveHistory(ctx context.Context, req Request, res *Result) string {
	userID := req.UserID
	if userID == "" {
		userID = AnonymousUser
	}

	rec := &contracts.HistoryRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		AnalysisID:     req.AnalysisID,
		Input:          res.Input,
		Recommendation: res.Recommendation,
		ConfigHash:     res.ConfigHash,
		CatalogVersion: res.Recommendation.CatalogVersion,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.deps.History.Save(ctx, rec); err != nil {
		metrics.HistorySaveFailuresTotal.Inc()
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to save recommendation history")
		return ""
	}
	return rec.ID
}

// Analyze validates a measured profile and stores it as a new analysis
// 반환된 id는 이후 Request.AnalysisID로 재사용
func (s *Service) Analyze(ctx context.Context, profile contracts.SkinProfile) (int64, error) {
	if err := s.deps.Engine.Validate(profile); err != nil {
		return 0, err
	}
	if s.deps.Analyses == nil {
		return 0, ErrAnalysisUnavailable
	}

	id, err := s.deps.Analyses.Save(ctx, profile)
	if err != nil {
		s.logger.WithError(err).Error("Failed to save analysis")
		return 0, err
	}

	s.logger.WithField("analysis_id", id).Info("Analysis stored")
	return id, nil
}

// History lists a user's past recommendations, newest first
func (s *Service) History(ctx context.Context, userID string, limit int) ([]contracts.HistoryRecord, error) {
	if s.deps.History == nil {
		return nil, ErrHistoryDisabled
	}
	return s.deps.History.ListByUser(ctx, userID, limit)
}
