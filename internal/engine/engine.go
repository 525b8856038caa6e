package engine

import (
	"fmt"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/engineconfig"
	"github.com/wonny/skinadvisor/backend/internal/s1_normalize"
	"github.com/wonny/skinadvisor/backend/internal/s2_aggregate"
	"github.com/wonny/skinadvisor/backend/internal/s3_age"
	"github.com/wonny/skinadvisor/backend/internal/s4_context"
	"github.com/wonny/skinadvisor/backend/internal/s5_candidates"
	"github.com/wonny/skinadvisor/backend/internal/s6_recommend"
)

// Engine runs the S1 → S6 pipeline
// ⭐ SSOT: 순수 함수 파이프라인 (I/O, 로깅, 공유 가변 상태 없음 → 동시 호출 안전)
type Engine struct {
	normalizer   contracts.Normalizer
	aggregator   contracts.Aggregator
	ageEstimator contracts.AgeEstimator
	modulator    contracts.ContextModulator
	scorer       contracts.CandidateScorer
	recommender  contracts.Recommender
	summarizer   *s6_recommend.Summarizer

	configHash string
}

// Trace exposes every intermediate value of one run
type Trace struct {
	Normalized     contracts.NormalizedProfile `json:"normalized"`
	OverallScore   float64                     `json:"overall_score"`
	Deficiency     contracts.DeficiencyVector  `json:"deficiency"`
	SkinAge        float64                     `json:"skin_age"`
	Modulated      contracts.DeficiencyVector  `json:"modulated"`
	Scored         []contracts.ScoredProduct   `json:"scored"`
	Recommendation *contracts.Recommendation   `json:"recommendation"`
}

// New validates cfg and wires the stages
// 설정 오류는 ErrConfiguration으로 즉시 실패
func New(cfg *engineconfig.Config) (*Engine, error) {
	if cfg == nil {
		return nil, engineconfig.ValidationError{Field: "config", Message: "required"}
	}
	if err := engineconfig.Validate(cfg); err != nil {
		return nil, err
	}
	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return nil, fmt.Errorf("hash engine config: %w", err)
	}

	return &Engine{
		normalizer:   s1_normalize.NewNormalizer(cfg.Normalization),
		aggregator:   s2_aggregate.NewAggregator(engineconfig.FeatureWeights(cfg.ScoreWeights)),
		ageEstimator: s3_age.NewEstimator(cfg.Age),
		modulator:    s4_context.NewModulator(cfg.Modulation),
		scorer:       s5_candidates.NewScorer(cfg.Scoring, cfg.Reasons),
		recommender:  s6_recommend.NewRecommender(),
		summarizer:   s6_recommend.NewSummarizer(cfg.Modulation),
		configHash:   hash,
	}, nil
}

// ConfigHash identifies the configuration this engine was built from
func (e *Engine) ConfigHash() string {
	return e.configHash
}

// Validate checks a raw profile against the S1 scales without scoring it
func (e *Engine) Validate(profile contracts.SkinProfile) error {
	if _, err := e.normalizer.Normalize(profile); err != nil {
		return fmt.Errorf("%s: %w", contracts.StageNormalize.ShortName(), err)
	}
	return nil
}

// Recommend runs the full pipeline against one immutable catalog snapshot
// 빈 카탈로그 → 빈 top3/routine (에러 아님)
func (e *Engine) Recommend(in contracts.Input, catalog *contracts.Catalog) (*contracts.Recommendation, error) {
	trace, err := e.Run(in, catalog)
	if err != nil {
		return nil, err
	}
	return trace.Recommendation, nil
}

// Run is Recommend plus intermediate values
func (e *Engine) Run(in contracts.Input, catalog *contracts.Catalog) (*Trace, error) {
	if catalog == nil {
		catalog = contracts.EmptyCatalog()
	}

	// S1
	normalized, err := e.normalizer.Normalize(in.Profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", contracts.StageNormalize.ShortName(), err)
	}

	// S2
	overall, deficiency := e.aggregator.Aggregate(normalized)

	// S3 (보정 전 결핍 기준)
	skinAge := e.ageEstimator.Estimate(deficiency, float64(in.Context.Pref.AgeOrDefault()))

	// S4
	modulated := e.modulator.Modulate(deficiency, in.Context)

	// S5
	scored := e.scorer.Score(modulated, catalog, in.Context.ScoringPrefs())

	// S6
	rec := e.recommender.Recommend(overall, skinAge, scored, catalog)
	rec.Deficiency = modulated
	rec.Summary = e.summarizer.Summarize(rec, modulated, in.Context)

	return &Trace{
		Normalized:     normalized,
		OverallScore:   overall,
		Deficiency:     deficiency,
		SkinAge:        skinAge,
		Modulated:      modulated,
		Scored:         scored,
		Recommendation: rec,
	}, nil
}
