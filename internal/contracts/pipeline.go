package contracts

// Pipeline Stage 정의 (SSOT)
// 로그, 메트릭 라벨, 에러 메시지에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S1 → S2 → S3 → S4 → S5 → S6
//   Normalize  Aggregate  Age  Context  Candidates  Recommend

// Stage represents a pipeline stage
type Stage string

const (
	// StageNormalize S1: 원시 측정값 → [0,100] 바람직도
	// 위치: internal/s1_normalize/
	StageNormalize Stage = "S1_NORMALIZE"

	// StageAggregate S2: 종합 점수 + 결핍 벡터
	// 위치: internal/s2_aggregate/
	StageAggregate Stage = "S2_AGGREGATE"

	// StageAge S3: 피부 나이 추정
	// 위치: internal/s3_age/
	StageAge Stage = "S3_AGE"

	// StageContext S4: 날씨/생활습관/민감도 보정
	// 위치: internal/s4_context/
	StageContext Stage = "S4_CONTEXT"

	// StageCandidates S5: 제품별 매칭 점수 + 추천 사유
	// 위치: internal/s5_candidates/
	StageCandidates Stage = "S5_CANDIDATES"

	// StageRecommend S6: Top3 + AM/PM 루틴 구성
	// 위치: internal/s6_recommend/
	StageRecommend Stage = "S6_RECOMMEND"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S1", "S2")
func (s Stage) ShortName() string {
	switch s {
	case StageNormalize:
		return "S1"
	case StageAggregate:
		return "S2"
	case StageAge:
		return "S3"
	case StageContext:
		return "S4"
	case StageCandidates:
		return "S5"
	case StageRecommend:
		return "S6"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageNormalize,
		StageAggregate,
		StageAge,
		StageContext,
		StageCandidates,
		StageRecommend,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}
