package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMeasurement 측정값 누락/범위 이탈 (호출 실패, 부분 결과 없음)
	ErrInvalidMeasurement = errors.New("invalid measurement")

	// ErrEmptyCatalog 카탈로그 스냅샷 없음 (엔진은 빈 추천을 반환)
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrConfiguration 설정 오류 (기동 시점 실패, 자동 보정 금지)
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound 저장소 조회 결과 없음
	ErrNotFound = errors.New("not found")
)

// MeasurementError describes which feature failed validation
type MeasurementError struct {
	Feature Feature
	Value   float64
	Reason  string
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidMeasurement, e.Feature, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidMeasurement
func (e *MeasurementError) Unwrap() error {
	return ErrInvalidMeasurement
}
