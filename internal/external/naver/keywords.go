package naver

import "github.com/wonny/skinadvisor/backend/internal/contracts"

// SearchKeywords 카테고리별 수집 검색어
var SearchKeywords = map[contracts.Category][]string{
	contracts.CategoryCleanser:    {"폼클렌징", "약산성 클렌저", "클렌징 오일", "클렌징 젤"},
	contracts.CategoryToner:       {"토너", "스킨 토너", "닦토", "수분 토너"},
	contracts.CategorySerum:       {"세럼", "앰플", "미백 세럼", "트러블 세럼"},
	contracts.CategoryEssence:     {"에센스", "퍼스트 에센스"},
	contracts.CategoryMoisturizer: {"수분크림", "장벽크림", "진정크림", "로션"},
	contracts.CategorySunscreen:   {"선크림", "무기자차", "선스틱", "톤업 선크림"},
	contracts.CategoryNightCream:  {"레티놀 크림", "나이트 크림", "수면팩"},
	contracts.CategoryMask:        {"마스크팩", "시트마스크"},
}
