package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/skinadvisor/backend/internal/advisor"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// maxBodyBytes 요청 본문 상한
const maxBodyBytes = 1 << 20

// Advisor is the service behind the recommend/analysis/history endpoints
type Advisor interface {
	Recommend(ctx context.Context, req advisor.Request) (*advisor.Result, error)
	Analyze(ctx context.Context, profile contracts.SkinProfile) (int64, error)
	History(ctx context.Context, userID string, limit int) ([]contracts.HistoryRecord, error)
}

// RecommendHandler handles recommendation and history endpoints
// ⭐ SSOT: 추천 API 핸들러는 이 구조체에서만
type RecommendHandler struct {
	advisor   Advisor
	validator *requestValidator
	logger    *logger.Logger
}

// NewRecommendHandler creates a new recommend handler
func NewRecommendHandler(a Advisor, log *logger.Logger) *RecommendHandler {
	return &RecommendHandler{
		advisor:   a,
		validator: newRequestValidator(),
		logger:    log,
	}
}

// Recommend runs one recommendation
// POST /api/recommend
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var body RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	req, err := h.validator.toAdvisorRequest(&body, advisor.ChannelHTTP)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.advisor.Recommend(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Recommend failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// Analyze stores a measured profile for later recommendations
// POST /api/analysis → 201 {"analysis_id": n}
func (h *RecommendHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var body AnalysisRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	profile, err := h.validator.toProfile(&body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.advisor.Analyze(r.Context(), profile)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Analysis save failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"analysis_id": id})
}

// History lists past recommendations of a user
// GET /api/history/{user_id}?limit=20
func (h *RecommendHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			respondError(w, http.StatusBadRequest, "limit must be an integer in [1, 100]")
			return
		}
		limit = n
	}

	records, err := h.advisor.History(r.Context(), userID, limit)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).WithField("user_id", userID).Error("History query failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"count":   len(records),
		"records": records,
	})
}
