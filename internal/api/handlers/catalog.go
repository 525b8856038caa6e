package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/wonny/skinadvisor/backend/internal/catalog"
	"github.com/wonny/skinadvisor/backend/internal/contracts"
	"github.com/wonny/skinadvisor/backend/internal/metrics"
	"github.com/wonny/skinadvisor/backend/pkg/logger"
)

// Refresher triggers a catalog refresh
type Refresher interface {
	Refresh(ctx context.Context) (*catalog.RefreshResult, error)
}

// AdminSecretHeader carries the shared secret for admin-only endpoints
const AdminSecretHeader = "X-Admin-Secret"

// AdminAuth guards admin-only endpoints
// Secret 비어 있으면 AllowOpen(development)일 때만 허용, 아니면 비활성
type AdminAuth struct {
	Secret    string
	AllowOpen bool
}

// check returns 0 when the request may proceed, otherwise the status to reply with
func (a AdminAuth) check(r *http.Request) int {
	if a.Secret == "" {
		if a.AllowOpen {
			return 0
		}
		return http.StatusForbidden
	}
	got := r.Header.Get(AdminSecretHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.Secret)) != 1 {
		return http.StatusUnauthorized
	}
	return 0
}

// CatalogHandler exposes the current snapshot and manual refresh
type CatalogHandler struct {
	provider  contracts.CatalogProvider
	refresher Refresher // nil → 수동 갱신 비활성
	auth      AdminAuth
	logger    *logger.Logger
}

// NewCatalogHandler creates a new catalog handler; refresher may be nil
func NewCatalogHandler(provider contracts.CatalogProvider, refresher Refresher, auth AdminAuth, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{provider: provider, refresher: refresher, auth: auth, logger: log}
}

// Get returns the current snapshot
// GET /api/catalog?category=toner
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.provider.Snapshot()
	if errors.Is(err, contracts.ErrEmptyCatalog) {
		respondError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	products := snap.Products()
	if s := r.URL.Query().Get("category"); s != "" {
		cat, err := contracts.ParseCategory(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		filtered := make([]contracts.Product, 0, len(products))
		for _, p := range products {
			if p.Category == cat {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"version":   snap.Version(),
		"loaded_at": snap.LoadedAt(),
		"count":     len(products),
		"products":  products,
	})
}

// Refresh runs a catalog refresh synchronously
// POST /api/catalog/refresh (X-Admin-Secret 필요)
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	switch h.auth.check(r) {
	case http.StatusUnauthorized:
		h.logger.WithField("remote_addr", r.RemoteAddr).Warn("Catalog refresh rejected: bad admin secret")
		respondError(w, http.StatusUnauthorized, "invalid admin secret")
		return
	case http.StatusForbidden:
		respondError(w, http.StatusForbidden, "catalog refresh disabled: ADMIN_SECRET not set")
		return
	}

	if h.refresher == nil {
		respondError(w, http.StatusServiceUnavailable, "catalog refresh not configured")
		return
	}

	res, err := h.refresher.Refresh(r.Context())
	if err != nil {
		metrics.RecordCatalogRefresh(metrics.OutcomeError, -1)
		h.logger.WithError(err).Error("Manual catalog refresh failed")
		status := http.StatusBadGateway
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		respondError(w, status, err.Error())
		return
	}

	metrics.RecordCatalogRefresh(metrics.OutcomeOK, res.Products)
	respondJSON(w, http.StatusOK, res)
}
