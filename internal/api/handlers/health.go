package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// Check is a named dependency health check
type Check func(ctx context.Context) error

// HealthHandler reports service and dependency status
type HealthHandler struct {
	service    string
	configHash string
	catalog    contracts.CatalogProvider
	checks     map[string]Check
}

// NewHealthHandler creates a health handler
func NewHealthHandler(service, configHash string, catalog contracts.CatalogProvider, checks map[string]Check) *HealthHandler {
	return &HealthHandler{service: service, configHash: configHash, catalog: catalog, checks: checks}
}

// Health returns 200 when every check passes, 503 otherwise
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = err.Error()
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	catalogVersion := ""
	if snap, err := h.catalog.Snapshot(); err == nil {
		catalogVersion = snap.Version()
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]interface{}{
		"status":          status,
		"service":         h.service,
		"config_hash":     h.configHash,
		"catalog_version": catalogVersion,
		"dependencies":    deps,
	})
}
