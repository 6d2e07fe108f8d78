package handler

import (
	"net/http"

	"github.com/AlexZinkM/token-communities/internal/model"
	"github.com/AlexZinkM/token-communities/internal/registry"

	"go.uber.org/zap"
)

// HealthHandler reports registry reachability
type HealthHandler struct {
	registry registry.Registry
	logger   *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(reg registry.Registry, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{registry: reg, logger: logger}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports whether the contract backend and the network RPC respond
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Failure      503  {object}  model.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	health, err := h.registry.Health(r.Context())
	if err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, model.HealthResponse{Success: false, Status: err.Error()})
		return
	}

	resp := model.HealthResponse{
		Success:   health.Backend,
		Status:    health.Status,
		Stellar:   health.Network,
		Contracts: health.Backend,
		Ledger:    health.LatestLedger,
	}
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
