package handler

import (
	"encoding/json"
	"net/http"

	"github.com/surcofin/cajaflow/internal/adapter/http/dto"
	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// ConciliationHandler handles batch confirmation requests.
type ConciliationHandler struct {
	conciliation *usecase.ConciliationUseCase
	metrics      *metrics.Metrics
}

// NewConciliationHandler creates a new ConciliationHandler.
func NewConciliationHandler(conciliation *usecase.ConciliationUseCase, m *metrics.Metrics) *ConciliationHandler {
	return &ConciliationHandler{conciliation: conciliation, metrics: m}
}

// Confirm handles POST /api/v1/conciliation/confirm. The response is always
// 200: the batch is a set of independent outcomes, reported per item.
func (h *ConciliationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.MovementIDs) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch", "movement_ids must not be empty")
		return
	}

	result := h.conciliation.ConfirmSelected(r.Context(), req.MovementIDs, req.ConfirmedBy)

	if h.metrics != nil {
		h.metrics.ConciliationBatchSize.Observe(float64(len(req.MovementIDs)))
		h.metrics.MovementsConfirmed.Add(float64(len(result.Confirmed)))
		h.metrics.ConfirmationFailures.Add(float64(len(result.Failed)))
	}

	writeJSON(w, http.StatusOK, dto.ConfirmFromResult(result))
}
