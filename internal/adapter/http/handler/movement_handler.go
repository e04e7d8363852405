package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surcofin/cajaflow/internal/adapter/http/dto"
	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// MovementHandler handles cash-movement HTTP requests.
type MovementHandler struct {
	movements *usecase.MovementUseCase
	compound  *usecase.CompoundUseCase
	metrics   *metrics.Metrics
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(
	movements *usecase.MovementUseCase,
	compound *usecase.CompoundUseCase,
	m *metrics.Metrics,
) *MovementHandler {
	return &MovementHandler{movements: movements, compound: compound, metrics: m}
}

// Create handles POST /api/v1/movements.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movements.CreateMovement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create movement", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.MovementsCreated.WithLabelValues(string(movement.Direction)).Inc()
		h.metrics.MovementAmount.Observe(movement.RawAmount.InexactFloat64())
		if movement.RateFallback {
			h.metrics.RateFallbacks.Inc()
		}
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// CreatePair handles POST /api/v1/movements/pair.
func (h *MovementHandler) CreatePair(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outflowSpec, inflowSpec := req.ToUseCaseInputs()

	pair, err := h.compound.CreatePair(r.Context(), outflowSpec, inflowSpec)
	if err != nil {
		h.writePairError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PairsCreated.Inc()
		h.metrics.MovementsCreated.WithLabelValues(string(domain.DirectionOutflow)).Inc()
		h.metrics.MovementsCreated.WithLabelValues(string(domain.DirectionInflow)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.PairFromDomain(pair))
}

// writePairError distinguishes a cleanly rolled-back pair from one that may
// have left an orphan outflow behind.
func (h *MovementHandler) writePairError(w http.ResponseWriter, err error) {
	var compoundErr *domain.CompoundError
	if !errors.As(err, &compoundErr) {
		writeError(w, mapDomainError(err), "failed to create pair", err.Error())
		return
	}

	if compoundErr.RolledBack {
		if h.metrics != nil {
			h.metrics.PairRollbacks.Inc()
		}
		writeError(w, mapDomainError(compoundErr.Cause), "pair creation rolled back", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.PairOrphans.Inc()
	}
	writeError(w, http.StatusInternalServerError, "pair creation failed, manual cleanup may be needed", err.Error())
}

// Get handles GET /api/v1/movements/{id}.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	movement, err := h.movements.GetMovement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Update handles PATCH /api/v1/movements/{id}.
func (h *MovementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movements.UpdateMovement(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update movement", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.MovementsUpdated.Inc()
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// ListByAccount handles GET /api/v1/accounts/{id}/movements.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	movements, err := h.movements.ListMovementsByAccount(r.Context(), usecase.ListMovementsByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// ListPending handles GET /api/v1/movements/pending.
func (h *MovementHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	movements, err := h.movements.ListPendingInflows(
		r.Context(),
		parseIntQuery(r, "limit", 50),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list pending movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}
