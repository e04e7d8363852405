package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/adapter/http/dto"
	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// RateHandler handles exchange-rate HTTP requests.
type RateHandler struct {
	rates *usecase.RateUseCase
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rates *usecase.RateUseCase) *RateHandler {
	return &RateHandler{rates: rates}
}

// Snapshot handles GET /api/v1/rates.
func (h *RateHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.rates.CurrentSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "rate source unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// Preview handles GET /api/v1/rates/preview. Query parameters mirror the
// entry form: payment, ledger and an optional manual override.
func (h *RateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	payment := domain.Currency(r.URL.Query().Get("payment"))
	ledger := domain.LedgerCurrency(r.URL.Query().Get("ledger"))

	var override *decimal.Decimal
	if raw := r.URL.Query().Get("override"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid override", err.Error())
			return
		}
		override = &value
	}

	rate, err := h.rates.PreviewRate(r.Context(), payment, ledger, override)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatePreviewResponse{
		Rate:     rate.Rate,
		Trivial:  rate.Trivial,
		Fallback: rate.Fallback,
	})
}
