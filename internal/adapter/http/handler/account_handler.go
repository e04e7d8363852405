package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surcofin/cajaflow/internal/adapter/http/dto"
	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// AccountHandler handles cash-account HTTP requests.
type AccountHandler struct {
	accounts *usecase.AccountUseCase
	metrics  *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *usecase.AccountUseCase, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accounts: accounts, metrics: m}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List handles GET /api/v1/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// EnabledCurrencies handles GET /api/v1/counterparties/{id}/currencies.
func (h *AccountHandler) EnabledCurrencies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	currencies, err := h.accounts.EnabledLedgerCurrencies(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list enabled currencies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ledger_currencies": currencies})
}
