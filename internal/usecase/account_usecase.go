package usecase

import (
	"context"
	"time"

	"github.com/surcofin/cajaflow/internal/domain"
)

// AccountUseCase handles the cash-account directory.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating a cash account.
type CreateAccountInput struct {
	Name           string
	LedgerCurrency domain.LedgerCurrency
	CounterpartyID string
}

// CreateAccount creates a new active cash account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.CashAccount, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if !input.LedgerCurrency.Valid() {
		return nil, domain.ErrUnsupportedCurrencyPair
	}

	now := time.Now().UTC()

	account := &domain.CashAccount{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		LedgerCurrency: input.LedgerCurrency,
		CounterpartyID: input.CounterpartyID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves a cash account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.CashAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists cash accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.CashAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// EnabledLedgerCurrencies returns the ledger currencies enabled for a
// counterparty. The calling UI restricts choices with it; the engine itself
// accepts any valid value.
func (uc *AccountUseCase) EnabledLedgerCurrencies(ctx context.Context, counterpartyID string) ([]domain.LedgerCurrency, error) {
	return uc.accountRepo.EnabledLedgerCurrencies(ctx, counterpartyID)
}
