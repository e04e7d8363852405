package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surcofin/cajaflow/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new cash account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.CashAccount) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cash_accounts (id, name, ledger_currency, counterparty_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID, account.Name, account.LedgerCurrency, account.CounterpartyID,
		account.Active, account.CreatedAt, account.UpdatedAt,
	)

	return err
}

// GetByID retrieves a cash account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.CashAccount, error) {
	var account domain.CashAccount
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, ledger_currency, counterparty_id, active, created_at, updated_at
		FROM cash_accounts
		WHERE id = $1`, id).Scan(
		&account.ID, &account.Name, &account.LedgerCurrency, &account.CounterpartyID,
		&account.Active, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return &account, nil
}

// List lists cash accounts.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.CashAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, ledger_currency, counterparty_id, active, created_at, updated_at
		FROM cash_accounts
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.CashAccount, 0)
	for rows.Next() {
		var account domain.CashAccount
		if err := rows.Scan(
			&account.ID, &account.Name, &account.LedgerCurrency, &account.CounterpartyID,
			&account.Active, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

// EnabledLedgerCurrencies returns the ledger currencies a counterparty may
// post against, derived from its active accounts.
func (r *AccountRepository) EnabledLedgerCurrencies(ctx context.Context, counterpartyID string) ([]domain.LedgerCurrency, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ledger_currency
		FROM cash_accounts
		WHERE counterparty_id = $1 AND active`, counterpartyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []domain.LedgerCurrency
	for rows.Next() {
		var currency domain.LedgerCurrency
		if err := rows.Scan(&currency); err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}

	return currencies, rows.Err()
}
