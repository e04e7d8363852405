package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surcofin/cajaflow/internal/domain"
)

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const movementColumns = `
	id, account_id, direction, payment_currency, ledger_currency,
	raw_amount, discount_percent,
	subtotal_local, subtotal_foreign_official, subtotal_foreign_blue,
	total_local, total_foreign_official, total_foreign_blue,
	rate_applied, rate_fallback, correlation_id, state, created_at, updated_at`

// Save inserts a new movement.
func (r *MovementRepository) Save(ctx context.Context, m *domain.Movement) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.ID, m.AccountID, m.Direction, m.PaymentCurrency, m.LedgerCurrency,
		m.RawAmount, m.DiscountPercent,
		m.Subtotal.Local, m.Subtotal.ForeignOfficial, m.Subtotal.ForeignBlue,
		m.Total.Local, m.Total.ForeignOfficial, m.Total.ForeignBlue,
		m.RateApplied, m.RateFallback, m.CorrelationID, m.State, m.CreatedAt, m.UpdatedAt,
	)

	return err
}

// GetByID retrieves a movement with its history.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE id = $1`, id)

	movement, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	history, err := r.history(ctx, id)
	if err != nil {
		return nil, err
	}

	movement.History = history

	return movement, nil
}

// ListByAccount lists movements for a cash account, newest first.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListPending lists pending movements of one direction, oldest first so the
// conciliation screen works through them in entry order.
func (r *MovementRepository) ListPending(ctx context.Context, direction domain.Direction, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE state = $1 AND direction = $2
		ORDER BY created_at ASC
		LIMIT $3 OFFSET $4`, domain.MovementStatePending, direction, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// Update rewrites the editable fields of a movement.
func (r *MovementRepository) Update(ctx context.Context, m *domain.Movement) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE movements
		SET payment_currency = $2, raw_amount = $3, discount_percent = $4,
		    subtotal_local = $5, subtotal_foreign_official = $6, subtotal_foreign_blue = $7,
		    total_local = $8, total_foreign_official = $9, total_foreign_blue = $10,
		    rate_applied = $11, rate_fallback = $12, updated_at = $13
		WHERE id = $1`,
		m.ID, m.PaymentCurrency, m.RawAmount, m.DiscountPercent,
		m.Subtotal.Local, m.Subtotal.ForeignOfficial, m.Subtotal.ForeignBlue,
		m.Total.Local, m.Total.ForeignOfficial, m.Total.ForeignBlue,
		m.RateApplied, m.RateFallback, m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// UpdateState transitions a movement's lifecycle state.
func (r *MovementRepository) UpdateState(ctx context.Context, id string, state domain.MovementState, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE movements
		SET state = $2, updated_at = $3
		WHERE id = $1`, id, state, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

// AppendHistory appends one field-change record.
func (r *MovementRepository) AppendHistory(ctx context.Context, id string, change domain.FieldChange) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO movement_history (movement_id, field, old_value, new_value, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, change.Field, change.OldValue, change.NewValue, change.ChangedBy, change.ChangedAt,
	)

	return err
}

// Delete removes a movement. The compound coordinator uses it as the
// compensation step; history rows cascade.
func (r *MovementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

func (r *MovementRepository) history(ctx context.Context, id string) ([]domain.FieldChange, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT field, old_value, new_value, changed_by, changed_at
		FROM movement_history
		WHERE movement_id = $1
		ORDER BY changed_at ASC, seq ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.FieldChange
	for rows.Next() {
		var change domain.FieldChange
		if err := rows.Scan(&change.Field, &change.OldValue, &change.NewValue, &change.ChangedBy, &change.ChangedAt); err != nil {
			return nil, err
		}
		history = append(history, change)
	}

	return history, rows.Err()
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(
		&m.ID, &m.AccountID, &m.Direction, &m.PaymentCurrency, &m.LedgerCurrency,
		&m.RawAmount, &m.DiscountPercent,
		&m.Subtotal.Local, &m.Subtotal.ForeignOfficial, &m.Subtotal.ForeignBlue,
		&m.Total.Local, &m.Total.ForeignOfficial, &m.Total.ForeignBlue,
		&m.RateApplied, &m.RateFallback, &m.CorrelationID, &m.State, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*domain.Movement, error) {
	movements := make([]*domain.Movement, 0)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}
