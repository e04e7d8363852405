package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/surcofin/cajaflow/internal/domain"
)

// CompoundUseCase creates linked opposite-direction movement pairs:
// inter-account transfers and capital contributions. There is no native
// cross-account transaction underneath, so the second leg's failure is
// handled with a compensating delete of the first.
type CompoundUseCase struct {
	movements    *MovementUseCase
	movementRepo MovementRepository
	idGen        IDGenerator
	logger       zerolog.Logger
}

// NewCompoundUseCase creates a new CompoundUseCase.
func NewCompoundUseCase(
	movements *MovementUseCase,
	movementRepo MovementRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *CompoundUseCase {
	return &CompoundUseCase{
		movements:    movements,
		movementRepo: movementRepo,
		idGen:        idGen,
		logger:       logger,
	}
}

// MovementPair is a compound movement: one outflow and one inflow persisted
// as a single logical unit.
type MovementPair struct {
	Outflow       *domain.Movement
	Inflow        *domain.Movement
	CorrelationID string
}

// CreatePair creates both legs of a compound movement. The outflow is written
// first; if the inflow write then fails, the outflow is deleted and the error
// reports whether that compensation succeeded. A compound failure always
// means "nothing happened" unless the error says an orphan may remain.
//
// If the process dies between the inflow failure and the compensation
// attempt an orphan outflow can survive; this is a documented limitation of
// best-effort compensation, not two-phase commit.
func (uc *CompoundUseCase) CreatePair(ctx context.Context, outflowSpec, inflowSpec CreateMovementInput) (*MovementPair, error) {
	if outflowSpec.AccountID == inflowSpec.AccountID {
		return nil, domain.ErrSameAccount
	}

	outflowSpec.Direction = domain.DirectionOutflow
	inflowSpec.Direction = domain.DirectionInflow

	correlationID := uc.idGen.Generate()

	// Build both legs before persisting anything so validation and
	// conversion errors never leave a half-written pair.
	outflow, err := uc.movements.buildMovement(ctx, outflowSpec, &correlationID)
	if err != nil {
		return nil, fmt.Errorf("outflow leg: %w", err)
	}

	inflow, err := uc.movements.buildMovement(ctx, inflowSpec, &correlationID)
	if err != nil {
		return nil, fmt.Errorf("inflow leg: %w", err)
	}

	if err := uc.movementRepo.Save(ctx, outflow); err != nil {
		return nil, fmt.Errorf("outflow leg: %w", err)
	}

	if err := uc.movementRepo.Save(ctx, inflow); err != nil {
		if delErr := uc.movementRepo.Delete(ctx, outflow.ID); delErr != nil {
			uc.logger.Error().
				Err(delErr).
				Str("correlation_id", correlationID).
				Str("outflow_id", outflow.ID).
				Msg("compound compensation failed, orphan outflow may remain")

			return nil, &domain.CompoundError{Cause: err, OrphanMovementID: outflow.ID}
		}

		uc.logger.Warn().
			Err(err).
			Str("correlation_id", correlationID).
			Msg("compound inflow failed, outflow rolled back")

		return nil, &domain.CompoundError{Cause: err, RolledBack: true}
	}

	return &MovementPair{
		Outflow:       outflow,
		Inflow:        inflow,
		CorrelationID: correlationID,
	}, nil
}
