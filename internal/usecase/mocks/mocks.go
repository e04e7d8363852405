package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/surcofin/cajaflow/internal/domain"
)

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.Movement
	history   map[string][]domain.FieldChange

	SaveFunc          func(ctx context.Context, movement *domain.Movement) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Movement, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error)
	ListPendingFunc   func(ctx context.Context, direction domain.Direction, limit, offset int) ([]*domain.Movement, error)
	UpdateFunc        func(ctx context.Context, movement *domain.Movement) error
	UpdateStateFunc   func(ctx context.Context, id string, state domain.MovementState, updatedAt time.Time) error
	AppendHistoryFunc func(ctx context.Context, id string, change domain.FieldChange) error
	DeleteFunc        func(ctx context.Context, id string) error
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{
		movements: make(map[string]*domain.Movement),
		history:   make(map[string][]domain.FieldChange),
	}
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *domain.Movement) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mv, ok := m.movements[id]; ok {
		mv.History = append([]domain.FieldChange(nil), m.history[id]...)
		return mv, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.Movement
	for _, mv := range m.movements {
		if mv.AccountID == accountID {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockMovementRepository) ListPending(ctx context.Context, direction domain.Direction, limit, offset int) ([]*domain.Movement, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, direction, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var movements []*domain.Movement
	for _, mv := range m.movements {
		if mv.State == domain.MovementStatePending && mv.Direction == direction {
			movements = append(movements, mv)
		}
	}
	return movements, nil
}

func (m *MockMovementRepository) Update(ctx context.Context, movement *domain.Movement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[movement.ID]; !ok {
		return domain.ErrMovementNotFound
	}
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) UpdateState(ctx context.Context, id string, state domain.MovementState, updatedAt time.Time) error {
	if m.UpdateStateFunc != nil {
		return m.UpdateStateFunc(ctx, id, state, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movements[id]
	if !ok {
		return domain.ErrMovementNotFound
	}
	mv.State = state
	mv.UpdatedAt = updatedAt
	return nil
}

func (m *MockMovementRepository) AppendHistory(ctx context.Context, id string, change domain.FieldChange) error {
	if m.AppendHistoryFunc != nil {
		return m.AppendHistoryFunc(ctx, id, change)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[id]; !ok {
		return domain.ErrMovementNotFound
	}
	m.history[id] = append(m.history[id], change)
	return nil
}

func (m *MockMovementRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[id]; !ok {
		return domain.ErrMovementNotFound
	}
	delete(m.movements, id)
	delete(m.history, id)
	return nil
}

// Insert writes directly to the backing store, bypassing SaveFunc. Useful
// when a test overrides SaveFunc but still wants some legs persisted.
func (m *MockMovementRepository) Insert(movement *domain.Movement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
}

// Stored returns the movement currently held under id, with its history
// attached, for assertions.
func (m *MockMovementRepository) Stored(id string) *domain.Movement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mv, ok := m.movements[id]
	if !ok {
		return nil
	}
	mv.History = append([]domain.FieldChange(nil), m.history[id]...)
	return mv
}

// Count returns the number of stored movements.
func (m *MockMovementRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.movements)
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.CashAccount

	CreateFunc                  func(ctx context.Context, account *domain.CashAccount) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.CashAccount, error)
	ListFunc                    func(ctx context.Context, limit, offset int) ([]*domain.CashAccount, error)
	EnabledLedgerCurrenciesFunc func(ctx context.Context, counterpartyID string) ([]domain.LedgerCurrency, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.CashAccount),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.CashAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.CashAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.CashAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.CashAccount
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) EnabledLedgerCurrencies(ctx context.Context, counterpartyID string) ([]domain.LedgerCurrency, error) {
	if m.EnabledLedgerCurrenciesFunc != nil {
		return m.EnabledLedgerCurrenciesFunc(ctx, counterpartyID)
	}
	return []domain.LedgerCurrency{domain.LedgerLocal, domain.LedgerForeignOfficial, domain.LedgerForeignBlue}, nil
}

// MockRateSource is a mock implementation of RateSource.
type MockRateSource struct {
	SnapshotFunc func(ctx context.Context) (domain.RateSnapshot, error)

	snapshot domain.RateSnapshot
}

func NewMockRateSource(snapshot domain.RateSnapshot) *MockRateSource {
	return &MockRateSource{snapshot: snapshot}
}

func (m *MockRateSource) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	return m.snapshot, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}
