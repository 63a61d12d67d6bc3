package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/soroban-api/internal/domain"
	"github.com/phrazzld/soroban-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockWorksheetStore mocks store.WorksheetStore.
type MockWorksheetStore struct {
	mock.Mock
}

func (m *MockWorksheetStore) Create(ctx context.Context, w *domain.Worksheet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorksheetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetStore) List(ctx context.Context, limit, offset int) ([]*domain.Worksheet, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Worksheet), args.Error(1)
}

func (m *MockWorksheetStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorksheetStore) WithTx(tx *sql.Tx) store.WorksheetStore {
	return m
}

// MockChallengeStore mocks store.ChallengeStore.
type MockChallengeStore struct {
	mock.Mock
}

func (m *MockChallengeStore) Create(ctx context.Context, c *domain.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeStore) List(ctx context.Context, limit, offset int) ([]*domain.Challenge, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Challenge), args.Error(1)
}

func (m *MockChallengeStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallengeStore) WithTx(tx *sql.Tx) store.ChallengeStore {
	return m
}

// directTx runs fn without a transaction and records how often it was used.
type directTx struct {
	calls int
}

func (d *directTx) run(ctx context.Context, fn store.TxFn) error {
	d.calls++
	return fn(ctx, nil)
}
