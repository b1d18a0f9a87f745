package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidereni/studylog/internal/core/domain"
)

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) ListByDateRange(ctx context.Context, from, to string) ([]*domain.Session, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepo) ReplaceAll(ctx context.Context, sessions []*domain.Session) error {
	args := m.Called(ctx, sessions)
	return args.Error(0)
}

type MockBadgeRepo struct {
	mock.Mock
}

func (m *MockBadgeRepo) Load(ctx context.Context) ([]domain.BadgeState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BadgeState), args.Error(1)
}

func (m *MockBadgeRepo) Save(ctx context.Context, states []domain.BadgeState) error {
	args := m.Called(ctx, states)
	return args.Error(0)
}
