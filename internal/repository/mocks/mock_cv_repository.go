package mocks

import (
	"context"

	"cvdoc/internal/model"
	"cvdoc/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockCVRepository struct {
	mock.Mock
}

func (m *MockCVRepository) Create(ctx context.Context, cv *model.CV) (*model.CV, error) {
	args := m.Called(ctx, cv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.CV) *model.CV); ok {
		return f(ctx, cv), args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVRepository) FindByID(ctx context.Context, id string) (*model.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.CV], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.CV]), args.Error(1)
}

func (m *MockCVRepository) Update(ctx context.Context, cv *model.CV) error {
	args := m.Called(ctx, cv)
	return args.Error(0)
}

func (m *MockCVRepository) IncrementDownloads(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCVRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCVRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
