package mocks

import (
	"context"

	"cvdoc/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) Create(ctx context.Context, e *model.Export) (*model.Export, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Export) *model.Export); ok {
		return f(ctx, e), args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}

func (m *MockExportRepository) ListByCV(ctx context.Context, cvID string) ([]model.Export, error) {
	args := m.Called(ctx, cvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Export), args.Error(1)
}
