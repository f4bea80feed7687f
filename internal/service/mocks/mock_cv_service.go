package mocks

import (
	"context"

	"cvdoc/internal/fields"
	"cvdoc/internal/model"
	"cvdoc/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCVService struct {
	mock.Mock
}

var _ service.CVService = (*MockCVService)(nil)

func (m *MockCVService) ListTemplates(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *MockCVService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockCVService) Create(ctx context.Context, in service.CreateCVInput) (*model.CV, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVService) Duplicate(ctx context.Context, id string) (*model.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVService) List(ctx context.Context, limit, offset int) (*service.CVListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CVListResult), args.Error(1)
}

func (m *MockCVService) Get(ctx context.Context, id string) (*model.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVService) UpdateFields(ctx context.Context, id string, upd model.FieldRecord) (*service.FieldUpdateResult, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FieldUpdateResult), args.Error(1)
}

func (m *MockCVService) UpdateDocument(ctx context.Context, id string, in service.UpdateDocumentInput) (*model.CV, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVService) Extract(ctx context.Context, id string) (model.FieldRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.FieldRecord), args.Error(1)
}

func (m *MockCVService) Analyze(ctx context.Context, id string) (*fields.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fields.Analysis), args.Error(1)
}

func (m *MockCVService) Export(ctx context.Context, id, format string, dpi float64) (*service.ExportResult, error) {
	args := m.Called(ctx, id, format, dpi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockCVService) Publish(ctx context.Context, id, format string, dpi float64) (*service.PublishResult, error) {
	args := m.Called(ctx, id, format, dpi)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockCVService) ListExports(ctx context.Context, id string) ([]model.Export, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Export), args.Error(1)
}

func (m *MockCVService) OpenExport(ctx context.Context, id, exportID string) (*service.ExportDownload, error) {
	args := m.Called(ctx, id, exportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportDownload), args.Error(1)
}

func (m *MockCVService) Translate(ctx context.Context, id, language string) (*service.TranslateResult, error) {
	args := m.Called(ctx, id, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TranslateResult), args.Error(1)
}

func (m *MockCVService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
