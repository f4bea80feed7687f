package mocks

import (
	"context"

	"cvdoc/internal/scene"

	"github.com/stretchr/testify/mock"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderToPage(ctx context.Context, doc *scene.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	var out []byte
	if v := args.Get(0); v != nil {
		out = v.([]byte)
	}
	return out, args.Error(1)
}

func (m *MockRenderer) RenderToBitmap(ctx context.Context, doc *scene.Document, dpi float64) ([]byte, error) {
	args := m.Called(ctx, doc, dpi)
	var out []byte
	if v := args.Get(0); v != nil {
		out = v.([]byte)
	}
	return out, args.Error(1)
}
