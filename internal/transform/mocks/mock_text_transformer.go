package mocks

import (
	"context"

	"cvdoc/internal/transform"

	"github.com/stretchr/testify/mock"
)

type MockTextTransformer struct {
	mock.Mock
}

func (m *MockTextTransformer) TransformTexts(ctx context.Context, texts []string, opts transform.Options) ([]string, error) {
	args := m.Called(ctx, texts, opts)
	var out []string
	if v := args.Get(0); v != nil {
		out = v.([]string)
	}
	return out, args.Error(1)
}
