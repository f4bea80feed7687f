package repository

import (
	"context"

	"cvdoc/internal/model"
)

// ExportRepository records published renders.
type ExportRepository interface {
	Create(ctx context.Context, e *model.Export) (*model.Export, error)
	ListByCV(ctx context.Context, cvID string) ([]model.Export, error)
}
