package repository

import (
	"context"

	"cvdoc/internal/model"
)

// TemplateRepository reads the template catalogue. Both the embedded set and the Postgres
// table implement it.
type TemplateRepository interface {
	// List returns metadata only; Data is nil.
	List(ctx context.Context) ([]model.Template, error)
	// FindByID wraps templates.ErrTemplateNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*model.Template, error)
}
