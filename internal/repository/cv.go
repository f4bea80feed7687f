package repository

import (
	"context"

	"cvdoc/internal/model"
)

// CVRepository defines data access for CVs. No business logic here; strictly persistence.
type CVRepository interface {
	// Create inserts a new CV and returns the stored row.
	Create(ctx context.Context, cv *model.CV) (*model.CV, error)

	// FindByID returns sql.ErrNoRows when the CV does not exist.
	FindByID(ctx context.Context, id string) (*model.CV, error)

	// List returns a page of CVs, most recently updated first, and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.CV], error)

	// Update stores title, content and updated_at. It returns sql.ErrNoRows when nothing matched.
	Update(ctx context.Context, cv *model.CV) error

	// IncrementDownloads and IncrementViews bump the counters by one.
	IncrementDownloads(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	// Delete removes a CV by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
