package postgres

import (
	"context"
	"database/sql"

	"cvdoc/internal/model"
	"cvdoc/internal/repository"
)

// ExportPostgres stores published export metadata.
type ExportPostgres struct {
	db *sql.DB
}

// NewExportPostgres creates a new ExportPostgres repository.
func NewExportPostgres(db *sql.DB) *ExportPostgres {
	return &ExportPostgres{db: db}
}

var _ repository.ExportRepository = (*ExportPostgres)(nil)

// Create inserts an export row and returns the stored record.
func (r *ExportPostgres) Create(ctx context.Context, e *model.Export) (*model.Export, error) {
	const q = `
		INSERT INTO exports (id, cv_id, format, filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, cv_id, format, filename, storage_path, size, content_type, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.CVID,
		e.Format,
		e.Filename,
		e.StoragePath,
		e.Size,
		e.ContentType,
		e.CreatedAt,
	)
	var out model.Export
	if err := row.Scan(
		&out.ID,
		&out.CVID,
		&out.Format,
		&out.Filename,
		&out.StoragePath,
		&out.Size,
		&out.ContentType,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByCV returns the exports of a CV, newest first.
func (r *ExportPostgres) ListByCV(ctx context.Context, cvID string) ([]model.Export, error) {
	const q = `
		SELECT id, cv_id, format, filename, storage_path, size, content_type, created_at
		FROM exports
		WHERE cv_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, cvID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Export, 0)
	for rows.Next() {
		var e model.Export
		if err := rows.Scan(
			&e.ID,
			&e.CVID,
			&e.Format,
			&e.Filename,
			&e.StoragePath,
			&e.Size,
			&e.ContentType,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
