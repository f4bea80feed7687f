package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cvdoc/internal/model"
	"cvdoc/internal/repository"
)

// CVPostgres is a PostgreSQL implementation of repository.CVRepository.
// Content is stored as JSONB: {"template_data": <stage>, "form_data": <record>}.
type CVPostgres struct {
	db *sql.DB
}

// NewCVPostgres creates a new CVPostgres repository.
func NewCVPostgres(db *sql.DB) *CVPostgres {
	return &CVPostgres{db: db}
}

var _ repository.CVRepository = (*CVPostgres)(nil)

const cvColumns = `id, title, template_id, content, views, downloads, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCV(row rowScanner) (*model.CV, error) {
	var (
		cv      model.CV
		content []byte
	)
	if err := row.Scan(
		&cv.ID,
		&cv.Title,
		&cv.TemplateID,
		&content,
		&cv.Views,
		&cv.Downloads,
		&cv.CreatedAt,
		&cv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &cv.Content); err != nil {
			return nil, fmt.Errorf("decode cv %s content: %w", cv.ID, err)
		}
	}
	return &cv, nil
}

// Create inserts a new CV row and returns the stored record.
func (r *CVPostgres) Create(ctx context.Context, cv *model.CV) (*model.CV, error) {
	content, err := json.Marshal(cv.Content)
	if err != nil {
		return nil, fmt.Errorf("encode cv content: %w", err)
	}
	const q = `
		INSERT INTO cvs (id, title, template_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + cvColumns
	row := r.db.QueryRowContext(ctx, q,
		cv.ID,
		cv.Title,
		cv.TemplateID,
		content,
		cv.CreatedAt,
		cv.UpdatedAt,
	)
	return scanCV(row)
}

// FindByID fetches a single CV by its ID.
func (r *CVPostgres) FindByID(ctx context.Context, id string) (*model.CV, error) {
	const q = `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1`
	return scanCV(r.db.QueryRowContext(ctx, q, id))
}

// List returns CVs using LIMIT/OFFSET pagination and a total count.
func (r *CVPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.CV], error) {
	const qCount = `SELECT COUNT(*) FROM cvs`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + cvColumns + `
		FROM cvs
		ORDER BY updated_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CV, 0)
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.CV]{
		Items: items,
		Total: total,
	}, nil
}

// Update stores the mutable columns of cv.
func (r *CVPostgres) Update(ctx context.Context, cv *model.CV) error {
	content, err := json.Marshal(cv.Content)
	if err != nil {
		return fmt.Errorf("encode cv content: %w", err)
	}
	const q = `UPDATE cvs SET title = $2, content = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, cv.ID, cv.Title, content, cv.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// IncrementDownloads adds one to the download counter.
func (r *CVPostgres) IncrementDownloads(ctx context.Context, id string) error {
	const q = `UPDATE cvs SET downloads = downloads + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// IncrementViews adds one to the view counter.
func (r *CVPostgres) IncrementViews(ctx context.Context, id string) error {
	const q = `UPDATE cvs SET views = views + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a CV by ID. Its exports go with it (ON DELETE CASCADE).
func (r *CVPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM cvs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
