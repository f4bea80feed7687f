package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cvdoc/internal/model"
	"cvdoc/internal/repository"
	"cvdoc/internal/scene"
	"cvdoc/internal/templates"
)

// TemplatePostgres reads the templates table seeded by the migration.
// It also serves as the template Store for CV creation.
type TemplatePostgres struct {
	db *sql.DB
}

// NewTemplatePostgres creates a new TemplatePostgres repository.
func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var (
	_ repository.TemplateRepository = (*TemplatePostgres)(nil)
	_ templates.Store               = (*TemplatePostgres)(nil)
)

// List returns template metadata ordered by id.
func (r *TemplatePostgres) List(ctx context.Context) ([]model.Template, error) {
	const q = `
		SELECT id, name, description, category, features, created_at
		FROM templates
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Template, 0)
	for rows.Next() {
		var (
			t        model.Template
			features []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &features, &t.CreatedAt); err != nil {
			return nil, err
		}
		if err := decodeFeatures(features, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns a template with its decoded document.
func (r *TemplatePostgres) FindByID(ctx context.Context, id string) (*model.Template, error) {
	const q = `
		SELECT id, name, description, category, features, data, created_at
		FROM templates
		WHERE id = $1`
	var (
		t        model.Template
		features []byte
		data     []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Description, &t.Category, &features, &data, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", templates.ErrTemplateNotFound, id)
		}
		return nil, err
	}
	if err := decodeFeatures(features, &t); err != nil {
		return nil, err
	}
	doc, err := scene.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}
	t.Data = doc
	return &t, nil
}

// Get implements templates.Store.
func (r *TemplatePostgres) Get(ctx context.Context, id string) (*scene.Document, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Data, nil
}

func decodeFeatures(raw []byte, t *model.Template) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &t.Features); err != nil {
		return fmt.Errorf("decode template %s features: %w", t.ID, err)
	}
	return nil
}
