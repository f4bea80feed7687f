// Package templates ships the built-in CV templates as embedded JSON assets and exposes
// a lookup interface shared by the embedded set and the database-backed store.
package templates

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"cvdoc/internal/model"
	"cvdoc/internal/scene"
)

//go:embed assets/*.json
var assets embed.FS

// ErrTemplateNotFound is returned when no template has the requested id.
var ErrTemplateNotFound = errors.New("template not found")

// Store resolves a template id to its master document.
type Store interface {
	Get(ctx context.Context, id string) (*scene.Document, error)
}

// Asset is the on-disk shape of a template file.
type Asset struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Features     []string        `json:"features"`
	TemplateData json.RawMessage `json:"template_data"`
}

// Template converts the asset into the model type, decoding its document.
func (a Asset) Template() (*model.Template, error) {
	doc, err := scene.ValidateJSON(a.TemplateData)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", a.ID, err)
	}
	return &model.Template{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Category:    a.Category,
		Features:    a.Features,
		Data:        doc,
	}, nil
}

// LoadAssets reads every embedded template, sorted by id.
func LoadAssets() ([]Asset, error) {
	entries, err := assets.ReadDir("assets")
	if err != nil {
		return nil, fmt.Errorf("read template assets: %w", err)
	}
	out := make([]Asset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := assets.ReadFile(path.Join("assets", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", e.Name(), err)
		}
		var a Asset
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", e.Name(), err)
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Embedded serves the built-in templates from memory. Get hands out deep copies so callers
// can never modify a master.
type Embedded struct {
	byID map[string]*model.Template
	ids  []string
}

var _ Store = (*Embedded)(nil)

// NewEmbedded decodes all embedded assets.
func NewEmbedded() (*Embedded, error) {
	list, err := LoadAssets()
	if err != nil {
		return nil, err
	}
	e := &Embedded{byID: make(map[string]*model.Template, len(list))}
	for _, a := range list {
		t, err := a.Template()
		if err != nil {
			return nil, err
		}
		e.byID[t.ID] = t
		e.ids = append(e.ids, t.ID)
	}
	return e, nil
}

// Get returns a copy of the template document.
func (e *Embedded) Get(_ context.Context, id string) (*scene.Document, error) {
	t, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t.Data.Clone(), nil
}

// List returns template metadata in id order.
func (e *Embedded) List(_ context.Context) ([]model.Template, error) {
	out := make([]model.Template, 0, len(e.ids))
	for _, id := range e.ids {
		t := *e.byID[id]
		t.Data = nil
		out = append(out, t)
	}
	return out, nil
}

// FindByID returns the template with a private copy of its document.
func (e *Embedded) FindByID(_ context.Context, id string) (*model.Template, error) {
	t, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	out := *t
	out.Data = t.Data.Clone()
	return &out, nil
}
