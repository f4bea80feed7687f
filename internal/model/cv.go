package model

import (
	"time"

	"cvdoc/internal/scene"
)

// CV is a user's résumé instance. Content.TemplateData is its own copy of the template
// document, edited in place.
type CV struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	Content    CVContent `json:"content"`
	Views      int       `json:"views"`
	Downloads  int       `json:"downloads"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CVContent is the persisted content column.
type CVContent struct {
	TemplateData *scene.Document `json:"template_data"`
	FormData     FieldRecord     `json:"form_data"`
}

// Template is an immutable master document with placeholder text.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Features    []string        `json:"features"`
	Data        *scene.Document `json:"data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
