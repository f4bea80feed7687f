package fields

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cvdoc/internal/model"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidRecord is matched by every *ValidationError.
var ErrInvalidRecord = errors.New("invalid field record")

// ValidationError lists every problem found in a record, keyed by field name.
type ValidationError struct {
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Problems))
	for k := range e.Problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Problems[k]
	}
	return fmt.Sprintf("invalid field record: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRecord }

const recordSchema = `{
  "type": "object",
  "required": ["full_name", "email", "position"],
  "properties": {
    "full_name": {"type": "string", "minLength": 1},
    "position": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 1, "pattern": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"},
    "experience": {"type": ["array", "null"]},
    "education": {"type": ["array", "null"]},
    "technical_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "soft_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "languages": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

var recordSchemaLoader = gojsonschema.NewStringLoader(recordSchema)

// Validate checks that a record has a name, a well formed email and a position.
func Validate(rec model.FieldRecord) error {
	res, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewGoLoader(rec))
	if err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if res.Valid() {
		return nil
	}

	problems := make(map[string]string)
	for _, e := range res.Errors() {
		field := e.Field()
		if p, ok := e.Details()["property"].(string); ok && e.Type() == "required" {
			field = p
		}
		if _, ok := problems[field]; ok {
			continue
		}
		switch {
		case e.Type() == "string_gte" || e.Type() == "required":
			problems[field] = "is required"
		case field == "email":
			problems[field] = "is not a valid email address"
		default:
			problems[field] = e.Description()
		}
	}
	return &ValidationError{Problems: problems}
}
