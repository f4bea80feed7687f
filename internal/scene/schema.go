package scene

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// stageSchema is a coarse structural check applied to imported documents before decoding.
// Decode remains the authority on node level errors. The size bound mirrors MaxStageSide.
const stageSchema = `{
  "type": "object",
  "required": ["className"],
  "properties": {
    "className": {"const": "Stage"},
    "attrs": {
      "type": "object",
      "properties": {
        "width": {"type": "number", "exclusiveMinimum": 0, "maximum": 14400},
        "height": {"type": "number", "exclusiveMinimum": 0, "maximum": 14400}
      }
    },
    "children": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["className"],
        "properties": {
          "className": {"type": "string"},
          "children": {"type": "array", "items": {"type": "object", "required": ["className"]}}
        }
      }
    }
  }
}`

var stageSchemaLoader = gojsonschema.NewStringLoader(stageSchema)

// ValidateJSON checks raw JSON against the stage schema and then decodes it.
func ValidateJSON(data []byte) (*Document, error) {
	res, err := gojsonschema.Validate(stageSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if !res.Valid() {
		first := res.Errors()[0]
		path := first.Field()
		if path == "(root)" {
			path = ""
		}
		return nil, &MalformedError{Path: schemaPath(path), Reason: first.Description()}
	}
	return Unmarshal(data)
}

// schemaPath converts gojsonschema's "children.1.attrs" form into "children[1].attrs".
func schemaPath(p string) string {
	if p == "" {
		return ""
	}
	parts := strings.Split(p, ".")
	var b strings.Builder
	for i, part := range parts {
		if isDigits(part) && i > 0 {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
