// Package placeholder substitutes {{...}} expressions in template text nodes with values
// from a field record.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"

	"cvdoc/internal/scene"
)

// Data is the record a template is resolved against. Lists may be []any, []string,
// []map[string]any or []map[string]string.
type Data map[string]any

// Alternatives are ordered by precedence; regexp picks the leftmost match and, at equal
// positions, the earliest alternative.
var tokenRE = regexp.MustCompile(
	`\{\{(\w+)\[(\d+)\]\.start_date\}\}\s*-\s*\{\{(\w+)\[(\d+)\]\.end_date\}\}` +
		`|\{\{(\w+)\[(\d+)\]\.(\w+)\}\}` +
		`|\{\{(\w+)\[(\d+)\]\}\}` +
		`|\{\{(\w+)\}\}`,
)

// Resolve returns a deep copy of tpl with every Text node's text resolved against data.
// tpl is not modified.
func Resolve(tpl *scene.Document, data Data) *scene.Document {
	doc := tpl.Clone()
	for _, t := range doc.TextNodes() {
		if strings.Contains(t.Text, "{{") {
			t.Text = Text(t.Text, data)
		}
	}
	return doc
}

// Text resolves every placeholder in s, left to right and non-overlapping.
func Text(s string, data Data) string {
	matches := tokenRE.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		b.WriteString(replace(s, m, data))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func replace(s string, m []int, data Data) string {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return s[m[2*i]:m[2*i+1]]
	}

	switch {
	case m[2] >= 0:
		arr, idx := group(1), group(2)
		if arr != group(3) || idx != group(4) {
			// Two unrelated items: resolve each side on its own and keep the text between them.
			openEnd := strings.Index(s[m[0]:m[1]], "}}") + m[0] + 2
			closeStart := strings.LastIndex(s[m[0]:m[1]], "{{") + m[0]
			return field(data, arr, idx, "start_date") +
				s[openEnd:closeStart] +
				field(data, group(3), group(4), "end_date")
		}
		return dateRange(data, arr, idx)
	case m[10] >= 0:
		return field(data, group(5), group(6), group(7))
	case m[16] >= 0:
		v, ok := item(data, group(8), group(9))
		if !ok {
			return ""
		}
		return stringify(v)
	default:
		name := group(10)
		v, ok := data[name]
		if !ok {
			return s[m[0]:m[1]]
		}
		return stringify(v)
	}
}

func dateRange(data Data, arr, idx string) string {
	start := field(data, arr, idx, "start_date")
	end := field(data, arr, idx, "end_date")
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func field(data Data, arr, idx, name string) string {
	v, ok := item(data, arr, idx)
	if !ok {
		return ""
	}
	switch rec := v.(type) {
	case map[string]any:
		return stringify(rec[name])
	case map[string]string:
		return rec[name]
	case Data:
		return stringify(rec[name])
	default:
		return ""
	}
}

func item(data Data, arr, idx string) (any, bool) {
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return nil, false
	}
	switch list := data[arr].(type) {
	case []any:
		if i < len(list) {
			return list[i], true
		}
	case []string:
		if i < len(list) {
			return list[i], true
		}
	case []map[string]any:
		if i < len(list) {
			return list[i], true
		}
	case []map[string]string:
		if i < len(list) {
			return list[i], true
		}
	}
	return nil, false
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
