package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedDocument is matched by every *MalformedError.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedError reports a structurally invalid tree together with the JSON path of the
// offending value, e.g. "children[1].children[4].attrs.x".
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed document at %s: %s", e.Path, e.Reason)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedDocument }

const (
	keyAttrs     = "attrs"
	keyClassName = "className"
	keyChildren  = "children"
)

type attrSpec struct {
	key     string
	bit     attrSet
	numeric bool
}

var (
	stageAttrs = []attrSpec{
		{"width", attrWidth, true},
		{"height", attrHeight, true},
	}
	layerAttrs = []attrSpec{
		{"id", attrID, false},
	}
	rectAttrs = []attrSpec{
		{"id", attrID, false},
		{"x", attrX, true},
		{"y", attrY, true},
		{"width", attrWidth, true},
		{"height", attrHeight, true},
		{"fill", attrFill, false},
		{"stroke", attrStroke, false},
		{"strokeWidth", attrStrokeWidth, true},
	}
	textAttrs = []attrSpec{
		{"id", attrID, false},
		{"x", attrX, true},
		{"y", attrY, true},
		{"text", attrText, false},
		{"fontSize", attrFontSize, true},
		{"fontStyle", attrFontStyle, false},
		{"fill", attrFill, false},
		{"width", attrWidth, true},
		{"height", attrHeight, true},
		{"lineHeight", attrLineHeight, true},
	}
)

// Unmarshal parses the JSON serialization of a stage.
func Unmarshal(data []byte) (*Document, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return Decode(tree)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Encode())
}

// Decode builds a Document from a plain tree as produced by encoding/json into an any.
func Decode(tree any) (*Document, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, &MalformedError{Reason: "stage is not an object"}
	}
	if _, err := className(root, ""); err != nil {
		return nil, err
	}

	d := &Document{}
	vals, rest, present, err := splitAttrs(root, "", stageAttrs)
	if err != nil {
		return nil, err
	}
	d.attrs, d.present = rest, present
	if present.has(attrWidth) {
		d.Width = vals["width"].(float64)
		if d.Width <= 0 {
			return nil, &MalformedError{Path: "attrs.width", Reason: "stage width must be positive"}
		}
		if d.Width > MaxStageSide {
			return nil, &MalformedError{Path: "attrs.width", Reason: fmt.Sprintf("stage width exceeds %g", MaxStageSide)}
		}
	}
	if present.has(attrHeight) {
		d.Height = vals["height"].(float64)
		if d.Height <= 0 {
			return nil, &MalformedError{Path: "attrs.height", Reason: "stage height must be positive"}
		}
		if d.Height > MaxStageSide {
			return nil, &MalformedError{Path: "attrs.height", Reason: fmt.Sprintf("stage height exceeds %g", MaxStageSide)}
		}
	}
	d.extra = extraKeys(root)

	children, err := childList(root, "")
	if err != nil {
		return nil, err
	}
	for i, c := range children {
		path := fmt.Sprintf("children[%d]", i)
		l, err := decodeLayer(c, path)
		if err != nil {
			return nil, err
		}
		d.Layers = append(d.Layers, l)
	}
	return d, nil
}

func decodeLayer(v any, path string) (*Layer, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedError{Path: path, Reason: "layer is not an object"}
	}
	cls, err := className(obj, path)
	if err != nil {
		return nil, err
	}
	if cls != classLayer {
		return &Layer{opaque: cloneMap(obj)}, nil
	}

	l := &Layer{}
	vals, rest, present, err := splitAttrs(obj, path, layerAttrs)
	if err != nil {
		return nil, err
	}
	l.attrs, l.present = rest, present
	if present.has(attrID) {
		l.ID = vals["id"].(string)
	}
	l.extra = extraKeys(obj)

	children, err := childList(obj, path)
	if err != nil {
		return nil, err
	}
	for i, c := range children {
		n, err := decodeNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		l.Nodes = append(l.Nodes, n)
	}
	return l, nil
}

func decodeNode(v any, path string) (Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedError{Path: path, Reason: "node is not an object"}
	}
	cls, err := className(obj, path)
	if err != nil {
		return nil, err
	}

	switch Kind(cls) {
	case KindRect:
		vals, rest, present, err := splitAttrs(obj, path, rectAttrs)
		if err != nil {
			return nil, err
		}
		if !present.has(attrWidth) {
			return nil, &MalformedError{Path: path + ".attrs.width", Reason: "rect requires width"}
		}
		if !present.has(attrHeight) {
			return nil, &MalformedError{Path: path + ".attrs.height", Reason: "rect requires height"}
		}
		r := &Rect{attrs: rest, extra: extraKeys(obj), present: present}
		r.ID, _ = vals["id"].(string)
		r.X, _ = vals["x"].(float64)
		r.Y, _ = vals["y"].(float64)
		r.Width, _ = vals["width"].(float64)
		r.Height, _ = vals["height"].(float64)
		r.Fill, _ = vals["fill"].(string)
		r.Stroke, _ = vals["stroke"].(string)
		r.StrokeWidth, _ = vals["strokeWidth"].(float64)
		return r, nil
	case KindText:
		vals, rest, present, err := splitAttrs(obj, path, textAttrs)
		if err != nil {
			return nil, err
		}
		t := &Text{attrs: rest, extra: extraKeys(obj), present: present}
		t.ID, _ = vals["id"].(string)
		t.X, _ = vals["x"].(float64)
		t.Y, _ = vals["y"].(float64)
		t.Text, _ = vals["text"].(string)
		t.FontSize, _ = vals["fontSize"].(float64)
		t.FontStyle, _ = vals["fontStyle"].(string)
		t.Fill, _ = vals["fill"].(string)
		t.Width, _ = vals["width"].(float64)
		t.Height, _ = vals["height"].(float64)
		t.LineHeight, _ = vals["lineHeight"].(float64)
		return t, nil
	default:
		return &Opaque{ClassName: cls, Raw: cloneMap(obj)}, nil
	}
}

func className(obj map[string]any, path string) (string, error) {
	raw, ok := obj[keyClassName]
	if !ok {
		return "", &MalformedError{Path: joinPath(path, keyClassName), Reason: "missing className"}
	}
	cls, ok := raw.(string)
	if !ok || cls == "" {
		return "", &MalformedError{Path: joinPath(path, keyClassName), Reason: "className must be a non-empty string"}
	}
	return cls, nil
}

func childList(obj map[string]any, path string) ([]any, error) {
	raw, ok := obj[keyChildren]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &MalformedError{Path: joinPath(path, keyChildren), Reason: "children must be an array"}
	}
	return list, nil
}

// splitAttrs separates the modelled attributes from the rest, validating their types.
func splitAttrs(obj map[string]any, path string, specs []attrSpec) (map[string]any, map[string]any, attrSet, error) {
	vals := make(map[string]any, len(specs))
	var present attrSet

	raw, ok := obj[keyAttrs]
	if !ok || raw == nil {
		return vals, nil, 0, nil
	}
	attrs, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, 0, &MalformedError{Path: joinPath(path, keyAttrs), Reason: "attrs must be an object"}
	}

	var rest map[string]any
	known := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		known[s.key] = struct{}{}
		v, ok := attrs[s.key]
		if !ok {
			continue
		}
		attrPath := joinPath(path, keyAttrs+"."+s.key)
		if s.numeric {
			f, err := toFloat(v)
			if err != nil {
				return nil, nil, 0, &MalformedError{Path: attrPath, Reason: err.Error()}
			}
			vals[s.key] = f
		} else {
			str, ok := v.(string)
			if !ok {
				return nil, nil, 0, &MalformedError{Path: attrPath, Reason: "expected a string"}
			}
			vals[s.key] = str
		}
		present |= s.bit
	}
	for k, v := range attrs {
		if _, ok := known[k]; ok {
			continue
		}
		if rest == nil {
			rest = make(map[string]any)
		}
		rest[k] = cloneValue(v)
	}
	return vals, rest, present, nil
}

func extraKeys(obj map[string]any) map[string]any {
	var extra map[string]any
	for k, v := range obj {
		switch k {
		case keyAttrs, keyClassName, keyChildren:
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = cloneValue(v)
	}
	return extra
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", string(n))
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Encode returns the plain tree form of the document.
func (d *Document) Encode() map[string]any {
	attrs := cloneMap(d.attrs)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	putNum(attrs, "width", d.Width, d.present.has(attrWidth))
	putNum(attrs, "height", d.Height, d.present.has(attrHeight))

	children := make([]any, 0, len(d.Layers))
	for _, l := range d.Layers {
		children = append(children, l.encode())
	}

	out := cloneMap(d.extra)
	if out == nil {
		out = make(map[string]any, 3)
	}
	out[keyAttrs] = attrs
	out[keyClassName] = classStage
	out[keyChildren] = children
	return out
}

func (l *Layer) encode() map[string]any {
	if l.opaque != nil {
		return cloneMap(l.opaque)
	}
	attrs := cloneMap(l.attrs)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	putStr(attrs, "id", l.ID, l.present.has(attrID))

	children := make([]any, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		children = append(children, encodeNode(n))
	}

	out := cloneMap(l.extra)
	if out == nil {
		out = make(map[string]any, 3)
	}
	out[keyAttrs] = attrs
	out[keyClassName] = classLayer
	out[keyChildren] = children
	return out
}

func encodeNode(n Node) map[string]any {
	var (
		attrs map[string]any
		extra map[string]any
	)
	switch v := n.(type) {
	case *Rect:
		attrs = cloneMap(v.attrs)
		if attrs == nil {
			attrs = make(map[string]any)
		}
		p := v.present
		putStr(attrs, "id", v.ID, p.has(attrID))
		putNum(attrs, "x", v.X, p.has(attrX))
		putNum(attrs, "y", v.Y, p.has(attrY))
		putNum(attrs, "width", v.Width, true)
		putNum(attrs, "height", v.Height, true)
		putStr(attrs, "fill", v.Fill, p.has(attrFill))
		putStr(attrs, "stroke", v.Stroke, p.has(attrStroke))
		putNum(attrs, "strokeWidth", v.StrokeWidth, p.has(attrStrokeWidth))
		extra = v.extra
	case *Text:
		attrs = cloneMap(v.attrs)
		if attrs == nil {
			attrs = make(map[string]any)
		}
		p := v.present
		putStr(attrs, "id", v.ID, p.has(attrID))
		putNum(attrs, "x", v.X, p.has(attrX))
		putNum(attrs, "y", v.Y, p.has(attrY))
		putStr(attrs, "text", v.Text, p.has(attrText))
		putNum(attrs, "fontSize", v.FontSize, p.has(attrFontSize))
		putStr(attrs, "fontStyle", v.FontStyle, p.has(attrFontStyle))
		putStr(attrs, "fill", v.Fill, p.has(attrFill))
		putNum(attrs, "width", v.Width, p.has(attrWidth))
		putNum(attrs, "height", v.Height, p.has(attrHeight))
		putNum(attrs, "lineHeight", v.LineHeight, p.has(attrLineHeight))
		extra = v.extra
	case *Opaque:
		return cloneMap(v.Raw)
	}

	out := cloneMap(extra)
	if out == nil {
		out = make(map[string]any, 2)
	}
	out[keyAttrs] = attrs
	out[keyClassName] = string(n.Kind())
	return out
}

func putNum(m map[string]any, key string, v float64, present bool) {
	if present || v != 0 {
		m[key] = v
	}
}

func putStr(m map[string]any, key, v string, present bool) {
	if present || v != "" {
		m[key] = v
	}
}
