// Package scene implements the CV document model: a Konva-compatible scene graph made of a
// stage with ordered layers, each holding positioned rectangles and text runs.
//
// Coordinates are top-left based with y growing downward, expressed in device independent
// units. A Document is not safe for concurrent mutation; each CV owns its own copy.
package scene

// Kind discriminates the node variants of a Document.
type Kind string

const (
	KindRect Kind = "Rect"
	KindText Kind = "Text"
)

const (
	classStage = "Stage"
	classLayer = "Layer"
)

// Page defaults used when a stage omits its size (A4 at 72 units per inch).
const (
	DefaultWidth  = 595.0
	DefaultHeight = 842.0

	// MaxStageSide bounds each stage dimension.
	MaxStageSide = 14400.0
)

// Text defaults applied when a Text node omits the attribute.
const (
	DefaultFontSize   = 12.0
	DefaultTextWidth  = 500.0
	DefaultLineHeight = 1.2
	DefaultFill       = "#000000"
	FontStyleBold     = "bold"
	FontStyleNormal   = "normal"
)

// Node is one paintable element of a Layer. The concrete types are *Rect, *Text and
// *Opaque; the set is closed.
type Node interface {
	NodeID() string
	Kind() Kind
	clone() Node
}

// Document is the root stage of a CV page.
type Document struct {
	Width  float64
	Height float64
	Layers []*Layer

	attrs   map[string]any
	extra   map[string]any
	present attrSet

	index map[string]Node
}

// New returns an empty document of the given size.
func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

// Size returns the stage size, substituting the A4 defaults for a dimension that was never set.
func (d *Document) Size() (width, height float64) {
	width, height = d.Width, d.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Layer groups nodes; it has no geometry of its own. Node order is paint order.
type Layer struct {
	ID    string
	Nodes []Node

	attrs   map[string]any
	extra   map[string]any
	present attrSet

	// opaque holds a stage child that is not a Layer; such layers have no nodes.
	opaque map[string]any
}

// NewLayer returns an empty layer.
func NewLayer(id string) *Layer {
	l := &Layer{ID: id}
	if id != "" {
		l.present |= attrID
	}
	return l
}

// Opaque reports whether the layer was decoded from an unknown stage child.
func (l *Layer) Opaque() bool { return l.opaque != nil }

// Rect is a filled rectangle with an optional stroke.
type Rect struct {
	ID          string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Fill        string
	Stroke      string
	StrokeWidth float64

	attrs   map[string]any
	extra   map[string]any
	present attrSet
}

func (r *Rect) NodeID() string { return r.ID }
func (r *Rect) Kind() Kind     { return KindRect }

func (r *Rect) clone() Node {
	c := *r
	c.attrs = cloneMap(r.attrs)
	c.extra = cloneMap(r.extra)
	return &c
}

// Text is a single-style text block wrapped against Width.
type Text struct {
	ID         string
	X          float64
	Y          float64
	Text       string
	FontSize   float64
	FontStyle  string
	Fill       string
	Width      float64
	Height     float64
	LineHeight float64

	attrs   map[string]any
	extra   map[string]any
	present attrSet
}

func (t *Text) NodeID() string { return t.ID }
func (t *Text) Kind() Kind     { return KindText }

func (t *Text) clone() Node {
	c := *t
	c.attrs = cloneMap(t.attrs)
	c.extra = cloneMap(t.extra)
	return &c
}

// Size returns the font size, falling back to DefaultFontSize when unset.
func (t *Text) Size() float64 {
	if t.present.has(attrFontSize) || t.FontSize != 0 {
		return t.FontSize
	}
	return DefaultFontSize
}

// WrapWidth returns the wrap boundary, falling back to DefaultTextWidth when unset.
func (t *Text) WrapWidth() float64 {
	if t.present.has(attrWidth) || t.Width != 0 {
		return t.Width
	}
	return DefaultTextWidth
}

// Leading returns the line height multiplier, falling back to DefaultLineHeight.
func (t *Text) Leading() float64 {
	if t.present.has(attrLineHeight) || t.LineHeight != 0 {
		if t.LineHeight < 0 {
			return 0
		}
		return t.LineHeight
	}
	return DefaultLineHeight
}

// Color returns the fill color or DefaultFill.
func (t *Text) Color() string {
	if t.Fill == "" {
		return DefaultFill
	}
	return t.Fill
}

// Bold reports whether the node asks for the bold face.
func (t *Text) Bold() bool { return t.FontStyle == FontStyleBold }

// HasHeight reports whether the advisory height was set.
func (t *Text) HasHeight() bool { return t.present.has(attrHeight) || t.Height != 0 }

// Opaque keeps a node of a kind this package does not model so that documents written by
// newer editors survive a decode/encode cycle. Opaque nodes are never painted or located.
type Opaque struct {
	ClassName string
	Raw       map[string]any
}

func (o *Opaque) NodeID() string { return "" }
func (o *Opaque) Kind() Kind     { return Kind(o.ClassName) }

func (o *Opaque) clone() Node {
	return &Opaque{ClassName: o.ClassName, Raw: cloneMap(o.Raw)}
}

// Clone returns a deep copy of the document. The copy has its own lookup index.
func (d *Document) Clone() *Document {
	c := &Document{
		Width:   d.Width,
		Height:  d.Height,
		attrs:   cloneMap(d.attrs),
		extra:   cloneMap(d.extra),
		present: d.present,
		Layers:  make([]*Layer, len(d.Layers)),
	}
	for i, l := range d.Layers {
		nl := &Layer{
			ID:      l.ID,
			attrs:   cloneMap(l.attrs),
			extra:   cloneMap(l.extra),
			present: l.present,
			opaque:  cloneMap(l.opaque),
			Nodes:   make([]Node, len(l.Nodes)),
		}
		for j, n := range l.Nodes {
			nl.Nodes[j] = n.clone()
		}
		c.Layers[i] = nl
	}
	return c
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

type attrSet uint32

const (
	attrID attrSet = 1 << iota
	attrX
	attrY
	attrWidth
	attrHeight
	attrFill
	attrStroke
	attrStrokeWidth
	attrText
	attrFontSize
	attrFontStyle
	attrLineHeight
)

func (s attrSet) has(a attrSet) bool { return s&a != 0 }
