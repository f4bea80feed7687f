package scene

// NewRect returns a rect with every geometry attribute marked present.
func NewRect(id string, x, y, w, h float64, fill string) *Rect {
	return &Rect{
		ID: id, X: x, Y: y, Width: w, Height: h, Fill: fill,
		present: attrID | attrX | attrY | attrWidth | attrHeight | attrFill,
	}
}

// WithStroke sets the stroke color and width.
func (r *Rect) WithStroke(color string, width float64) *Rect {
	r.Stroke, r.StrokeWidth = color, width
	r.present |= attrStroke | attrStrokeWidth
	return r
}

// NewText returns a text node using the package defaults for unset attributes.
func NewText(id string, x, y float64, text string) *Text {
	return &Text{
		ID: id, X: x, Y: y, Text: text,
		present: attrID | attrX | attrY | attrText,
	}
}

// WithFont sets the font size and style.
func (t *Text) WithFont(size float64, style string) *Text {
	t.FontSize, t.FontStyle = size, style
	t.present |= attrFontSize
	if style != "" {
		t.present |= attrFontStyle
	}
	return t
}

// WithBox sets the wrap width and line height multiplier.
func (t *Text) WithBox(width, lineHeight float64) *Text {
	t.Width, t.LineHeight = width, lineHeight
	t.present |= attrWidth | attrLineHeight
	return t
}

// WithFill sets the text color.
func (t *Text) WithFill(color string) *Text {
	t.Fill = color
	t.present |= attrFill
	return t
}

// Attr returns an attribute that is not modelled by the typed fields, such as Konva's wrap.
func (t *Text) Attr(key string) (any, bool) {
	v, ok := t.attrs[key]
	return v, ok
}
