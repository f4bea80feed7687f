package render

import (
	"image/color"
	"slices"
	"strings"

	"cvdoc/internal/scene"

	"golang.org/x/text/unicode/norm"
)

// OpKind discriminates display list entries.
type OpKind int

const (
	OpRect OpKind = iota
	OpText
)

// Op is one paint operation in page space: points, origin at the bottom-left, y up.
// For OpRect (X, Y) is the lower-left corner; for OpText it is the baseline origin.
type Op struct {
	Kind        OpKind
	NodeID      string
	X, Y        float64
	W, H        float64
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Text        string
	Role        Role
	Size        float64
}

// Page is the display list of one laid out page. Both the PDF writer and the rasterizer
// consume it.
type Page struct {
	Width  float64
	Height float64
	Ops    []Op
}

// PageSet is a laid out document.
type PageSet struct {
	Pages []*Page
}

type layouter struct {
	scale   float64
	fonts   *FontSet
	measure Measurer
	missing map[rune]struct{}
}

func (l *layouter) noteMissing(r rune) {
	if l.missing == nil {
		l.missing = make(map[rune]struct{})
	}
	l.missing[r] = struct{}{}
}

// substituted lists the runes painted as '?' so far, in code point order.
func (l *layouter) substituted() []rune {
	out := make([]rune, 0, len(l.missing))
	for r := range l.missing {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func (l *layouter) page(doc *scene.Document) *Page {
	w, h := doc.Size()
	p := &Page{Width: w * l.scale, Height: h * l.scale}
	doc.Walk(func(n scene.Node) bool {
		switch v := n.(type) {
		case *scene.Rect:
			l.rect(p, v)
		case *scene.Text:
			l.text(p, v)
		}
		return true
	})
	return p
}

func (l *layouter) rect(p *Page, r *scene.Rect) {
	s := l.scale
	w, h := r.Width*s, r.Height*s
	op := Op{
		Kind:   OpRect,
		NodeID: r.ID,
		X:      r.X * s,
		Y:      p.Height - r.Y*s - h,
		W:      w,
		H:      h,
		Fill:   parseColor(r.Fill),
	}
	if r.StrokeWidth > 0 {
		op.StrokeWidth = r.StrokeWidth * s
		op.Stroke = black
		if r.Stroke != "" {
			op.Stroke = parseColor(r.Stroke)
		}
	}
	p.Ops = append(p.Ops, op)
}

func (l *layouter) text(p *Page, t *scene.Text) {
	s := l.scale
	size := t.Size() * s
	if size <= 0 || t.Text == "" {
		return
	}
	role := RoleRegular
	if t.Bold() {
		role = RoleBold
	}
	x := t.X * s
	baseline := p.Height - t.Y*s - size
	width := t.WrapWidth() * s
	step := size * t.Leading()
	fill := parseColor(t.Color())

	for _, line := range splitLines(norm.NFC.String(t.Text)) {
		if strings.TrimSpace(line) == "" {
			baseline -= step
			continue
		}
		for _, wrapped := range l.wrap(line, width, role, size) {
			l.paintLine(p, t.ID, wrapped, x, baseline, role, size, fill)
			baseline -= step
		}
	}
}

// wrap breaks line greedily on single spaces. A word wider than width gets a line of its own.
func (l *layouter) wrap(line string, width float64, role Role, size float64) []string {
	var (
		out []string
		cur string
	)
	for _, word := range strings.Split(line, " ") {
		test := word
		if cur != "" {
			test = cur + " " + word
		}
		if l.width(test, role, size) <= width {
			cur = test
			continue
		}
		if cur != "" {
			out = append(out, cur)
		}
		cur = word
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func (l *layouter) width(text string, role Role, size float64) float64 {
	var w float64
	for _, r := range segment(text, role, l.fonts, l.noteMissing) {
		w += l.measure.Measure(r.Text, l.fonts.Face(r.Role), size)
	}
	return w
}

func (l *layouter) paintLine(p *Page, id, line string, x, baseline float64, role Role, size float64, fill color.RGBA) {
	for _, r := range segment(line, role, l.fonts, l.noteMissing) {
		p.Ops = append(p.Ops, Op{
			Kind:   OpText,
			NodeID: id,
			X:      x,
			Y:      baseline,
			Fill:   fill,
			Text:   r.Text,
			Role:   r.Role,
			Size:   size,
		})
		x += l.measure.Measure(r.Text, l.fonts.Face(r.Role), size)
	}
}

// splitLines splits on CRLF when the text has any, otherwise on LF.
func splitLines(s string) []string {
	if strings.Contains(s, "\r\n") {
		return strings.Split(s, "\r\n")
	}
	return strings.Split(s, "\n")
}
