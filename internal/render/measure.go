package render

import (
	"bytes"
	"unicode"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Measurer returns the advance width of text set in f at size, in the same unit as size.
// Implementations are used by one render at a time.
type Measurer interface {
	Measure(text string, f *Font, size float64) float64
}

// shapingMeasurer shapes text with HarfBuzz so that combining marks (Vietnamese diacritics
// that survive NFC) and kerning are accounted for. Faces the shaper cannot parse are
// measured with plain sfnt advances.
type shapingMeasurer struct {
	shaper shaping.HarfbuzzShaper
	faces  map[*Font]*gotext.Face
	buf    sfnt.Buffer
}

// NewShapingMeasurer returns the default measurer.
func NewShapingMeasurer() Measurer {
	return &shapingMeasurer{faces: make(map[*Font]*gotext.Face)}
}

func (m *shapingMeasurer) Measure(text string, f *Font, size float64) float64 {
	if text == "" || f == nil || size <= 0 {
		return 0
	}
	face := m.face(f)
	if face == nil {
		return m.sfntAdvance(text, f, size)
	}

	runes := []rune(text)
	out := m.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    scriptOf(runes),
		Language:  language.DefaultLanguage(),
	})
	return float64(out.Advance) / 64
}

func (m *shapingMeasurer) face(f *Font) *gotext.Face {
	if face, ok := m.faces[f]; ok {
		return face
	}
	face, err := gotext.ParseTTF(bytes.NewReader(f.Data))
	if err != nil {
		face = nil
	}
	m.faces[f] = face
	return face
}

func (m *shapingMeasurer) sfntAdvance(text string, f *Font, size float64) float64 {
	if f.sfnt == nil {
		return 0
	}
	ppem := fixed.Int26_6(size * 64)
	var total fixed.Int26_6
	for _, r := range text {
		idx, err := f.sfnt.GlyphIndex(&m.buf, r)
		if err != nil {
			continue
		}
		adv, err := f.sfnt.GlyphAdvance(&m.buf, idx, ppem, xfont.HintingNone)
		if err != nil {
			continue
		}
		total += adv
	}
	return float64(total) / 64
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}
