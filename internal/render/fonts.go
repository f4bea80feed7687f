package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Role is the logical face a run of text is painted with.
type Role int

const (
	RoleRegular Role = iota
	RoleBold
	RoleSymbol
)

func (r Role) String() string {
	switch r {
	case RoleRegular:
		return "regular"
	case RoleBold:
		return "bold"
	case RoleSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// FontSource yields the bytes of one TrueType font.
type FontSource interface {
	Name() string
	Load() ([]byte, error)
}

type fileSource string

// FileSource reads a font from disk when fonts are resolved.
func FileSource(path string) FontSource { return fileSource(path) }

func (f fileSource) Name() string { return string(f) }

func (f fileSource) Load() ([]byte, error) { return os.ReadFile(string(f)) }

type bytesSource struct {
	name string
	data []byte
}

// BytesSource serves an in-memory font.
func BytesSource(name string, data []byte) FontSource { return bytesSource{name: name, data: data} }

func (b bytesSource) Name() string { return b.name }

func (b bytesSource) Load() ([]byte, error) { return b.data, nil }

// Font is a parsed, PDF-registrable font.
type Font struct {
	Name string
	Data []byte
	sfnt *sfnt.Font
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	if f == nil || f.sfnt == nil {
		return false
	}
	var buf sfnt.Buffer
	idx, err := f.sfnt.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// FontSet holds the resolved faces. Symbol is nil when no symbol font could be loaded.
type FontSet struct {
	Regular *Font
	Bold    *Font
	Symbol  *Font
}

// Face returns the font for role, falling back to Regular.
func (s *FontSet) Face(role Role) *Font {
	switch role {
	case RoleBold:
		if s.Bold != nil {
			return s.Bold
		}
	case RoleSymbol:
		if s.Symbol != nil {
			return s.Symbol
		}
	}
	return s.Regular
}

// FontCandidates lists, per role, sources tried in order before the built-in Go fonts.
type FontCandidates struct {
	Regular []FontSource
	Bold    []FontSource
	Symbol  []FontSource
}

// Registry resolves the candidates once per process. Resolve is safe for concurrent use;
// every call after the first returns the same set.
type Registry struct {
	candidates FontCandidates
	logger     *slog.Logger

	once sync.Once
	set  *FontSet
}

// NewRegistry builds a registry; a nil logger discards fallback warnings.
func NewRegistry(c FontCandidates, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{candidates: c, logger: logger}
}

// Resolve loads the font set on first use.
func (r *Registry) Resolve() *FontSet {
	r.once.Do(func() {
		r.set = &FontSet{
			Regular: r.pick(RoleRegular, r.candidates.Regular, BytesSource("goregular", goregular.TTF)),
			Bold:    r.pick(RoleBold, r.candidates.Bold, BytesSource("gobold", gobold.TTF)),
			Symbol:  r.pick(RoleSymbol, r.candidates.Symbol, nil),
		}
	})
	return r.set
}

func (r *Registry) pick(role Role, sources []FontSource, builtin FontSource) *Font {
	for _, src := range sources {
		f, err := loadFont(src)
		if err == nil {
			r.logger.Debug("font resolved", "event", "font_resolved", "role", role.String(), "source", src.Name())
			return f
		}
		r.logger.Warn("font unavailable",
			"event", "font_unavailable",
			"role", role.String(),
			"source", src.Name(),
			"error", err.Error(),
		)
	}
	if builtin == nil {
		if len(sources) > 0 {
			r.logger.Warn("no symbol font, pictographs render as '?'", "event", "font_fallback", "role", role.String())
		}
		return nil
	}
	f, err := loadFont(builtin)
	if err != nil {
		// Embedded Go fonts always parse.
		panic(fmt.Sprintf("render: built-in font %s: %v", builtin.Name(), err))
	}
	if len(sources) > 0 {
		r.logger.Warn("using built-in font", "event", "font_fallback", "role", role.String(), "source", builtin.Name())
	}
	return f
}

func loadFont(src FontSource) (*Font, error) {
	data, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := checkPDFEmbeddable(data); err != nil {
		return nil, err
	}
	return &Font{Name: src.Name(), Data: data, sfnt: parsed}, nil
}

// checkPDFEmbeddable registers the font with a throwaway document, so a font the PDF
// writer rejects is caught before any render starts.
func checkPDFEmbeddable(data []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf embed: %v", rec)
		}
	}()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddUTF8FontFromBytes("check", "", bytes.Clone(data))
	if pdf.Err() {
		return fmt.Errorf("pdf embed: %w", pdf.Error())
	}
	return nil
}
