// Package render lays out CV documents and writes them as single page PDFs, optionally
// rasterized to PNG.
//
// A render walks a linear state machine (see Stage). Layout produces a display list in
// page space; the PDF writer and the rasterizer both paint from that list, so the bitmap
// always matches the PDF geometry.
package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"time"

	"cvdoc/internal/scene"
)

// Default resolutions.
const (
	DefaultDensity   = 72.0
	DefaultBitmapDPI = 300.0
)

// Renderer turns documents into downloadable bytes.
type Renderer interface {
	RenderToPage(ctx context.Context, doc *scene.Document) ([]byte, error)
	RenderToBitmap(ctx context.Context, doc *scene.Document, dpi float64) ([]byte, error)
}

// Engine is the default Renderer. It is safe for concurrent use; each call owns its state.
type Engine struct {
	registry    *Registry
	density     float64
	bitmapDPI   float64
	tempDir     string
	newMeasurer func() Measurer
	now         func() time.Time
	logger      *slog.Logger
	encode      func(io.Writer, image.Image) error
}

var _ Renderer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithDensity sets document units per inch.
func WithDensity(d float64) Option {
	return func(e *Engine) {
		if d > 0 {
			e.density = d
		}
	}
}

// WithBitmapDPI sets the resolution used when RenderToBitmap gets a non-positive dpi.
func WithBitmapDPI(dpi float64) Option {
	return func(e *Engine) {
		if dpi > 0 {
			e.bitmapDPI = dpi
		}
	}
}

// WithTempDir sets where intermediate artifacts are written. Empty means os.TempDir.
func WithTempDir(dir string) Option {
	return func(e *Engine) { e.tempDir = dir }
}

// WithMeasurer replaces the text measurer factory. One measurer is made per render.
func WithMeasurer(f func() Measurer) Option {
	return func(e *Engine) {
		if f != nil {
			e.newMeasurer = f
		}
	}
}

// WithClock sets the clock stamped into PDF metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger for glyph substitution and artifact cleanup warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an engine over a font registry.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    registry,
		density:     DefaultDensity,
		bitmapDPI:   DefaultBitmapDPI,
		newMeasurer: NewShapingMeasurer,
		now:         time.Now,
		logger:      slog.New(slog.DiscardHandler),
		encode:      (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Scale is the factor from document units to points.
func (e *Engine) Scale() float64 { return referenceDPI / e.density }

// Layout computes the display list of doc without writing anything.
func (e *Engine) Layout(doc *scene.Document) *PageSet {
	l := &layouter{scale: e.Scale(), fonts: e.registry.Resolve(), measure: e.newMeasurer()}
	return &PageSet{Pages: []*Page{l.page(doc)}}
}

// Rasterize paints page index of set at dpi.
func (e *Engine) Rasterize(set *PageSet, index int, dpi float64) (*image.RGBA, error) {
	return rasterize(set, index, dpi, e.registry.Resolve())
}

// RenderToPage writes doc as a one page PDF.
func (e *Engine) RenderToPage(ctx context.Context, doc *scene.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	art := newArtifacts(e.tempDir, e.logger)
	defer art.release()

	var m machine
	out, _, _, err := e.render(doc, &m, art)
	return out, err
}

// RenderToBitmap writes doc as a PDF, then rasterizes its first page at dpi and encodes
// it as PNG. A non-positive dpi selects the configured default.
func (e *Engine) RenderToBitmap(ctx context.Context, doc *scene.Document, dpi float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = e.bitmapDPI
	}
	art := newArtifacts(e.tempDir, e.logger)
	defer art.release()

	var m machine
	_, set, fonts, err := e.render(doc, &m, art)
	if err != nil {
		return nil, err
	}

	img, err := rasterize(set, 0, dpi, fonts)
	if err != nil {
		return nil, err
	}
	if err := m.advance(StageRasterized); err != nil {
		return nil, err
	}

	return art.roundTrip("cvdoc-*.png", func(w io.Writer) error {
		return e.encode(w, img)
	})
}

func (e *Engine) render(doc *scene.Document, m *machine, art *artifacts) ([]byte, *PageSet, *FontSet, error) {
	if doc == nil {
		return nil, nil, nil, fmt.Errorf("render: nil document")
	}

	fonts := e.registry.Resolve()
	if err := m.advance(StageFontsResolved); err != nil {
		return nil, nil, nil, err
	}

	l := &layouter{scale: e.Scale(), fonts: fonts, measure: e.newMeasurer()}
	w, h := doc.Size()
	pg, err := openPDFPage(w*l.scale, h*l.scale, fonts, e.now())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := m.advance(StagePageOpened); err != nil {
		return nil, nil, nil, err
	}

	page := l.page(doc)
	if missing := l.substituted(); len(missing) > 0 {
		e.logger.Warn("text face lacks glyphs, painted as '?'",
			"event", "glyph_substituted",
			"face", fonts.Regular.Name,
			"runes", string(missing),
			"count", len(missing),
		)
	}
	if err := pg.paint(page); err != nil {
		return nil, nil, nil, err
	}
	if err := m.advance(StageNodesPainted); err != nil {
		return nil, nil, nil, err
	}

	data, err := art.roundTrip("cvdoc-*.pdf", pg.close)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := m.advance(StagePageClosed); err != nil {
		return nil, nil, nil, err
	}
	return data, &PageSet{Pages: []*Page{page}}, fonts, nil
}
