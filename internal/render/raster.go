package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// referenceDPI is the resolution of page space.
const referenceDPI = 72.0

// MaxBitmapPixels caps the canvas of one rasterized page (256 MiB of RGBA).
const MaxBitmapPixels = 1 << 26

type faceKey struct {
	role Role
	size float64
}

// rasterize paints page index of set at dpi onto an opaque white canvas.
func rasterize(set *PageSet, index int, dpi float64, fonts *FontSet) (*image.RGBA, error) {
	if set == nil || index < 0 || index >= len(set.Pages) {
		n := 0
		if set != nil {
			n = len(set.Pages)
		}
		return nil, fmt.Errorf("%w: index %d of %d", ErrPageNotFound, index, n)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("rasterize: dpi must be positive, got %v", dpi)
	}

	page := set.Pages[index]
	zoom := dpi / referenceDPI
	w, h := math.Ceil(page.Width*zoom), math.Ceil(page.Height*zoom)
	if !(w > 0 && h > 0 && w*h <= MaxBitmapPixels) {
		return nil, fmt.Errorf("%w: %.0fx%.0f px at %g dpi", ErrPageTooLarge, w, h, dpi)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	for _, op := range page.Ops {
		switch op.Kind {
		case OpRect:
			left := op.X * zoom
			top := (page.Height - op.Y - op.H) * zoom
			right := left + op.W*zoom
			bottom := top + op.H*zoom
			fillBox(img, left, top, right, bottom, op.Fill)
			if op.StrokeWidth > 0 {
				half := op.StrokeWidth * zoom / 2
				fillBox(img, left-half, top-half, right+half, top+half, op.Stroke)
				fillBox(img, left-half, bottom-half, right+half, bottom+half, op.Stroke)
				fillBox(img, left-half, top+half, left+half, bottom-half, op.Stroke)
				fillBox(img, right-half, top+half, right+half, bottom-half, op.Stroke)
			}
		case OpText:
			face, err := rasterFace(faces, fonts, op.Role, op.Size*zoom)
			if err != nil {
				return nil, err
			}
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(op.Fill),
				Face: face,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6(op.X * zoom * 64),
					Y: fixed.Int26_6((page.Height - op.Y) * zoom * 64),
				},
			}
			d.DrawString(op.Text)
		}
	}
	return img, nil
}

func rasterFace(cache map[faceKey]font.Face, fonts *FontSet, role Role, size float64) (font.Face, error) {
	key := faceKey{role: role, size: size}
	if f, ok := cache[key]; ok {
		return f, nil
	}
	f := fonts.Face(role)
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     referenceDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterize: face %s at %.2f: %w", f.Name, size, err)
	}
	cache[key] = face
	return face, nil
}

// fillBox fills the box with anti-aliased edges, clipped to the image.
func fillBox(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	b := img.Bounds()
	x0, x1 = clamp(x0, 0, float64(b.Dx())), clamp(x1, 0, float64(b.Dx()))
	y0, y1 = clamp(y0, 0, float64(b.Dy())), clamp(y1, 0, float64(b.Dy()))
	if x1 <= x0 || y1 <= y0 || c.A == 0 {
		return
	}

	ox, oy := int(math.Floor(x0)), int(math.Floor(y0))
	w, h := int(math.Ceil(x1))-ox, int(math.Ceil(y1))-oy
	z := vector.NewRasterizer(w, h)
	fx0, fy0 := float32(x0-float64(ox)), float32(y0-float64(oy))
	fx1, fy1 := float32(x1-float64(ox)), float32(y1-float64(oy))
	z.MoveTo(fx0, fy0)
	z.LineTo(fx1, fy0)
	z.LineTo(fx1, fy1)
	z.LineTo(fx0, fy1)
	z.ClosePath()
	z.Draw(img, image.Rect(ox, oy, ox+w, oy+h), image.NewUniform(c), image.Point{})
}
