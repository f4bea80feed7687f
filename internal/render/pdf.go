package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	familyText   = "cvtext"
	familySymbol = "cvsymbol"
)

// pdfPage paints a display list with gofpdf. gofpdf measures y from the top, so ops are
// flipped back on the way in.
type pdfPage struct {
	pdf    *gofpdf.Fpdf
	height float64
	alpha  float64
}

func openPDFPage(width, height float64, fonts *FontSet, created time.Time) (*pdfPage, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(created)
	pdf.SetProducer("cvdoc", false)

	// gofpdf appends into the slice it is given while writing, so each page gets its own copy.
	pdf.AddUTF8FontFromBytes(familyText, "", bytes.Clone(fonts.Regular.Data))
	pdf.AddUTF8FontFromBytes(familyText, "B", bytes.Clone(fonts.Face(RoleBold).Data))
	if fonts.Symbol != nil {
		pdf.AddUTF8FontFromBytes(familySymbol, "", bytes.Clone(fonts.Symbol.Data))
	}
	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("open pdf page: %w", pdf.Error())
	}
	return &pdfPage{pdf: pdf, height: height, alpha: 1}, nil
}

func (p *pdfPage) paint(page *Page) error {
	pdf := p.pdf
	for _, op := range page.Ops {
		switch op.Kind {
		case OpRect:
			y := p.height - op.Y - op.H
			r, g, b, a := straight(op.Fill)
			p.setAlpha(a)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(op.X, y, op.W, op.H, "F")
			if op.StrokeWidth > 0 {
				r, g, b, a := straight(op.Stroke)
				p.setAlpha(a)
				pdf.SetLineWidth(op.StrokeWidth)
				pdf.SetDrawColor(r, g, b)
				pdf.Rect(op.X, y, op.W, op.H, "D")
			}
		case OpText:
			family, style := familyText, ""
			switch op.Role {
			case RoleBold:
				style = "B"
			case RoleSymbol:
				family = familySymbol
			}
			r, g, b, a := straight(op.Fill)
			p.setAlpha(a)
			pdf.SetFont(family, style, op.Size)
			pdf.SetTextColor(r, g, b)
			pdf.Text(op.X, p.height-op.Y, op.Text)
		}
	}
	if pdf.Err() {
		return fmt.Errorf("paint pdf page: %w", pdf.Error())
	}
	return nil
}

// setAlpha switches the graphics state opacity only when it changes.
func (p *pdfPage) setAlpha(a float64) {
	if a != p.alpha {
		p.pdf.SetAlpha(a, "Normal")
		p.alpha = a
	}
}

func (p *pdfPage) close(w io.Writer) error {
	return p.pdf.Output(w)
}
