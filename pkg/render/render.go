// Package render produces single-page PDF certificates. The page is drawn
// onto a raster canvas with fogleman/gg and a freetype face, then wrapped
// into a PDF with pdfcpu.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/image/font/gofont/goregular"
)

// Letter paper in inches.
const (
	pageWidthIn  = 8.5
	pageHeightIn = 11.0
	marginIn     = 1.0
)

// Point sizes for the two text roles on the page.
const (
	bodyPt  = 11.0
	titlePt = 14.0
)

// Page describes the textual content of one certificate page.
// All positioning and wrapping decisions belong to the renderer.
type Page struct {
	// Header lines are centered at the top of the page.
	Header []string
	// Title is centered below the header in a larger face.
	Title string
	// Body paragraphs are wrapped to the text column width.
	Body []string
	// Closing lines follow the body after a gap.
	Closing []string
	// Signature lines are drawn above the bottom margin under a rule.
	Signature []string
}

// Renderer turns Pages into PDF documents.
type Renderer interface {
	Render(page Page) ([]byte, error)
}

type renderer struct {
	font *truetype.Font
	dpi  int
}

// New creates a Renderer from the given configuration, loading the
// configured font file or falling back to the embedded Go Regular face.
func New(cfg *Config) (Renderer, error) {
	data := goregular.TTF
	if cfg.FontPath != "" {
		loaded, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = loaded
	}

	font, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return &renderer{font: font, dpi: cfg.DPI}, nil
}

func (r *renderer) Render(page Page) ([]byte, error) {
	png, err := r.drawPage(page)
	if err != nil {
		return nil, fmt.Errorf("draw certificate page: %w", err)
	}

	pdf, err := wrapPDF(png)
	if err != nil {
		return nil, fmt.Errorf("assemble certificate pdf: %w", err)
	}

	count, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return nil, fmt.Errorf("validate certificate pdf: %w", err)
	}
	if count != 1 {
		return nil, fmt.Errorf("unexpected page count %d", count)
	}

	return pdf, nil
}

func (r *renderer) drawPage(page Page) ([]byte, error) {
	width := int(pageWidthIn * float64(r.dpi))
	height := int(pageHeightIn * float64(r.dpi))
	margin := marginIn * float64(r.dpi)
	column := float64(width) - 2*margin

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	bodyFace := truetype.NewFace(r.font, &truetype.Options{
		Size: bodyPt,
		DPI:  float64(r.dpi),
	})
	titleFace := truetype.NewFace(r.font, &truetype.Options{
		Size: titlePt,
		DPI:  float64(r.dpi),
	})

	bodyLine := bodyPt * float64(r.dpi) / 72 * 1.5
	y := margin

	dc.SetFontFace(bodyFace)
	for _, line := range page.Header {
		dc.DrawStringAnchored(line, float64(width)/2, y, 0.5, 0.5)
		y += bodyLine
	}

	if page.Title != "" {
		y += bodyLine
		dc.SetFontFace(titleFace)
		dc.DrawStringAnchored(page.Title, float64(width)/2, y, 0.5, 0.5)
		dc.SetFontFace(bodyFace)
		y += 2 * bodyLine
	}

	for _, paragraph := range page.Body {
		for _, line := range dc.WordWrap(paragraph, column) {
			dc.DrawStringAnchored(line, margin, y, 0, 0.5)
			y += bodyLine
		}
		y += bodyLine
	}

	y += bodyLine
	for _, line := range page.Closing {
		dc.DrawStringAnchored(line, margin, y, 0, 0.5)
		y += bodyLine
	}

	if len(page.Signature) > 0 {
		sy := float64(height) - margin - float64(len(page.Signature))*bodyLine
		dc.DrawLine(margin, sy-bodyLine/2, margin+column/3, sy-bodyLine/2)
		dc.SetLineWidth(float64(r.dpi) / 150)
		dc.Stroke()
		for _, line := range page.Signature {
			dc.DrawStringAnchored(line, margin, sy, 0, 0.5)
			sy += bodyLine
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func wrapPDF(png []byte) ([]byte, error) {
	imp, err := api.Import("form:Letter, pos:full, sc:1.0", types.POINTS)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	imgs := []io.Reader{bytes.NewReader(png)}
	if err := api.ImportImages(nil, &out, imgs, imp, nil); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
