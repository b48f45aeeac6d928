package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// Encoder wraps a raster image into a document
type Encoder interface {
	Encode(img []byte, title string) ([]byte, error)
}

// PDFEncoder places a PNG on a single portrait A4 page
type PDFEncoder struct {
	Creator string
}

// Encode returns a PDF containing img scaled to fit the page, anchored at
// the top-left corner
func (e PDFEncoder) Encode(img []byte, title string) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("decode image: empty image %dx%d", cfg.Width, cfg.Height)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	w, h := FitToPage(float64(cfg.Width), float64(cfg.Height), pageW, pageH)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("invoice", opt, bytes.NewReader(img))
	pdf.ImageOptions("invoice", 0, 0, w, h, false, opt, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FitToPage scales an image into the page keeping its aspect ratio. Images
// wider than the page ratio fill the width; others fill the height.
func FitToPage(imgW, imgH, pageW, pageH float64) (w, h float64) {
	ratio := imgW / imgH
	if ratio > pageW/pageH {
		return pageW, pageW / ratio
	}
	return pageH * ratio, pageH
}
