package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// keep pdfcpu from creating a config dir under $HOME
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFilename(t *testing.T) {
	tests := []struct {
		voucher string
		want    string
	}{
		{"", "invoice-draft.pdf"},
		{"   ", "invoice-draft.pdf"},
		{"INV-001", "invoice-INV-001.pdf"},
		{"2024/07", "invoice-2024-07.pdf"},
		{`A\7`, "invoice-A-7.pdf"},
		{" V-9 ", "invoice-V-9.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.voucher), "voucher %q", tt.voucher)
	}
}

func TestFitToPage(t *testing.T) {
	const pageW, pageH = 210.0, 297.0

	// wider than A4: width-limited
	w, h := FitToPage(2000, 1000, pageW, pageH)
	assert.InDelta(t, pageW, w, 1e-9)
	assert.InDelta(t, 105, h, 1e-9)

	// taller than A4: height-limited
	w, h = FitToPage(1000, 3000, pageW, pageH)
	assert.InDelta(t, 99, w, 1e-9)
	assert.InDelta(t, pageH, h, 1e-9)
}

func TestPDFEncoder_ProducesValidPDF(t *testing.T) {
	out, err := PDFEncoder{Creator: "invoicedesk"}.Encode(testPNG(t, 60, 80), "Invoice INV-1")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.NoError(t, api.Validate(bytes.NewReader(out), model.NewDefaultConfiguration()))
}

func TestPDFEncoder_RejectsNonPNG(t *testing.T) {
	_, err := PDFEncoder{}.Encode([]byte("not an image"), "x")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	doc := &Document{Name: "invoice-draft.pdf", MIMEType: MIMEPDF, Data: []byte("%PDF-1.3")}

	path, err := WriteFile(dir, doc)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "invoice-draft.pdf"), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Data, got)
}

type fakeRasterizer struct {
	html string
	img  []byte
	err  error
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return f.img, f.err
}

func TestPipeline_Export(t *testing.T) {
	r, err := render.NewRenderer()
	require.NoError(t, err)
	rz := &fakeRasterizer{img: testPNG(t, 40, 56)}
	p := NewPipeline(r, rz, PDFEncoder{}, render.Compact, nil)

	data := domain.NewInvoiceData()
	data.VoucherNo = "V-9"
	data.CompanyBrandName = "Brandy"

	doc, err := p.Export(context.Background(), data, "")
	require.NoError(t, err)

	assert.Equal(t, "invoice-V-9.pdf", doc.Name)
	assert.Equal(t, MIMEPDF, doc.MIMEType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Contains(t, rz.html, render.PaperSelector[1:])
	assert.NotContains(t, rz.html, "Brandy")

	_, err = p.WithTemplate(render.Extended).Export(context.Background(), data, "")
	require.NoError(t, err)
	assert.True(t, strings.Contains(rz.html, "Brandy"))
	assert.Equal(t, render.Compact, p.Template(), "WithTemplate leaves the receiver unchanged")
}

func TestPipeline_RasterizeError(t *testing.T) {
	r, err := render.NewRenderer()
	require.NoError(t, err)
	boom := errors.New("browser crashed")
	p := NewPipeline(r, &fakeRasterizer{err: boom}, PDFEncoder{}, render.Compact, nil)

	_, err = p.Export(context.Background(), domain.NewInvoiceData(), "")
	assert.True(t, errors.Is(err, boom))
}

func TestResolveBrowser_ConfiguredMissing(t *testing.T) {
	_, err := ResolveBrowser(filepath.Join(t.TempDir(), "no-such-chrome"), false)
	assert.Error(t, err)
}

func TestResolveBrowser_ConfiguredExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

	got, err := ResolveBrowser(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestChromeRasterizer_Closed(t *testing.T) {
	rz := NewChromeRasterizer(ChromeOptions{})
	require.NoError(t, rz.Close())
	require.NoError(t, rz.Close())

	_, err := rz.Rasterize(context.Background(), "<html></html>")
	assert.True(t, errors.Is(err, ErrClosed))
}
