package export

import (
	"context"
	"fmt"
	"io"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/charmbracelet/log"
)

// Pipeline renders an invoice to HTML, rasterizes it and encodes the image
// as a PDF
type Pipeline struct {
	renderer   *render.Renderer
	rasterizer Rasterizer
	encoder    Encoder
	template   render.Template
	logger     *log.Logger
}

// NewPipeline assembles a pipeline. A nil logger discards output.
func NewPipeline(r *render.Renderer, rz Rasterizer, enc Encoder, t render.Template, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		renderer:   r,
		rasterizer: rz,
		encoder:    enc,
		template:   t,
		logger:     logger,
	}
}

// Template returns the layout the pipeline renders with
func (p *Pipeline) Template() render.Template {
	return p.template
}

// WithTemplate returns a copy of the pipeline using another layout
func (p *Pipeline) WithTemplate(t render.Template) *Pipeline {
	cp := *p
	cp.template = t
	return &cp
}

// Export produces the PDF document for an invoice
func (p *Pipeline) Export(ctx context.Context, data domain.InvoiceData, logo string) (*Document, error) {
	name := Filename(data.VoucherNo)
	p.logger.Debug("export started", "file", name, "template", p.template)

	html, err := p.renderer.RenderHTML(data, logo, p.template)
	if err != nil {
		return nil, err
	}

	img, err := p.rasterizer.Rasterize(ctx, html)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Invoice %s", data.VoucherNo)
	pdf, err := p.encoder.Encode(img, title)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("export finished", "file", name, "image_bytes", len(img), "pdf_bytes", len(pdf))
	return &Document{
		Name:     name,
		MIMEType: MIMEPDF,
		Data:     pdf,
	}, nil
}
