package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type recordingExporter struct {
	data domain.InvoiceData
	logo string
	err  error
}

func (r *recordingExporter) Export(_ context.Context, data domain.InvoiceData, logo string) (*export.Document, error) {
	r.data, r.logo = data, logo
	if r.err != nil {
		return nil, r.err
	}
	return &export.Document{Name: export.Filename(data.VoucherNo), MIMEType: export.MIMEPDF, Data: []byte("%PDF-")}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBlank_ParsesBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBlank(&buf))

	var data domain.InvoiceData
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, domain.NewInvoiceData(), data)
}

func TestReadInvoice_NormalizesItems(t *testing.T) {
	path := writeFile(t, t.TempDir(), "inv.yaml", "voucher_no: V-7\ncompany_name: Acme\n")

	data, err := readInvoice(path)
	require.NoError(t, err)

	assert.Equal(t, "V-7", data.VoucherNo)
	assert.Len(t, data.Items, 1)
}

func TestReadInvoice_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "inv.yaml", "items: [unterminated\n")

	_, err := readInvoice(path)
	assert.Error(t, err)
}

func TestExportFile_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inv.yaml", "voucher_no: A-12\nitems:\n  - description: Design\n    rate: \"100\"\n")
	out := filepath.Join(dir, "out")
	exp := &recordingExporter{}

	written, err := exportFile(context.Background(), exp, path, "", out)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "invoice-A-12.pdf"), written)
	assert.FileExists(t, written)
	assert.Equal(t, "Design", exp.data.Items[0].Description)
	assert.Empty(t, exp.logo)
}

func TestExportFile_MissingLogo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inv.yaml", "voucher_no: A\n")

	_, err := exportFile(context.Background(), &recordingExporter{}, path, filepath.Join(dir, "nope.png"), dir)
	assert.Error(t, err)
}

func TestExportFile_NonImageLogoIsPassedThrough(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inv.yaml", "voucher_no: A\n")
	notImage := writeFile(t, dir, "logo.png", "plain text")
	exp := &recordingExporter{}

	_, err := exportFile(context.Background(), exp, path, notImage, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(exp.logo, "data:text/plain"))
}

func TestExportFile_ExporterError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inv.yaml", "voucher_no: A\n")
	boom := errors.New("no browser")

	_, err := exportFile(context.Background(), &recordingExporter{err: boom}, path, "", dir)
	assert.True(t, errors.Is(err, boom))
	assert.NoFileExists(t, filepath.Join(dir, "invoice-A.pdf"))
}
