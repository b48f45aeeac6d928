package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/editor"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/logo"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errAppNotInitialized = errors.New("app not initialized")

var exportCmd = &cobra.Command{
	Use:   "export [invoice.yaml]",
	Short: "Export an invoice file as PDF",
	Long: `Render an invoice described in YAML and write it as a single-page A4 PDF.

Start from the skeleton printed by 'invoicedesk blank'.

Examples:
  invoicedesk export march.yaml
  invoicedesk export march.yaml --template extended --logo logo.png --out ./pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if appInstance == nil {
			return errAppNotInitialized
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		pipeline := appInstance.Exporter
		if cmd.Flags().Changed("template") {
			name, _ := cmd.Flags().GetString("template")
			t, err := render.ParseTemplate(name)
			if err != nil {
				return err
			}
			pipeline = pipeline.WithTemplate(t)
		}

		logoPath, _ := cmd.Flags().GetString("logo")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = appInstance.OutputDir()
		}

		path, err := exportFile(ctx, pipeline, args[0], logoPath, outDir)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Invoice exported: %s\n", path)
		return nil
	},
}

// exportFile reads an invoice file, renders it through exp and writes the
// document into outDir
func exportFile(ctx context.Context, exp editor.Exporter, invoicePath, logoPath, outDir string) (string, error) {
	data, err := readInvoice(invoicePath)
	if err != nil {
		return "", err
	}

	var logoURI string
	if logoPath != "" {
		logoURI, err = logo.Encode(logoPath)
		if err != nil {
			return "", fmt.Errorf("failed to load logo: %w", err)
		}
		if !logo.IsImageURI(logoURI) {
			fmt.Fprintf(os.Stderr, "warning: %s does not look like an image\n", logoPath)
		}
	}

	doc, err := exp.Export(ctx, data, logoURI)
	if err != nil {
		return "", fmt.Errorf("failed to export invoice: %w", err)
	}

	return export.WriteFile(outDir, doc)
}

func readInvoice(path string) (domain.InvoiceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.InvoiceData{}, fmt.Errorf("failed to read invoice: %w", err)
	}

	var data domain.InvoiceData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return domain.InvoiceData{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	data.Normalize()
	return data, nil
}

func init() {
	exportCmd.Flags().String("template", "", "Layout: compact or extended (defaults to config)")
	exportCmd.Flags().String("logo", "", "Image file to place in the header")
	exportCmd.Flags().String("out", "", "Output directory (defaults to config)")
}
