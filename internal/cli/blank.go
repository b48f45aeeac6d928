package cli

import (
	"fmt"
	"io"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var blankCmd = &cobra.Command{
	Use:   "blank",
	Short: "Print an empty invoice file",
	Long: `Print a YAML invoice with every field present and one empty line item.

  invoicedesk blank > march.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeBlank(cmd.OutOrStdout())
	},
}

func writeBlank(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(domain.NewInvoiceData()); err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}
	return enc.Close()
}
