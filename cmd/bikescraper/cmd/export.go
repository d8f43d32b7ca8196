package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/export"
)

var (
	exportOut    string
	exportStatus string
	exportBrands []string
)

var exportCmd = &cobra.Command{
	Use:   "export <wordpress|csv|json>",
	Short: "Export the master dataset",
	Long: `Export renders the master dataset for downstream consumers.

The wordpress format produces a WooCommerce product import sheet and always
contains available bikes only. The csv and json formats contain the full
dataset unless filtered with --status or --brand.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"wordpress", "csv", "json"},
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "filter by status: available or discontinued")
	exportCmd.Flags().StringSliceVar(&exportBrands, "brand", nil, "filter by brand (repeatable)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	dataset, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}

	filter := export.Filter{Brands: exportBrands}
	if format == "wordpress" {
		filter.Statuses = []catalog.Status{catalog.StatusAvailable}
	} else if exportStatus != "" {
		status, err := parseStatus(exportStatus)
		if err != nil {
			return err
		}
		filter.Statuses = []catalog.Status{status}
	}
	entries := export.Select(dataset, filter)

	out := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.OpenFile(exportOut, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
		if err != nil {
			return errors.WrapIO("create", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	return writeExport(out, format, entries)
}

func writeExport(w io.Writer, format string, entries []*catalog.Entry) error {
	switch format {
	case "wordpress":
		return export.WriteCSV(w, export.WordPress(entries, exportBrands))
	case "csv":
		discontinuedOnly := exportStatus != "" && len(entries) > 0 &&
			entries[0].Status == catalog.StatusDiscontinued
		return export.WriteCSV(w, export.Flatten(entries, export.FlattenOptions{
			DiscontinuedDate: discontinuedOnly,
		}))
	case "json":
		return export.WriteJSON(w, entries)
	default:
		return errors.NewValidationError("format", format, "expected wordpress, csv or json")
	}
}
