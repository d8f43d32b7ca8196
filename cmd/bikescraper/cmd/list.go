package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/export"
)

var (
	listStatus string
	listBrands []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List master dataset entries",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status: available or discontinued")
	listCmd.Flags().StringSliceVar(&listBrands, "brand", nil, "filter by brand (repeatable)")
}

func runList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	dataset, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}

	filter := export.Filter{Brands: listBrands}
	if listStatus != "" {
		status, err := parseStatus(listStatus)
		if err != nil {
			return err
		}
		filter.Statuses = []catalog.Status{status}
	}

	entries := export.Select(dataset, filter)
	fmt.Fprintln(cmd.OutOrStdout(), export.RenderTable(entries))
	fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(entries))
	return nil
}

func parseStatus(s string) (catalog.Status, error) {
	switch strings.ToLower(s) {
	case "available":
		return catalog.StatusAvailable, nil
	case "discontinued":
		return catalog.StatusDiscontinued, nil
	default:
		return "", errors.NewValidationError("status", s, "expected available or discontinued")
	}
}
