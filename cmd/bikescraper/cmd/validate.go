package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the brand mapping configuration",
	Long: `Validate loads the brand mapping configuration and checks every mapping
against the closed specification vocabulary. A mapping that targets an
unknown field is schema drift and fails validation.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadIngestionConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range cfg.Mappings {
		fmt.Fprintf(out, "%s: %d core fields, %d specification fields, %d image slots\n",
			m.Brand, len(m.Core), len(m.Specs), len(m.Images))
	}
	fmt.Fprintf(out, "Identity key: color=%t sku=%t\n",
		cfg.Identity.IncludeColor, cfg.Identity.IncludeSKU)
	fmt.Fprintf(out, "Vocabulary: %d fields\n", len(catalog.Vocabulary()))
	fmt.Fprintln(out, "Configuration valid")
	return nil
}
