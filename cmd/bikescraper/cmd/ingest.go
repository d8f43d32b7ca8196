package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RolandGoud/bikescraper/internal/pipeline"
	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/export"
)

var (
	ingestDate   string
	ingestDryRun bool
	ingestReport string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <snapshot.json> [snapshot.json ...]",
	Short: "Run the reconciliation pipeline over raw brand snapshots",
	Long: `Ingest reads one raw snapshot file per brand, normalizes the records onto
the canonical schema, fills missing specifications by inference, and merges
the result into the master dataset.

Each snapshot file is a JSON document with a brand name and its raw records:

  {"brand": "Trek", "records": [{"name": "Domane AL 2", "variant": "Rim", ...}]}`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestDate, "date", "", "run date as DD-MM-YYYY (default today)")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "compute the full result without saving")
	ingestCmd.Flags().StringVar(&ingestReport, "report", "", "write a status report to this file")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadIngestionConfig()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runDate := catalog.Today()
	if ingestDate != "" {
		runDate, err = catalog.ParseDate(ingestDate)
		if err != nil {
			return err
		}
	}

	snapshots := make([]pipeline.Snapshot, 0, len(args))
	for _, path := range args {
		snapshot, err := readSnapshot(path)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snapshot)
	}

	p := pipeline.New(cfg, st)
	outcome, err := p.Run(cmd.Context(), snapshots, pipeline.Options{
		RunDate: runDate,
		DryRun:  ingestDryRun,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), outcome.Result.Summary())

	if ingestReport != "" {
		f, err := os.OpenFile(ingestReport, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
		if err != nil {
			return errors.WrapIO("create", ingestReport, err)
		}
		defer f.Close()
		return export.WriteStatusReport(f, "Bikescraper", outcome.Dataset, outcome.Summary)
	}
	return nil
}

// readSnapshot decodes one brand snapshot file.
func readSnapshot(path string) (pipeline.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Snapshot{}, errors.WrapIO("read", path, err)
	}

	var snapshot pipeline.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return pipeline.Snapshot{}, errors.WrapParse("json", path, err)
	}
	if snapshot.Brand == "" {
		return pipeline.Snapshot{}, errors.NewValidationError("brand", path, "snapshot file has no brand")
	}
	return snapshot, nil
}
