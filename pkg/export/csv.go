package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// WriteCSV writes the table as UTF-8 CSV with every field quoted. Import
// tools for the generated sheets expect fully quoted fields regardless of
// content, which the standard encoding/csv writer does not produce.
func WriteCSV(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVRow(bw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeCSVRow(bw, row); err != nil {
			return err
		}
	}
	return errors.WrapIO("write", "csv", bw.Flush())
}

func writeCSVRow(w *bufio.Writer, row []string) error {
	for i, field := range row {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return errors.WrapIO("write", "csv", err)
			}
		}
		quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		if _, err := w.WriteString(quoted); err != nil {
			return errors.WrapIO("write", "csv", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return errors.WrapIO("write", "csv", err)
	}
	return nil
}
