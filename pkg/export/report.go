package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/lifecycle"
)

// WriteStatusReport writes the plain-text run report: overview counts plus
// the entries that appeared or disappeared this run. The summary may be nil
// when reporting on a dataset without a fresh merge.
func WriteStatusReport(w io.Writer, title string, dataset *catalog.Dataset, summary *lifecycle.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Status Summary\n", title)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", utc.Now().Format(time.DateTime))

	counts := dataset.CountByStatus()
	b.WriteString("OVERVIEW:\n")
	fmt.Fprintf(&b, "Total bikes tracked: %d\n", dataset.Len())
	fmt.Fprintf(&b, "Available: %d\n", counts[catalog.StatusAvailable])
	if summary != nil {
		fmt.Fprintf(&b, "New this run: %d\n", len(summary.New))
	}
	fmt.Fprintf(&b, "Discontinued: %d\n\n", counts[catalog.StatusDiscontinued])

	if summary != nil && len(summary.New) > 0 {
		b.WriteString("NEW BIKES:\n")
		for _, e := range summary.New {
			fmt.Fprintf(&b, "   + %s (%s) - Added %s\n",
				displayName(&e.Record), reportPrice(&e.Record), e.FirstSeen)
		}
		b.WriteString("\n")
	}

	if summary != nil && len(summary.Discontinued) > 0 {
		b.WriteString("DISCONTINUED BIKES:\n")
		for _, e := range summary.Discontinued {
			fmt.Fprintf(&b, "   - %s (%s) - Last seen %s\n",
				displayName(&e.Record), reportPrice(&e.Record), e.LastSeen)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return errors.WrapIO("write", "status report", err)
}

func reportPrice(r *catalog.Record) string {
	if r.Price == "" {
		return "Price N/A"
	}
	return "€" + r.Price
}
