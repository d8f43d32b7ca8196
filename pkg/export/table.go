package export

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// RenderTable renders entries as a terminal table for the list command.
func RenderTable(entries []*catalog.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{
		"Key", "Brand", "Model", "Variant", "Price", "Status", "First Seen", "Last Seen",
	})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.Key,
			e.Record.Brand,
			e.Record.Model,
			e.Record.Variant,
			e.Record.Price,
			string(e.Status),
			e.FirstSeen.String(),
			e.LastSeen.String(),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
