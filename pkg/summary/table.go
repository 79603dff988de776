package summary

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteTable prints one table per window. Counts use thousands separators.
func WriteTable(w io.Writer, s *Summary) error {
	for _, win := range s.Windows {
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.SetTitle(fmt.Sprintf("%s (%s .. %s)", win.Name, win.Start, win.End))
		tbl.AppendHeader(table.Row{"#", "Author", "Added", "Removed", "Commits"})
		tbl.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
		})

		for idx, author := range win.Authors {
			tbl.AppendRow(table.Row{
				idx + 1,
				author.Author,
				humanize.Comma(int64(author.Added)),
				humanize.Comma(int64(author.Removed)),
				humanize.Comma(int64(author.Commits)),
			})
		}

		tbl.AppendFooter(table.Row{
			"", fmt.Sprintf("%d authors", len(win.Authors)), "", "",
			humanize.Comma(int64(win.Commits)),
		})

		_, err := fmt.Fprintln(w, tbl.Render())
		if err != nil {
			return fmt.Errorf("write summary table: %w", err)
		}
	}

	return nil
}
