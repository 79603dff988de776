// Package report assembles the static HTML report from the generated charts.
// Templates are filled by literal placeholder replacement only.
package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/contribplot/pkg/chart"
	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

// Placeholders recognised in the templates.
const (
	PlaceholderTabs       = "<!-- TABS_PLACEHOLDER -->"
	PlaceholderTabContent = "<!-- TAB_CONTENT_PLACEHOLDER -->"
	PlaceholderTabID      = "{{TAB_ID}}"
	PlaceholderPeriodName = "{{PERIOD_NAME}}"
	PlaceholderGraphItems = "{{GRAPH_ITEMS}}"
)

// IndexFileName is the name of the assembled report.
const IndexFileName = "index.html"

const indexFilePerm = 0o644

// WindowCharts is the ordered chart list of one window.
type WindowCharts struct {
	Window contrib.Window
	Charts []chart.Record
}

// Build fills the templates with one selector option and one tab block per
// window, in the given order.
func Build(tpl Templates, windows []WindowCharts) string {
	var options, tabs strings.Builder

	for _, wc := range windows {
		id := html.EscapeString(wc.Window.Name)
		label := html.EscapeString(wc.Window.Label())

		fmt.Fprintf(&options, "<option value=\"%s\">%s</option>\n", id, label)

		tab := strings.ReplaceAll(tpl.Tab, PlaceholderTabID, id)
		tab = strings.ReplaceAll(tab, PlaceholderPeriodName, label)
		tab = strings.ReplaceAll(tab, PlaceholderGraphItems, graphItems(wc.Charts))

		tabs.WriteString(tab)
	}

	out := strings.ReplaceAll(tpl.Index, PlaceholderTabs, options.String())

	return strings.ReplaceAll(out, PlaceholderTabContent, tabs.String())
}

func graphItems(records []chart.Record) string {
	var items strings.Builder

	for _, record := range records {
		author := html.EscapeString(record.Author)

		fmt.Fprintf(&items,
			"<div class=\"contributor-item\"><img src=\"%s\" alt=\"%s\"><p>%s</p></div>\n",
			html.EscapeString(record.File), author, author)
	}

	return items.String()
}

// WriteIndex writes the assembled document to outputDir and returns its path.
func WriteIndex(outputDir, document string) (string, error) {
	path := filepath.Join(outputDir, IndexFileName)

	err := os.WriteFile(path, []byte(document), indexFilePerm)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
