package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/and161185/checkpoint-timer/model"
)

// CSS class names applied to the generated markup.
const (
	cssTable    = "checkpoint-report"
	cssHeader   = "checkpoint-report-header"
	cssRow      = "checkpoint-report-row"
	cssBoundary = "checkpoint-report-boundary"
	cssName     = "checkpoint-report-name"
	cssValue    = "checkpoint-report-value"
	cssHeading  = "checkpoint-report-heading"
)

const stylesheet = `<style>
table.` + cssTable + ` { border-collapse: collapse; font-family: monospace; }
table.` + cssTable + ` th, table.` + cssTable + ` td { border: 1px solid #999; padding: 2px 8px; }
tr.` + cssHeader + ` { background: #ddd; font-weight: bold; }
tr.` + cssBoundary + ` { background: #eef; font-style: italic; }
td.` + cssName + ` { text-align: left; }
td.` + cssValue + ` { text-align: right; }
</style>
`

// HTML renders the checkpoint table and the average table as HTML, with an
// optional stylesheet block in front. All cell values are escaped.
func (r *Renderer) HTML() (string, error) {
	rows, err := r.FormattedData()
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	averages, err := r.AverageData()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if r.includeCSS {
		b.WriteString(stylesheet)
	}

	boundary := make([]bool, len(rows))
	for i, row := range rows {
		boundary[i] = row.Name == model.CheckpointStart || row.Name == model.CheckpointEnd
	}
	writeHTMLTable(&b, r.detailHeaders(), r.detailCells(rows), boundary)

	if len(averages) > 0 {
		fmt.Fprintf(&b, "<h3 class=%q>Averages</h3>\n", cssHeading)
		writeHTMLTable(&b, averageHeaders, r.averageCells(averages), nil)
	}
	return b.String(), nil
}

// writeHTMLTable emits one table. boundary marks rows to highlight (the
// synthetic "start"/"end" checkpoints); nil means no highlighting.
func writeHTMLTable(b *strings.Builder, headers []string, cells [][]string, boundary []bool) {
	fmt.Fprintf(b, "<table class=%q>\n<thead>\n", cssTable)
	fmt.Fprintf(b, "<tr class=%q>", cssHeader)
	for _, h := range headers {
		fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")

	for i, line := range cells {
		class := cssRow
		if boundary != nil && boundary[i] {
			class += " " + cssBoundary
		}
		fmt.Fprintf(b, "<tr class=%q>", class)
		for j, cell := range line {
			cellClass := cssValue
			if j == 0 {
				cellClass = cssName
			}
			fmt.Fprintf(b, "<td class=%q>%s</td>", cellClass, html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}
