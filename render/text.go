package render

import (
	"fmt"
	"strings"

	"github.com/and161185/checkpoint-timer/model"
)

const ellipsis = "..."

// Text renders the checkpoint table followed by the average table as
// fixed-width terminal text.
func (r *Renderer) Text() (string, error) {
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
	b.WriteString(r.textTable("Checkpoints", r.detailHeaders(), r.detailCells(rows)))
	if len(averages) > 0 {
		b.WriteString("\n")
		b.WriteString(r.textTable("Averages", averageHeaders, r.averageCells(averages)))
	}
	return b.String(), nil
}

func (r *Renderer) detailHeaders() []string {
	headers := []string{"Name", "Duration", "Elapsed Time", "Time %"}
	if r.src.MemoryProfilingEnabled() {
		headers = append(headers, "Memory Diff", "Memory Peak")
	}
	return headers
}

func (r *Renderer) detailCells(rows []model.Row) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{
			row.Name,
			r.formatDuration(row.Duration),
			r.formatDuration(row.Elapsed),
			formatPercent(row.Percent),
		}
		if r.src.MemoryProfilingEnabled() {
			line = append(line, formatOptionalBytes(row.MemoryDiff, true), formatOptionalBytes(row.MemoryPeak, false))
		}
		cells = append(cells, line)
	}
	return cells
}

var averageHeaders = []string{"Name", "Count", "Avg Duration", "Avg Memory Diff"}

func (r *Renderer) averageCells(rows []model.AverageRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		avgDuration := "N/A"
		if row.AverageDuration != nil {
			avgDuration = r.formatDuration(*row.AverageDuration)
		}
		avgMemory := "Disabled"
		if row.MemoryEnabled {
			avgMemory = formatOptionalBytes(row.AverageMemoryDiff, true)
		}
		cells = append(cells, []string{
			row.Name,
			fmt.Sprintf("%d", row.Count),
			avgDuration,
			avgMemory,
		})
	}
	return cells
}

func formatOptionalBytes(n *int64, explicitSign bool) string {
	if n == nil {
		return "N/A"
	}
	return FormatBytes(*n, explicitSign)
}

// textTable draws one table: a title line, dash borders, a header row and
// the data rows. Column widths grow to the widest formatted value between a
// configured minimum and maximum; the first column ("Name") is left-aligned
// and truncated with an ellipsis when it exceeds the maximum, all other
// columns are right-aligned.
func (r *Renderer) textTable(title string, headers []string, cells [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = r.minColWidth
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > r.maxColWidth {
			widths[i] = r.maxColWidth
		}
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	border := strings.Repeat("-", total)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(border)
	b.WriteString("\n")
	writeTextRow(&b, headers, widths)
	b.WriteString(border)
	b.WriteString("\n")
	for _, line := range cells {
		writeTextRow(&b, line, widths)
	}
	b.WriteString(border)
	b.WriteString("\n")
	return b.String()
}

func writeTextRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if len(cell) > widths[i] {
			cell = cell[:widths[i]-len(ellipsis)] + ellipsis
		}
		if i == 0 {
			fmt.Fprintf(b, "%-*s", widths[i], cell)
		} else {
			fmt.Fprintf(b, "%*s", widths[i], cell)
		}
	}
	b.WriteString("\n")
}
