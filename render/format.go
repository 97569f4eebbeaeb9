package render

import (
	"fmt"
	"time"
)

var byteUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary units. Below 1024 bytes the
// raw integer is printed with unit "B"; above, the value is scaled by
// 1024^floor(log1024(|n|)) and printed with two decimal places. A "+"/"-"
// prefix is added only when explicitSign is set and the value is non-zero.
func FormatBytes(n int64, explicitSign bool) string {
	sign := ""
	if explicitSign && n != 0 {
		if n < 0 {
			sign = "-"
		} else {
			sign = "+"
		}
	}

	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs < 1024 {
		return fmt.Sprintf("%s%d B", sign, abs)
	}

	// equivalent to floor(log1024(|n|)), without float log rounding
	idx := 0
	v := float64(abs)
	for v >= 1024 && idx < len(byteUnits)-1 {
		v /= 1024
		idx++
	}
	return fmt.Sprintf("%s%.2f %s", sign, v, byteUnits[idx])
}

// formatDuration renders d as seconds with four decimals, or milliseconds
// with one decimal when the renderer is in milliseconds mode.
func (r *Renderer) formatDuration(d time.Duration) string {
	if r.milliseconds {
		return fmt.Sprintf("%.1f", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.4f", d.Seconds())
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
