package render

import (
	"fmt"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// histogramBarWidth is the maximum width of the proportional count bar.
const histogramBarWidth = 40

// Histogram writes one line per occurring byte value, ordered by count
// descending, colored by byte value, with a bar proportional to the
// most frequent value's count.
func (r *Renderer) Histogram(report *analysis.Report) {
	fmt.Fprintln(r.w, "Byte Count")
	if len(report.Histogram) == 0 {
		return
	}

	top := report.Histogram[0].Count
	for _, e := range report.Histogram {
		line := fmt.Sprintf("0x%02x %d", e.Value, e.Count)
		bar := countBar(e.Count, top)
		fmt.Fprintf(r.w, "%s %s\n", r.c.colorize(line, ByteColor(e.Value)), bar)
	}
}

func countBar(count, top int) string {
	if top <= 0 {
		return ""
	}
	n := count * histogramBarWidth / top
	bar := make([]byte, n)
	for i := range bar {
		bar[i] = '#'
	}
	return string(bar)
}
