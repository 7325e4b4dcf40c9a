package render

import (
	"fmt"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// previewLength is the number of bytes shown next to each candidate
// shift.
const previewLength = 8

// Periodicity writes the periodicity verdict and the ranked candidate
// table. stream is the analyzed input, used only to show a short byte
// preview at each candidate offset; it may be nil to suppress previews.
func (r *Renderer) Periodicity(report *analysis.Report, stream []byte) {
	p := report.Periodicity
	if !p.Found {
		fmt.Fprintln(r.w, "No periodicity")
		return
	}

	fmt.Fprintf(r.w, "Detected period: %d\n\n", p.Period)
	fmt.Fprintf(r.w, "%-7s %-6s %s\n", "shift", "score", "preview")
	for _, c := range p.Candidates {
		fmt.Fprintf(r.w, "%-7d %-6d %s\n", c.Shift, c.Score, r.preview(stream, c.Shift))
	}
}

// preview renders up to previewLength bytes starting at offset, hex
// colored by value.
func (r *Renderer) preview(stream []byte, offset int) string {
	if stream == nil || offset < 0 || offset >= len(stream) {
		return ""
	}
	end := offset + previewLength
	if end > len(stream) {
		end = len(stream)
	}

	out := ""
	for i, b := range stream[offset:end] {
		if i > 0 {
			out += " "
		}
		out += r.c.colorize(fmt.Sprintf("%02x", b), ByteColor(b))
	}
	return out
}
