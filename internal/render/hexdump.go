package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// DefaultGroupWidth is the number of bytes per hex group in a dump line.
const DefaultGroupWidth = 8

// entropyMapColumns is the number of block glyphs per entropy-map line.
const entropyMapColumns = 32

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI truecolor escapes.
	Color bool

	// GroupWidth is the number of bytes per spaced group in hexdump
	// lines. Zero means DefaultGroupWidth.
	GroupWidth int
}

// Renderer writes formatted analysis output. It is not safe for
// concurrent use; create one per output stream.
type Renderer struct {
	w     io.Writer
	c     *colorizer
	group int
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	group := opts.GroupWidth
	if group <= 0 {
		group = DefaultGroupWidth
	}
	return &Renderer{
		w:     w,
		c:     newColorizer(opts.Color),
		group: group,
	}
}

// Hexdump writes one line per block: offset, grouped hex bytes colored
// by value, an ASCII column, and the block entropy colored by its
// position in the report's entropy distribution. Short final blocks are
// padded with blanks so the entropy column stays aligned; the core
// itself never pads.
func (r *Renderer) Hexdump(report *analysis.Report) {
	width := report.Params.BlockSize
	for _, bv := range report.Blocks {
		fmt.Fprintf(r.w, "%08x %s %s %s\n",
			bv.Block.Offset,
			r.formatHex(bv.Block.Data, width),
			r.formatASCII(bv.Block.Data, width),
			r.formatEntropy(bv.Entropy, report.Distribution),
		)
	}
}

// EntropyMap writes a compact overview: one glyph per block, colored by
// normalized entropy, 32 blocks per line with the byte offset of the
// first block as prefix.
func (r *Renderer) EntropyMap(report *analysis.Report) {
	blockSize := int64(report.Params.BlockSize)
	for i, bv := range report.Blocks {
		if i%entropyMapColumns == 0 {
			if i > 0 {
				fmt.Fprintln(r.w)
			}
			fmt.Fprintf(r.w, "%08x ", int64(i)*blockSize)
		}
		norm := report.Distribution.Normalize(bv.Entropy)
		fmt.Fprint(r.w, r.c.colorize("X", EntropyColor(norm)))
	}
	if len(report.Blocks) > 0 {
		fmt.Fprintln(r.w)
	}
}

func (r *Renderer) formatHex(data []byte, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i > 0 && i%r.group == 0 {
			sb.WriteByte(' ')
		}
		if i < len(data) {
			b := data[i]
			sb.WriteString(r.c.colorize(fmt.Sprintf("%02x", b), ByteColor(b)))
		} else {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}

func (r *Renderer) formatASCII(data []byte, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i > 0 && i%r.group == 0 {
			sb.WriteByte(' ')
		}
		if i < len(data) {
			sb.WriteByte(printableOrDot(data[i]))
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (r *Renderer) formatEntropy(entropy float64, dist analysis.EntropyDistribution) string {
	label := fmt.Sprintf("Entropy: %.2f", entropy)
	return r.c.colorize(label, EntropyColor(dist.Normalize(entropy)))
}

// printableOrDot substitutes '.' for anything outside the visible ASCII
// range, whitespace included.
func printableOrDot(b byte) byte {
	if b > 0x20 && b < 0x7f {
		return b
	}
	return '.'
}
