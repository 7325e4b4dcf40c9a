// Package analysis computes the statistics binview visualizes: per-block
// Shannon entropy, byte-value histograms, and autocorrelation-based
// periodicity detection. All functions operate on an in-memory byte
// stream that is borrowed from the caller and never mutated.
package analysis

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input stream has zero length.
var ErrEmptyInput = errors.New("input was empty")

// InvalidConfigError reports a non-positive analysis parameter.
type InvalidConfigError struct {
	Field string
	Value int
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("analysis: %s must be positive, got %d", e.Field, e.Value)
}

// Default analysis parameters.
const (
	DefaultBlockSize = 16
	DefaultMaxShift  = 100
	DefaultWindow    = 10
	DefaultTopK      = 5
)

// Params holds the tunable inputs for a full analysis pass.
type Params struct {
	// BlockSize is the chunk width for entropy and hexdump analysis.
	BlockSize int

	// MaxShift is the upper bound (exclusive) on autocorrelation
	// shifts evaluated.
	MaxShift int

	// Window is the number of byte comparisons per shift.
	Window int

	// TopK is the number of periodicity candidates reported.
	TopK int
}

// DefaultParams returns the default analysis parameters.
func DefaultParams() Params {
	return Params{
		BlockSize: DefaultBlockSize,
		MaxShift:  DefaultMaxShift,
		Window:    DefaultWindow,
		TopK:      DefaultTopK,
	}
}

// Validate checks that every parameter is positive.
func (p Params) Validate() error {
	if p.BlockSize <= 0 {
		return &InvalidConfigError{Field: "block_size", Value: p.BlockSize}
	}
	if p.MaxShift <= 0 {
		return &InvalidConfigError{Field: "max_shift", Value: p.MaxShift}
	}
	if p.Window <= 0 {
		return &InvalidConfigError{Field: "window", Value: p.Window}
	}
	if p.TopK <= 0 {
		return &InvalidConfigError{Field: "top_k", Value: p.TopK}
	}
	return nil
}

// Block is a contiguous slice of the input stream. The final block of a
// stream may be shorter than the nominal block size; the core never pads
// it. Data aliases the input stream and must not be modified.
type Block struct {
	Offset int64
	Data   []byte
}

// BlockEntropyValue pairs a block with its Shannon entropy, in block
// order.
type BlockEntropyValue struct {
	Block   Block
	Entropy float64
}

// EntropyDistribution is the min and max entropy across a set of blocks,
// used to normalize entropy values for display intensity.
type EntropyDistribution struct {
	Min float64
	Max float64
}

// Normalize maps e into [0, 1] relative to the distribution. A
// degenerate distribution (Min == Max, e.g. a uniform file) maps
// everything to 0 rather than dividing by zero.
func (d EntropyDistribution) Normalize(e float64) float64 {
	if d.Max <= d.Min {
		return 0
	}
	r := (e - d.Min) / (d.Max - d.Min)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// HistogramEntry is one byte value and its occurrence count.
type HistogramEntry struct {
	Value byte
	Count int
}

// CorrelationScore is the number of window positions at which the stream
// matches itself after shifting by Shift bytes.
type CorrelationScore struct {
	Shift int
	Score int
}

// PeriodicityResult reports whether a repeating structure was detected.
// When Found is false the stream admitted no non-trivial shift (length
// <= 1); Period and Candidates are meaningless in that case.
type PeriodicityResult struct {
	Found  bool
	Period int

	// Candidates are the top-k non-zero shifts ranked by score
	// descending, shift ascending on ties.
	Candidates []CorrelationScore
}

// Report is the full structured output of one analysis pass, consumed by
// the renderer.
type Report struct {
	Params       Params
	Size         int64
	Blocks       []BlockEntropyValue
	Distribution EntropyDistribution
	Histogram    []HistogramEntry
	Correlation  []CorrelationScore
	Periodicity  PeriodicityResult
}

// MeanEntropy is the average block entropy of the report, 0 for an empty
// block set.
func (r *Report) MeanEntropy() float64 {
	if len(r.Blocks) == 0 {
		return 0
	}
	var sum float64
	for _, b := range r.Blocks {
		sum += b.Entropy
	}
	return sum / float64(len(r.Blocks))
}
