package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// ReportDoc is the machine-readable projection of an analysis report.
// Block contents are omitted; offsets and entropies describe the blocks.
type ReportDoc struct {
	Size        int64           `json:"size" yaml:"size"`
	BlockSize   int             `json:"block_size" yaml:"block_size"`
	MinEntropy  float64         `json:"min_entropy" yaml:"min_entropy"`
	MaxEntropy  float64         `json:"max_entropy" yaml:"max_entropy"`
	Blocks      []BlockDoc      `json:"blocks" yaml:"blocks"`
	Histogram   []HistogramDoc  `json:"histogram" yaml:"histogram"`
	Periodicity *PeriodicityDoc `json:"periodicity,omitempty" yaml:"periodicity,omitempty"`
}

// BlockDoc is one block's offset, length, and entropy.
type BlockDoc struct {
	Offset  int64   `json:"offset" yaml:"offset"`
	Length  int     `json:"length" yaml:"length"`
	Entropy float64 `json:"entropy" yaml:"entropy"`
}

// HistogramDoc is one histogram entry.
type HistogramDoc struct {
	Value int `json:"value" yaml:"value"`
	Count int `json:"count" yaml:"count"`
}

// PeriodicityDoc is the periodicity verdict with its candidate table.
type PeriodicityDoc struct {
	Period     int            `json:"period" yaml:"period"`
	Candidates []CandidateDoc `json:"candidates" yaml:"candidates"`
}

// CandidateDoc is one ranked (shift, score) candidate.
type CandidateDoc struct {
	Shift int `json:"shift" yaml:"shift"`
	Score int `json:"score" yaml:"score"`
}

// NewReportDoc projects report into its serializable form.
func NewReportDoc(report *analysis.Report) *ReportDoc {
	doc := &ReportDoc{
		Size:       report.Size,
		BlockSize:  report.Params.BlockSize,
		MinEntropy: report.Distribution.Min,
		MaxEntropy: report.Distribution.Max,
		Blocks:     make([]BlockDoc, len(report.Blocks)),
		Histogram:  make([]HistogramDoc, len(report.Histogram)),
	}
	for i, b := range report.Blocks {
		doc.Blocks[i] = BlockDoc{
			Offset:  b.Block.Offset,
			Length:  len(b.Block.Data),
			Entropy: b.Entropy,
		}
	}
	for i, e := range report.Histogram {
		doc.Histogram[i] = HistogramDoc{Value: int(e.Value), Count: e.Count}
	}
	if p := report.Periodicity; p.Found {
		pd := &PeriodicityDoc{Period: p.Period}
		for _, c := range p.Candidates {
			pd.Candidates = append(pd.Candidates, CandidateDoc{Shift: c.Shift, Score: c.Score})
		}
		doc.Periodicity = pd
	}
	return doc
}

// EncodeJSON writes the report as indented JSON.
func EncodeJSON(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReportDoc(report)); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// EncodeYAML writes the report as YAML.
func EncodeYAML(w io.Writer, report *analysis.Report) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(NewReportDoc(report)); err != nil {
		return fmt.Errorf("encode report yaml: %w", err)
	}
	return nil
}
