package analysis

import (
	"runtime"
	"sync"
)

// parallelThreshold is the block count above which per-block entropy is
// computed on multiple goroutines.
const parallelThreshold = 256

// Analyze runs the full pipeline over stream: chunking, per-block
// entropy, entropy distribution, histogram, autocorrelation, and
// periodicity detection. The stream must be non-empty and fully
// materialized; Analyze performs no I/O and leaves stream untouched.
func Analyze(stream []byte, params Params) (*Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(stream) == 0 {
		return nil, ErrEmptyInput
	}

	blocks, err := Split(stream, params.BlockSize)
	if err != nil {
		return nil, err
	}

	values := blockEntropies(blocks)
	scores := Correlate(stream, params.MaxShift, params.Window)

	return &Report{
		Params:       params,
		Size:         int64(len(stream)),
		Blocks:       values,
		Distribution: Distribution(values),
		Histogram:    Histogram(stream),
		Correlation:  scores,
		Periodicity:  DetectPeriod(scores, params.TopK),
	}, nil
}

// blockEntropies computes the entropy of every block, in block order.
// Blocks are independent, so large inputs are fanned out across
// goroutines; results are written by index to keep output ordering
// identical to the sequential path.
func blockEntropies(blocks []Block) []BlockEntropyValue {
	values := make([]BlockEntropyValue, len(blocks))
	if len(blocks) < parallelThreshold {
		for i, b := range blocks {
			values[i] = BlockEntropyValue{Block: b, Entropy: BlockEntropy(b.Data)}
		}
		return values
	}

	workers := runtime.NumCPU()
	if workers > len(blocks) {
		workers = len(blocks)
	}

	var wg sync.WaitGroup
	indexes := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				values[i] = BlockEntropyValue{Block: blocks[i], Entropy: BlockEntropy(blocks[i].Data)}
			}
		}()
	}

	for i := range blocks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return values
}
