package analysis

import "math"

// BlockEntropy calculates the Shannon entropy of data in bits, from the
// byte-value frequency distribution. An empty block and a block of one
// repeated value both have entropy 0; the upper bound is
// log2(min(256, len(data))). Floating-point rounding can produce a tiny
// negative sum, which is clamped to 0.
func BlockEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range data {
		counts[b]++
	}

	entropy := 0.0
	n := float64(len(data))
	for _, count := range counts {
		if count > 0 {
			p := float64(count) / n
			entropy -= p * math.Log2(p)
		}
	}

	if entropy < 0 {
		return 0
	}
	return entropy
}

// Distribution returns the min and max block entropy over blocks. With
// no blocks both bounds are 0.
func Distribution(blocks []BlockEntropyValue) EntropyDistribution {
	if len(blocks) == 0 {
		return EntropyDistribution{}
	}

	d := EntropyDistribution{Min: blocks[0].Entropy, Max: blocks[0].Entropy}
	for _, b := range blocks[1:] {
		if b.Entropy < d.Min {
			d.Min = b.Entropy
		}
		if b.Entropy > d.Max {
			d.Max = b.Entropy
		}
	}
	return d
}
