package analysis

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
)

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestBlockEntropy(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected float64
	}{
		{
			name:     "empty block",
			data:     nil,
			expected: 0,
		},
		{
			name:     "sixteen zero bytes",
			data:     make([]byte, 16),
			expected: 0,
		},
		{
			name:     "single byte",
			data:     []byte{0x42},
			expected: 0,
		},
		{
			name:     "uniform non-zero value",
			data:     bytes.Repeat([]byte{0xff}, 64),
			expected: 0,
		},
		{
			name:     "two values equally represented",
			data:     []byte("AAAABBBB"),
			expected: 1.0,
		},
		{
			name:     "four values equally represented",
			data:     []byte{1, 2, 3, 4, 1, 2, 3, 4},
			expected: 2.0,
		},
		{
			name:     "all 256 values once",
			data:     allByteValues(),
			expected: 8.0,
		},
		{
			name:     "skewed distribution",
			data:     []byte("AAAB"),
			expected: 0.8112781244591328, // -(3/4·log2(3/4) + 1/4·log2(1/4))
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlockEntropy(tt.data)
			if !approxEqual(got, tt.expected, 1e-9) {
				t.Errorf("BlockEntropy(%q) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func allByteValues() []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestBlockEntropy_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		data := make([]byte, rng.Intn(1024)+1)
		rng.Read(data)
		if e := BlockEntropy(data); e < 0 {
			t.Fatalf("BlockEntropy returned negative value %v for %d bytes", e, len(data))
		}
	}
}

func TestBlockEntropy_UpperBound(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, size := range []int{1, 2, 7, 16, 255, 256, 4096} {
		data := make([]byte, size)
		rng.Read(data)
		limit := math.Log2(math.Min(256, float64(size)))
		if e := BlockEntropy(data); e > limit+1e-9 {
			t.Errorf("BlockEntropy of %d bytes = %v, exceeds log2 bound %v", size, e, limit)
		}
	}
}

func TestBlockEntropy_OrderIndependent(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	want := BlockEntropy(data)

	shuffled := make([]byte, len(data))
	copy(shuffled, data)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := BlockEntropy(shuffled); !approxEqual(got, want, 1e-12) {
			t.Fatalf("entropy changed under permutation: %v != %v", got, want)
		}
	}
}

func TestDistribution(t *testing.T) {
	tests := []struct {
		name      string
		entropies []float64
		wantMin   float64
		wantMax   float64
	}{
		{
			name:      "no blocks",
			entropies: nil,
			wantMin:   0,
			wantMax:   0,
		},
		{
			name:      "single block",
			entropies: []float64{3.5},
			wantMin:   3.5,
			wantMax:   3.5,
		},
		{
			name:      "mixed blocks",
			entropies: []float64{2.0, 7.9, 0.0, 4.4},
			wantMin:   0.0,
			wantMax:   7.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := make([]BlockEntropyValue, len(tt.entropies))
			for i, e := range tt.entropies {
				blocks[i] = BlockEntropyValue{Entropy: e}
			}
			d := Distribution(blocks)
			if d.Min != tt.wantMin || d.Max != tt.wantMax {
				t.Errorf("Distribution = (%v, %v), want (%v, %v)", d.Min, d.Max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestEntropyDistribution_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		dist     EntropyDistribution
		entropy  float64
		expected float64
	}{
		{
			name:     "degenerate distribution maps to zero",
			dist:     EntropyDistribution{Min: 4.0, Max: 4.0},
			entropy:  4.0,
			expected: 0,
		},
		{
			name:     "minimum maps to zero",
			dist:     EntropyDistribution{Min: 1.0, Max: 3.0},
			entropy:  1.0,
			expected: 0,
		},
		{
			name:     "maximum maps to one",
			dist:     EntropyDistribution{Min: 1.0, Max: 3.0},
			entropy:  3.0,
			expected: 1,
		},
		{
			name:     "midpoint",
			dist:     EntropyDistribution{Min: 0.0, Max: 8.0},
			entropy:  4.0,
			expected: 0.5,
		},
		{
			name:     "below minimum clamps",
			dist:     EntropyDistribution{Min: 2.0, Max: 4.0},
			entropy:  1.0,
			expected: 0,
		},
		{
			name:     "above maximum clamps",
			dist:     EntropyDistribution{Min: 2.0, Max: 4.0},
			entropy:  5.0,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dist.Normalize(tt.entropy)
			if !approxEqual(got, tt.expected, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.entropy, got, tt.expected)
			}
		})
	}
}
