package analysis

import "sort"

// Correlate scores the self-similarity of stream under every shift in
// [0, maxShift). For each shift it compares stream[i] against
// stream[i+shift] for i in [0, window); positions past the end of the
// stream never match. maxShift and window are clamped to the stream
// length, so any non-empty stream produces at least the trivial shift-0
// score.
func Correlate(stream []byte, maxShift, window int) []CorrelationScore {
	n := len(stream)
	if n == 0 {
		return nil
	}
	if maxShift > n {
		maxShift = n
	}
	if window > n {
		window = n
	}
	if maxShift <= 0 || window <= 0 {
		return nil
	}

	scores := make([]CorrelationScore, maxShift)
	for shift := 0; shift < maxShift; shift++ {
		score := 0
		for i := 0; i < window && i+shift < n; i++ {
			if stream[i] == stream[i+shift] {
				score++
			}
		}
		scores[shift] = CorrelationScore{Shift: shift, Score: score}
	}
	return scores
}

// DetectPeriod ranks the correlation scores and picks the detected
// period. Shift 0 is a perfect self-match by construction and is
// excluded from candidate selection; with fewer than two evaluated
// shifts there is no non-trivial candidate and no periodicity is
// reported. Ranking is by score descending with the smaller shift
// winning ties, so the result is deterministic and the detected period
// is the smallest best-matching shift.
func DetectPeriod(scores []CorrelationScore, topK int) PeriodicityResult {
	if len(scores) < 2 {
		return PeriodicityResult{}
	}

	candidates := make([]CorrelationScore, 0, len(scores)-1)
	for _, s := range scores {
		if s.Shift != 0 {
			candidates = append(candidates, s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Shift < candidates[j].Shift
	})

	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}

	return PeriodicityResult{
		Found:      true,
		Period:     candidates[0].Shift,
		Candidates: candidates,
	}
}
