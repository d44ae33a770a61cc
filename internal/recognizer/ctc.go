package recognizer

import "math"

// Decoded is the outcome of greedy CTC decoding: the emitted class indices
// (blanks and repeats collapsed) and the confidence, the mean of per-timestep
// max probabilities across all timesteps, emitted or not.
type Decoded struct {
	Indices    []int
	Confidence float64
}

// DecodeGreedy collapses a [timesteps x classes] score matrix: each
// timestep's arg-max class is emitted only when it differs from the previous
// timestep's arg-max and is not the blank class.
func DecodeGreedy(scores [][]float32, blank int) Decoded {
	if len(scores) == 0 {
		return Decoded{}
	}

	indices := make([]int, 0, len(scores))
	var probSum float64
	prev := -1
	for _, row := range scores {
		idx, _ := argmax(row)
		if idx < 0 {
			continue
		}
		probSum += probOf(row, idx)
		if idx != blank && idx != prev {
			indices = append(indices, idx)
		}
		prev = idx
	}
	return Decoded{
		Indices:    indices,
		Confidence: probSum / float64(len(scores)),
	}
}

// argmax returns the index and value of the largest element.
func argmax(v []float32) (int, float32) {
	if len(v) == 0 {
		return -1, 0
	}
	idx := 0
	best := v[0]
	for i, x := range v[1:] {
		if x > best {
			best = x
			idx = i + 1
		}
	}
	return idx, best
}

// probOf returns the probability of v[idx]. Rows that already sum to ~1 in
// [0,1] pass through unchanged; otherwise a stable softmax is applied so the
// decoder also accepts raw logits.
func probOf(v []float32, idx int) float64 {
	var sum float64
	minV, maxV := v[0], v[0]
	for _, x := range v {
		sum += float64(x)
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	if sum > 0.99 && sum < 1.01 && minV >= 0 && maxV <= 1 {
		return float64(v[idx])
	}

	var denom float64
	for _, x := range v {
		denom += math.Exp(float64(x - maxV))
	}
	if denom == 0 {
		return 0
	}
	return math.Exp(float64(v[idx]-maxV)) / denom
}
