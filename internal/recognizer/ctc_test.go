package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGreedy_Empty(t *testing.T) {
	dec := DecodeGreedy(nil, 0)
	assert.Empty(t, dec.Indices)
	assert.Zero(t, dec.Confidence)
}

func TestDecodeGreedy_CollapsesRepeatsAndBlanks(t *testing.T) {
	// argmax per row: 1, 1, 0(blank), 1, 2, 2
	scores := [][]float32{
		{0.1, 0.8, 0.1},
		{0.1, 0.7, 0.2},
		{0.9, 0.05, 0.05},
		{0.2, 0.6, 0.2},
		{0.1, 0.1, 0.8},
		{0.05, 0.05, 0.9},
	}
	dec := DecodeGreedy(scores, 0)
	assert.Equal(t, []int{1, 1, 2}, dec.Indices)
}

func TestDecodeGreedy_BlankSeparatesRepeats(t *testing.T) {
	scores := [][]float32{
		{0.1, 0.9},
		{0.9, 0.1},
		{0.1, 0.9},
	}
	dec := DecodeGreedy(scores, 0)
	assert.Equal(t, []int{1, 1}, dec.Indices)
}

func TestDecodeGreedy_ConfidenceAveragesAllTimesteps(t *testing.T) {
	scores := [][]float32{
		{0.1, 0.8, 0.1},
		{0.1, 0.8, 0.1},
		{0.7, 0.2, 0.1},
	}
	dec := DecodeGreedy(scores, 0)
	// Blank timesteps still contribute their max probability.
	assert.InDelta(t, (0.8+0.8+0.7)/3.0, dec.Confidence, 1e-9)
}

func TestDecodeGreedy_AcceptsLogits(t *testing.T) {
	scores := [][]float32{
		{0, 4, 0},
		{0, 4, 0},
	}
	dec := DecodeGreedy(scores, 0)
	require.Equal(t, []int{1}, dec.Indices)
	assert.Greater(t, dec.Confidence, 0.9)
	assert.LessOrEqual(t, dec.Confidence, 1.0)
}

func TestArgmax(t *testing.T) {
	idx, val := argmax([]float32{0.2, 0.5, 0.3})
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.5, val, 1e-9)

	idx, _ = argmax(nil)
	assert.Equal(t, -1, idx)
}

func TestProbOf_PassthroughAndSoftmax(t *testing.T) {
	// Already a probability distribution.
	assert.InDelta(t, 0.8, probOf([]float32{0.1, 0.8, 0.1}, 1), 1e-9)

	// Raw logits go through softmax.
	p := probOf([]float32{2, 0, 0}, 0)
	assert.InDelta(t, 0.78699, p, 1e-4)
}
