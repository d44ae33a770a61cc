package recognizer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCharset(t *testing.T) *Charset {
	t.Helper()
	cs, err := NewCharset([]string{"h", "e", "l", "o"})
	require.NoError(t, err)
	return cs
}

func TestNew_Validation(t *testing.T) {
	cs := testCharset(t)
	scorer := ScorerFunc(func([]float32, int, int) ([][]float32, error) { return nil, nil })

	_, err := New(Config{ImageHeight: 0, MaxWidth: 320}, scorer, cs)
	assert.Error(t, err)

	_, err = New(DefaultConfig(), nil, cs)
	assert.Error(t, err)

	_, err = New(DefaultConfig(), scorer, nil)
	assert.Error(t, err)

	r, err := New(DefaultConfig(), scorer, cs)
	require.NoError(t, err)
	assert.Equal(t, 48, r.Config().ImageHeight)
	assert.Equal(t, 320, r.Config().MaxWidth)
}

func TestRecognize_DecodesScorerOutput(t *testing.T) {
	cs := testCharset(t)
	// Classes: 0 blank, 1 "h", 2 "e", 3 "l", 4 "o".
	scorer := ScorerFunc(func(data []float32, w, h int) ([][]float32, error) {
		assert.Equal(t, 48, h)
		assert.Len(t, data, 3*w*h)
		return [][]float32{
			{0.05, 0.8, 0.05, 0.05, 0.05},
			{0.05, 0.05, 0.8, 0.05, 0.05},
			{0.05, 0.05, 0.05, 0.8, 0.05},
			{0.8, 0.05, 0.05, 0.05, 0.05},
			{0.05, 0.05, 0.05, 0.8, 0.05},
			{0.05, 0.05, 0.05, 0.05, 0.8},
		}, nil
	})
	r, err := New(DefaultConfig(), scorer, cs)
	require.NoError(t, err)

	res, err := r.Recognize(solidImage(120, 30, color.NRGBA{R: 200, G: 200, B: 200, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
	assert.InDelta(t, 0.8, res.Confidence, 1e-6)
}

func TestRecognize_DegenerateInputSkipsModel(t *testing.T) {
	cs := testCharset(t)
	called := false
	scorer := ScorerFunc(func([]float32, int, int) ([][]float32, error) {
		called = true
		return nil, nil
	})
	r, err := New(DefaultConfig(), scorer, cs)
	require.NoError(t, err)

	res, err := r.Recognize(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Zero(t, res.Confidence)

	res, err = r.Recognize(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.False(t, called, "degenerate crops must not reach the scorer")
}

func TestRecognize_PropagatesScorerError(t *testing.T) {
	cs := testCharset(t)
	scorer := ScorerFunc(func([]float32, int, int) ([][]float32, error) {
		return nil, errors.New("session crashed")
	})
	r, err := New(DefaultConfig(), scorer, cs)
	require.NoError(t, err)

	_, err = r.Recognize(solidImage(60, 20, color.NRGBA{A: 255}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring failed")
}

func TestCleanText(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Equal(t, "hello world", CleanText("  hello \t world  "))
	assert.Equal(t, "ABC", CleanText("ＡＢＣ"))
	assert.Equal(t, "é", CleanText("e\u0301"))
}

func TestReshapeScores(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}

	scores, err := reshapeScores(data, []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, []float32{1, 2, 3}, scores[0])
	assert.Equal(t, []float32{4, 5, 6}, scores[1])

	scores, err = reshapeScores(data, []int64{3, 2})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []float32{5, 6}, scores[2])

	_, err = reshapeScores(data, []int64{2, 2, 3})
	assert.Error(t, err)
	_, err = reshapeScores(data, []int64{6})
	assert.Error(t, err)
	_, err = reshapeScores(data[:4], []int64{1, 2, 3})
	assert.Error(t, err)
}
