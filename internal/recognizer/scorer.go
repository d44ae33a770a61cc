// Package recognizer turns cropped glyph images into text via an injected
// sequence scoring model and greedy CTC decoding.
package recognizer

// Scorer is the model boundary: it maps a normalized channel-planar tensor
// (3 x height x width, values in [-1, 1]) to a per-timestep class score
// matrix. Row t holds the scores of every class at timestep t; class 0 is the
// reserved blank symbol.
//
// Implementations need not be safe for concurrent Score calls; callers pool
// one scorer per worker or serialize externally.
type Scorer interface {
	Score(data []float32, width, height int) ([][]float32, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(data []float32, width, height int) ([][]float32, error)

// Score implements Scorer.
func (f ScorerFunc) Score(data []float32, width, height int) ([][]float32, error) {
	return f(data, width, height)
}
