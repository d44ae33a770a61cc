package pipeline

import (
	"github.com/MeKo-Tech/inkline/internal/geometry"
	"github.com/MeKo-Tech/inkline/internal/grouper"
)

// BoxPoint is one corner of a span's quadrilateral, in image pixels.
type BoxPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func boxFromQuad(q geometry.Quad) [4]BoxPoint {
	corners := q.OrderCorners()
	var out [4]BoxPoint
	for i, c := range corners {
		out[i] = BoxPoint{X: c.X, Y: c.Y}
	}
	return out
}

// Span is one recognized word with its location and confidence. Box holds the
// four corners in top-left, top-right, bottom-right, bottom-left order.
type Span struct {
	Text       string      `json:"text" yaml:"text"`
	Confidence float64     `json:"confidence" yaml:"confidence"`
	Box        [4]BoxPoint `json:"box" yaml:"box"`
}

// Result is the outcome of one full pipeline pass over an image. Spans are in
// reading order and Text joins them with single spaces.
type Result struct {
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Spans      []Span  `json:"spans" yaml:"spans"`
}

func resultFromWords(words []grouper.Word) Result {
	if len(words) == 0 {
		return Result{}
	}

	spans := make([]Span, 0, len(words))
	var sb []byte
	var confSum float64
	for i, w := range words {
		spans = append(spans, Span{
			Text:       w.Text,
			Confidence: w.Confidence,
			Box:        boxFromQuad(w.Box),
		})
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, w.Text...)
		confSum += w.Confidence
	}
	return Result{
		Text:       string(sb),
		Confidence: confSum / float64(len(words)),
		Spans:      spans,
	}
}
