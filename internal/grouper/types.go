// Package grouper clusters glyph-level detections into lines and words using
// adaptive, median-based thresholds, with a dilation/connected-components
// strategy as an alternative.
package grouper

import "github.com/MeKo-Tech/inkline/internal/geometry"

// Glyph is one recognized detection: its box, decoded text and confidence.
// Count is the number of original detections merged into it (1 for raw
// glyphs); merges weight confidences by Count so repeated merges remain
// correct running averages.
type Glyph struct {
	Box        geometry.Quad
	Text       string
	Confidence float64
	Count      int
}

// Bounds implements geometry.Bounded.
func (g Glyph) Bounds() geometry.Quad { return g.Box }

// Word is a merged group of glyphs: the union box of all members, their text
// concatenated in left-to-right order, and a count-weighted mean confidence.
type Word struct {
	Box        geometry.Quad
	Text       string
	Confidence float64
	Count      int
}

// Bounds implements geometry.Bounded.
func (w Word) Bounds() geometry.Quad { return w.Box }

// mergeGlyphs folds a left-to-right ordered run of glyphs into one Word.
// The union box invariant: Word bounds equal the extremal min/max across all
// members.
func mergeGlyphs(glyphs []Glyph) Word {
	w := Word{
		Box:        glyphs[0].Box,
		Text:       glyphs[0].Text,
		Confidence: glyphs[0].Confidence,
		Count:      glyphs[0].Count,
	}
	if w.Count <= 0 {
		w.Count = 1
	}
	for _, g := range glyphs[1:] {
		w = appendGlyph(w, g)
	}
	return w
}

func appendGlyph(w Word, g Glyph) Word {
	n := g.Count
	if n <= 0 {
		n = 1
	}
	total := w.Count + n
	return Word{
		Box:        w.Box.Union(g.Box),
		Text:       w.Text + g.Text,
		Confidence: (w.Confidence*float64(w.Count) + g.Confidence*float64(n)) / float64(total),
		Count:      total,
	}
}

// mergeWords joins two adjacent words, left first.
func mergeWords(a, b Word) Word {
	total := a.Count + b.Count
	return Word{
		Box:        a.Box.Union(b.Box),
		Text:       a.Text + b.Text,
		Confidence: (a.Confidence*float64(a.Count) + b.Confidence*float64(b.Count)) / float64(total),
		Count:      total,
	}
}
