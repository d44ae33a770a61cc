package grouper

import (
	"sort"

	"github.com/MeKo-Tech/inkline/internal/geometry"
)

// CandidateConfig controls pre-recognition grouping of raw detection boxes.
type CandidateConfig struct {
	// LineBandRatio scales the median box height into the vertical distance
	// within which a box joins the current line.
	LineBandRatio float64
	// MinOverlapRatio additionally accepts a box whose vertical overlap with
	// the line's union bounds exceeds this ratio even when its center is
	// outside the band.
	MinOverlapRatio float64
	// SpacingRatio scales the median box width into the maximum horizontal
	// gap bridged within a word.
	SpacingRatio float64
}

// DefaultCandidateConfig returns the pre-recognition grouping defaults.
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		LineBandRatio:   0.3,
		MinOverlapRatio: 0.5,
		SpacingRatio:    1.5,
	}
}

// Config controls post-recognition grouping of recognized glyphs.
type Config struct {
	LineBandRatio float64
	SpacingRatio  float64

	// MergeLowConfidence folds single-glyph words below LowConfidence into an
	// adjacent word when the gap is under averageWidth*MergeDistanceRatio,
	// preferring the previous word.
	MergeLowConfidence bool
	LowConfidence      float64
	MergeDistanceRatio float64
}

// DefaultConfig returns the post-recognition grouping defaults. The line band
// ratio deliberately differs from the pre-recognition default; the two call
// sites have always used different constants.
func DefaultConfig() Config {
	return Config{
		LineBandRatio:      0.5,
		SpacingRatio:       1.5,
		MergeLowConfidence: true,
		LowConfidence:      0.5,
		MergeDistanceRatio: 0.8,
	}
}

// GroupCandidates merges raw detection boxes into word-level boxes using
// line-then-word clustering. Empty input yields an empty result.
func GroupCandidates(boxes []geometry.Quad, cfg CandidateConfig) []geometry.Quad {
	if len(boxes) == 0 {
		return nil
	}
	lines := clusterLines(boxes, cfg.LineBandRatio, cfg.MinOverlapRatio)
	out := make([]geometry.Quad, 0, len(boxes))
	for _, line := range lines {
		for _, run := range splitWords(boxes, line, cfg.SpacingRatio) {
			merged := boxes[run[0]]
			for _, i := range run[1:] {
				merged = merged.Union(boxes[i])
			}
			out = append(out, merged)
		}
	}
	geometry.SortReadingOrder(out)
	return out
}

// GroupGlyphs merges recognized glyphs into words using line-then-word
// clustering, then optionally folds stray low-confidence single glyphs into
// their neighbors. Words come back in reading order.
func GroupGlyphs(glyphs []Glyph, cfg Config) []Word {
	if len(glyphs) == 0 {
		return nil
	}
	boxes := make([]geometry.Quad, len(glyphs))
	for i, g := range glyphs {
		boxes[i] = g.Box
	}
	lines := clusterLines(boxes, cfg.LineBandRatio, 0)

	out := make([]Word, 0, len(glyphs))
	for _, line := range lines {
		words := make([]Word, 0, len(line))
		for _, run := range splitWords(boxes, line, cfg.SpacingRatio) {
			members := make([]Glyph, len(run))
			for j, i := range run {
				members[j] = glyphs[i]
			}
			words = append(words, mergeGlyphs(members))
		}
		if cfg.MergeLowConfidence {
			words = mergeLowConfidenceWords(words, cfg)
		}
		out = append(out, words...)
	}
	geometry.SortReadingOrder(out)
	return out
}

// clusterLines assigns box indices to lines by vertical center proximity.
// Boxes are walked in ascending center order; one joins the current line when
// its center is within median(heights)*bandRatio of the line's running mean
// center, or (when minOverlap > 0) when its vertical overlap with the line's
// union bounds exceeds minOverlap. The running mean and union are updated
// after every join; the input is never mutated.
func clusterLines(boxes []geometry.Quad, bandRatio, minOverlap float64) [][]int {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].CenterY < boxes[order[b]].CenterY
	})

	heights := make([]float64, len(boxes))
	for i, b := range boxes {
		heights[i] = b.Height
	}
	band := median(heights) * bandRatio

	var lines [][]int
	var current []int
	var meanY float64
	var union geometry.Quad

	for _, idx := range order {
		b := boxes[idx]
		if len(current) == 0 {
			current = []int{idx}
			meanY = b.CenterY
			union = b
			continue
		}
		joins := abs(b.CenterY-meanY) <= band
		if !joins && minOverlap > 0 {
			joins = b.VerticalOverlapRatio(union) > minOverlap
		}
		if joins {
			current = append(current, idx)
			meanY += (b.CenterY - meanY) / float64(len(current))
			union = union.Union(b)
			continue
		}
		lines = append(lines, current)
		current = []int{idx}
		meanY = b.CenterY
		union = b
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// splitWords orders a line's indices by left edge and breaks it into word
// runs wherever the horizontal gap to the previous box's right edge exceeds
// median(widths)*spacingRatio.
func splitWords(boxes []geometry.Quad, line []int, spacingRatio float64) [][]int {
	ordered := make([]int, len(line))
	copy(ordered, line)
	sort.SliceStable(ordered, func(a, b int) bool {
		return boxes[ordered[a]].MinX < boxes[ordered[b]].MinX
	})

	widths := make([]float64, len(ordered))
	for i, idx := range ordered {
		widths[i] = boxes[idx].Width
	}
	threshold := median(widths) * spacingRatio

	var runs [][]int
	current := []int{ordered[0]}
	prevRight := boxes[ordered[0]].MaxX
	for _, idx := range ordered[1:] {
		b := boxes[idx]
		if b.MinX-prevRight <= threshold {
			current = append(current, idx)
		} else {
			runs = append(runs, current)
			current = []int{idx}
		}
		if b.MaxX > prevRight {
			prevRight = b.MaxX
		}
	}
	runs = append(runs, current)
	return runs
}

// mergeLowConfidenceWords folds single-glyph words below the confidence
// threshold into an adjacent word on the same line when close enough. The
// previous word wins when both neighbors qualify. A single forward pass
// building a new list; a deferred merge is staged on the next entry.
func mergeLowConfidenceWords(words []Word, cfg Config) []Word {
	if len(words) < 2 {
		return words
	}
	var avgWidth float64
	for _, w := range words {
		avgWidth += w.Box.Width
	}
	avgWidth /= float64(len(words))
	maxGap := avgWidth * cfg.MergeDistanceRatio

	out := make([]Word, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w.Count != 1 || w.Confidence >= cfg.LowConfidence {
			out = append(out, w)
			continue
		}
		prevOK := len(out) > 0 && w.Box.MinX-out[len(out)-1].Box.MaxX < maxGap
		nextOK := i+1 < len(words) && words[i+1].Box.MinX-w.Box.MaxX < maxGap
		switch {
		case prevOK:
			out[len(out)-1] = mergeWords(out[len(out)-1], w)
		case nextOK:
			words[i+1] = mergeWords(w, words[i+1])
		default:
			out = append(out, w)
		}
	}
	return out
}

// median returns the middle value of vs (mean of the middle pair for even
// lengths); 0 for an empty slice.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
