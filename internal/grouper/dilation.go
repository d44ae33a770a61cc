package grouper

import "github.com/MeKo-Tech/inkline/internal/geometry"

// DilationConfig controls the dilation/connected-components strategy: each
// box is expanded by a fraction of its own size on all sides, and boxes whose
// expanded rectangles overlap land in the same group.
type DilationConfig struct {
	RatioX float64 // horizontal expansion as a fraction of the box width
	RatioY float64 // vertical expansion as a fraction of the box height
}

// DefaultDilationConfig returns the default expansion ratios.
func DefaultDilationConfig() DilationConfig {
	return DilationConfig{RatioX: 0.5, RatioY: 0.3}
}

// DilateCandidates groups raw boxes via dilation and connected components.
// Merged groups use the original (unexpanded) bounds.
func DilateCandidates(boxes []geometry.Quad, cfg DilationConfig) []geometry.Quad {
	if len(boxes) == 0 {
		return nil
	}
	out := make([]geometry.Quad, 0, len(boxes))
	for _, comp := range overlapComponents(boxes, cfg) {
		merged := boxes[comp[0]]
		for _, i := range comp[1:] {
			merged = merged.Union(boxes[i])
		}
		out = append(out, merged)
	}
	geometry.SortReadingOrder(out)
	return out
}

// DilateGlyphs groups recognized glyphs via dilation and connected
// components. Members merge in left-to-right order within each component.
func DilateGlyphs(glyphs []Glyph, cfg DilationConfig) []Word {
	if len(glyphs) == 0 {
		return nil
	}
	boxes := make([]geometry.Quad, len(glyphs))
	for i, g := range glyphs {
		boxes[i] = g.Box
	}
	out := make([]Word, 0, len(glyphs))
	for _, comp := range overlapComponents(boxes, cfg) {
		members := make([]Glyph, len(comp))
		for j, i := range comp {
			members[j] = glyphs[i]
		}
		geometry.SortReadingOrder(members)
		out = append(out, mergeGlyphs(members))
	}
	geometry.SortReadingOrder(out)
	return out
}

// overlapComponents finds connected components over the expanded-box overlap
// graph via breadth-first traversal.
func overlapComponents(boxes []geometry.Quad, cfg DilationConfig) [][]int {
	expanded := make([]geometry.Quad, len(boxes))
	for i, b := range boxes {
		expanded[i] = b.Expand(b.Width*cfg.RatioX, b.Height*cfg.RatioY)
	}

	visited := make([]bool, len(boxes))
	var comps [][]int
	for start := range boxes {
		if visited[start] {
			continue
		}
		comp := []int{start}
		visited[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := range boxes {
				if visited[j] || !expanded[cur].Overlaps(expanded[j]) {
					continue
				}
				visited[j] = true
				comp = append(comp, j)
				queue = append(queue, j)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
