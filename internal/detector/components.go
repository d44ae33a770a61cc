package detector

import "github.com/MeKo-Tech/inkline/internal/geometry"

// componentBounds is the bounding rectangle of one connected mask region,
// in inclusive pixel coordinates.
type componentBounds struct {
	minX, minY int
	maxX, maxY int
	count      int
}

func (c componentBounds) width() int  { return c.maxX - c.minX + 1 }
func (c componentBounds) height() int { return c.maxY - c.minY + 1 }

// connectedComponents finds 4-connected regions in the mask and returns each
// region's bounding rectangle via breadth-first traversal.
func connectedComponents(mask []bool, w, h int) []componentBounds {
	visited := make([]bool, len(mask))
	var comps []componentBounds

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !mask[idx] || visited[idx] {
				continue
			}
			comps = append(comps, traceComponent(mask, visited, w, h, x, y))
		}
	}
	return comps
}

func traceComponent(mask, visited []bool, w, h, startX, startY int) componentBounds {
	st := componentBounds{minX: startX, minY: startY, maxX: startX, maxY: startY}
	queue := []int{startY*w + startX}
	visited[startY*w+startX] = true

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cx, cy := cur%w, cur/w

		st.count++
		if cx < st.minX {
			st.minX = cx
		}
		if cy < st.minY {
			st.minY = cy
		}
		if cx > st.maxX {
			st.maxX = cx
		}
		if cy > st.maxY {
			st.maxY = cy
		}

		for _, d := range dirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if !mask[ni] || visited[ni] {
				continue
			}
			visited[ni] = true
			queue = append(queue, ni)
		}
	}
	return st
}

// quadFromComponent converts inclusive pixel bounds to a pixel-edge aligned
// quad (max expanded by one so the box covers the full pixel).
func quadFromComponent(c componentBounds) geometry.Quad {
	return geometry.NewRectQuad(
		float64(c.minX), float64(c.minY),
		float64(c.maxX+1), float64(c.maxY+1),
	)
}
