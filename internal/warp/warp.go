// Package warp crops quadrilateral regions into upright rasters using a
// perspective transform. An affine crop is not enough here: detected quads may
// be rotated or skewed, so sampling goes through a full homography.
package warp

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/inkline/internal/geometry"
)

// CropQuad extracts the region enclosed by quad from src and returns an
// upright raster whose dimensions derive from the quad's side lengths.
// Degenerate quads are clamped to a 1x1 output rather than rejected.
func CropQuad(src image.Image, quad geometry.Quad) image.Image {
	c := quad.OrderCorners()
	tl, tr, br, bl := c[0], c[1], c[2], c[3]

	w := int(math.Round(math.Max(tl.Distance(tr), bl.Distance(br))))
	h := int(math.Round(math.Max(tl.Distance(bl), tr.Distance(br))))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// Homography from output rectangle corners to source corners, so each
	// destination pixel is inverse-mapped and bilinearly sampled.
	dst := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(w), Y: 0},
		{X: float64(w), Y: float64(h)},
		{X: 0, Y: float64(h)},
	}
	hm, ok := homography(dst, [4]geometry.Point{tl, tr, br, bl})
	if !ok {
		// Collinear corners; fall back to the axis-aligned bounds.
		return axisAlignedCrop(src, quad)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := project(hm, float64(x), float64(y))
			out.Set(x, y, sampleBilinear(src, sx+float64(sb.Min.X), sy+float64(sb.Min.Y)))
		}
	}
	return out
}

func axisAlignedCrop(src image.Image, quad geometry.Quad) image.Image {
	w := int(math.Round(quad.Width))
	h := int(math.Round(quad.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, sampleBilinear(src,
				quad.MinX+float64(x)+float64(sb.Min.X),
				quad.MinY+float64(y)+float64(sb.Min.Y)))
		}
	}
	return out
}

// homography computes the 3x3 matrix H mapping p[i] -> q[i], returned
// row-major with h22 fixed to 1. Solves the standard 8x8 linear system with
// partial pivoting; ok is false when the system is singular.
func homography(p, q [4]geometry.Point) ([9]float64, bool) {
	var a [8][9]float64 // augmented matrix
	for i := 0; i < 4; i++ {
		sx, sy := p[i].X, p[i].Y
		dx, dy := q[i].X, q[i].Y
		r := 2 * i
		a[r] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		a[r+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return [9]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		div := a[col][col]
		for c := col; c <= 8; c++ {
			a[col][c] /= div
		}
		for r := 0; r < 8; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := col; c <= 8; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	return [9]float64{
		a[0][8], a[1][8], a[2][8],
		a[3][8], a[4][8], a[5][8],
		a[6][8], a[7][8], 1,
	}, true
}

// project applies the homography to (x, y).
func project(h [9]float64, x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}

// sampleBilinear interpolates src at fractional coordinates; outside the
// source bounds it returns black.
func sampleBilinear(src image.Image, x, y float64) color.Color {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{0, 0, 0, 255}
	}
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := channels(src.At(x0, y0))
	c10 := channels(src.At(x1, y0))
	c01 := channels(src.At(x0, y1))
	c11 := channels(src.At(x1, y1))

	var out [4]uint8
	for i := 0; i < 4; i++ {
		top := c00[i] + (c10[i]-c00[i])*fx
		bot := c01[i] + (c11[i]-c01[i])*fx
		out[i] = uint8(top + (bot-top)*fy + 0.5)
	}
	return color.RGBA{out[0], out[1], out[2], out[3]}
}

func channels(c color.Color) [4]float64 {
	r, g, b, a := c.RGBA()
	return [4]float64{
		float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8),
	}
}
