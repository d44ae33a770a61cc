// Package testutil renders synthetic page images for tests: ink-colored
// blobs on a paper-white background, deterministic and dependency-free.
package testutil

import (
	"image"
	"image/color"
)

// Ink colors used by fixtures.
var (
	BlackInk = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	BlueInk  = color.NRGBA{R: 30, G: 60, B: 180, A: 255}
	Paper    = color.NRGBA{R: 250, G: 248, B: 244, A: 255}
)

// NewPage returns a paper-white image of the given size.
func NewPage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, Paper)
		}
	}
	return img
}

// FillRect paints an axis-aligned rectangle [x0,x1)x[y0,y1), clipped to the
// image bounds.
func FillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	b := img.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// InkBlob paints a black rectangle, the simplest stand-in for a glyph.
func InkBlob(img *image.NRGBA, x0, y0, x1, y1 int) {
	FillRect(img, x0, y0, x1, y1, BlackInk)
}

// TwoWordPage renders two groups of glyph blobs on one text line, separated
// by a wide space: "xx xx". Blob size 20x24 with 8px intra-word gaps.
func TwoWordPage() *image.NRGBA {
	img := NewPage(320, 80)
	InkBlob(img, 20, 20, 40, 44)
	InkBlob(img, 48, 20, 68, 44)
	InkBlob(img, 160, 20, 180, 44)
	InkBlob(img, 188, 20, 208, 44)
	return img
}
