package detector

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// inkMask builds a binary mask of ink-like pixels: the image is converted to
// HSV and each configured range contributes via logical OR.
func inkMask(img image.Image, ranges []HSVRange) ([]bool, int, int) {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}

	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			o := x * 4
			c := colorful.Color{
				R: float64(row[o]) / 255.0,
				G: float64(row[o+1]) / 255.0,
				B: float64(row[o+2]) / 255.0,
			}
			hue, sat, val := c.Hsv()
			for _, r := range ranges {
				if r.Contains(hue, sat, val) {
					mask[y*w+x] = true
					break
				}
			}
		}
	}
	return mask, w, h
}
