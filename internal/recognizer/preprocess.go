package recognizer

import (
	"image"

	"github.com/disintegration/imaging"
)

// ResizeForRecognition scales an image to the fixed model input height while
// preserving aspect ratio. The width is capped at maxWidth (when > 0) and is
// never upscaled beyond that cap.
func ResizeForRecognition(img image.Image, targetHeight, maxWidth int) image.Image {
	if img == nil || targetHeight <= 0 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	scale := float64(targetHeight) / float64(h)
	newW := int(float64(w) * scale)
	if newW < 1 {
		newW = 1
	}
	if maxWidth > 0 && newW > maxWidth {
		newW = maxWidth
	}
	return imaging.Resize(img, newW, targetHeight, imaging.Lanczos)
}

// Normalize converts an image to a channel-planar float32 tensor with values
// mapped by (v/255 - 0.5) / 0.5 into [-1, 1].
func Normalize(img image.Image) ([]float32, int, int) {
	if img == nil {
		return nil, 0, 0
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}

	data := make([]float32, 3*w*h)
	plane := w * h
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			o := x * 4
			idx := y*w + x
			data[idx] = (float32(row[o])/255.0 - 0.5) / 0.5
			data[plane+idx] = (float32(row[o+1])/255.0 - 0.5) / 0.5
			data[2*plane+idx] = (float32(row[o+2])/255.0 - 0.5) / 0.5
		}
	}
	return data, w, h
}
