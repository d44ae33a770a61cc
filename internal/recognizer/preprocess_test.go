package recognizer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResizeForRecognition_ScalesToHeight(t *testing.T) {
	img := solidImage(100, 25, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	out := ResizeForRecognition(img, 48, 320)
	require.NotNil(t, out)
	assert.Equal(t, 48, out.Bounds().Dy())
	assert.Equal(t, 192, out.Bounds().Dx())
}

func TestResizeForRecognition_CapsWidth(t *testing.T) {
	img := solidImage(2000, 20, color.NRGBA{A: 255})
	out := ResizeForRecognition(img, 48, 320)
	require.NotNil(t, out)
	assert.Equal(t, 48, out.Bounds().Dy())
	assert.Equal(t, 320, out.Bounds().Dx())
}

func TestResizeForRecognition_Degenerate(t *testing.T) {
	assert.Nil(t, ResizeForRecognition(nil, 48, 320))
	assert.Nil(t, ResizeForRecognition(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 48, 320))
	assert.Nil(t, ResizeForRecognition(solidImage(10, 10, color.NRGBA{A: 255}), 0, 320))
}

func TestResizeForRecognition_NarrowCropStaysAtLeastOnePixel(t *testing.T) {
	img := solidImage(1, 400, color.NRGBA{A: 255})
	out := ResizeForRecognition(img, 48, 320)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Bounds().Dx())
}

func TestNormalize(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{R: 255, G: 0, B: 128, A: 255})
	data, w, h := Normalize(img)
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	require.Len(t, data, 3*2*2)

	plane := w * h
	assert.InDelta(t, 1.0, float64(data[0]), 1e-6, "red channel, first plane")
	assert.InDelta(t, -1.0, float64(data[plane]), 1e-6, "green channel, second plane")
	assert.InDelta(t, (128.0/255.0-0.5)/0.5, float64(data[2*plane]), 1e-6, "blue channel, third plane")
}

func TestNormalize_Nil(t *testing.T) {
	data, w, h := Normalize(nil)
	assert.Nil(t, data)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
