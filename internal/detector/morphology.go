package detector

// Binary morphology over row-major masks with a rectangular structuring
// element. The detection pass runs a close (fills small gaps within a stroke)
// followed by a dilate (bridges nearby strokes).

// closeMask dilates then erodes, filling gaps up to roughly the kernel size.
func closeMask(mask []bool, w, h, kw, kh int) []bool {
	return erodeMask(dilateMask(mask, w, h, kw, kh), w, h, kw, kh)
}

// dilateMask sets a pixel when any pixel under the kernel is set.
func dilateMask(mask []bool, w, h, kw, kh int) []bool {
	if kw <= 1 && kh <= 1 {
		return mask
	}
	out := make([]bool, len(mask))
	hx, hy := kw/2, kh/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if kernelAny(mask, w, h, x, y, hx, hy) {
				out[y*w+x] = true
			}
		}
	}
	return out
}

// erodeMask keeps a pixel only when every pixel under the kernel is set.
func erodeMask(mask []bool, w, h, kw, kh int) []bool {
	if kw <= 1 && kh <= 1 {
		return mask
	}
	out := make([]bool, len(mask))
	hx, hy := kw/2, kh/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = kernelAll(mask, w, h, x, y, hx, hy)
		}
	}
	return out
}

func kernelAny(mask []bool, w, h, x, y, hx, hy int) bool {
	for ky := -hy; ky <= hy; ky++ {
		ny := y + ky
		if ny < 0 || ny >= h {
			continue
		}
		for kx := -hx; kx <= hx; kx++ {
			nx := x + kx
			if nx < 0 || nx >= w {
				continue
			}
			if mask[ny*w+nx] {
				return true
			}
		}
	}
	return false
}

func kernelAll(mask []bool, w, h, x, y, hx, hy int) bool {
	for ky := -hy; ky <= hy; ky++ {
		ny := y + ky
		if ny < 0 || ny >= h {
			continue
		}
		for kx := -hx; kx <= hx; kx++ {
			nx := x + kx
			if nx < 0 || nx >= w {
				continue
			}
			if !mask[ny*w+nx] {
				return false
			}
		}
	}
	return true
}
