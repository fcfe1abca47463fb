package segment

import "image"

// newRaster creates a w×h NRGBA raster filled with one color and alpha.
func newRaster(w, h int, c RGB, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setPixel(img, x, y, c, alpha)
		}
	}
	return img
}

// setPixel writes one pixel at raster-relative (x, y).
func setPixel(img *image.NRGBA, x, y int, c RGB, alpha uint8) {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = alpha
}

// getPixel reads one pixel at raster-relative (x, y).
func getPixel(img *image.NRGBA, x, y int) (RGB, uint8) {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}, img.Pix[i+3]
}

// clonePix snapshots the raw pixel buffer for untouched-raster assertions.
func clonePix(img *image.NRGBA) []byte {
	out := make([]byte, len(img.Pix))
	copy(out, img.Pix)
	return out
}

// samePix reports whether the raster still matches a snapshot.
func samePix(img *image.NRGBA, snapshot []byte) bool {
	if len(img.Pix) != len(snapshot) {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != snapshot[i] {
			return false
		}
	}
	return true
}
