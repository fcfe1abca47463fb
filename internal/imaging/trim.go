package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// AlphaBounds returns the bounding box of all pixels with alpha > 0, relative
// to the raster origin. The second result is false when the raster is fully
// transparent.
func AlphaBounds(img *image.NRGBA) (image.Rectangle, bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	minX, minY := w, h
	maxX, maxY := -1, -1

	for y := 0; y < h; y++ {
		row := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// UnionBounds returns the smallest rectangle covering all the given boxes.
// An empty input returns the zero rectangle and false.
func UnionBounds(boxes []image.Rectangle) (image.Rectangle, bool) {
	if len(boxes) == 0 {
		return image.Rectangle{}, false
	}
	u := boxes[0]
	for _, b := range boxes[1:] {
		u = u.Union(b)
	}
	return u, true
}

// TrimFrames crops every frame of an animation set to the union of their
// opaque bounding boxes, so all frames share one crop box and stay aligned
// in-game. Fully transparent frames contribute nothing to the union but are
// still cropped. Returns nil when every frame is fully transparent.
func TrimFrames(frames []*image.NRGBA) []*image.NRGBA {
	boxes := make([]image.Rectangle, 0, len(frames))
	for _, f := range frames {
		if b, ok := AlphaBounds(f); ok {
			boxes = append(boxes, b)
		}
	}

	u, ok := UnionBounds(boxes)
	if !ok {
		return nil
	}

	out := make([]*image.NRGBA, len(frames))
	for i, f := range frames {
		out[i] = imaging.Crop(f, u.Add(f.Rect.Min))
	}
	return out
}
