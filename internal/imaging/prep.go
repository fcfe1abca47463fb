package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PrepSpec describes the geometry normalization applied to a raw generated
// sprite before segmentation: center-crop to the target aspect ratio, then
// downscale to the exact target size.
type PrepSpec struct {
	// Width and Height are the target sprite dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultPrepSpec is the character sprite frame size used by the game assets.
var DefaultPrepSpec = PrepSpec{Width: 256, Height: 384}

// Prep center-crops the image to the target aspect ratio and downscales it to
// the target size with nearest-neighbor sampling.
//
// Nearest-neighbor is intentional: the result feeds tolerance-based
// segmentation, and interpolating filters would smear the background color
// into the subject's edge pixels and widen the halo the outline pass has to
// clean up.
func Prep(img image.Image, spec PrepSpec) (*image.NRGBA, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", spec.Width, spec.Height)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("cannot prep empty image")
	}

	targetAspect := float64(spec.Width) / float64(spec.Height)
	aspect := float64(w) / float64(h)

	var rect image.Rectangle
	if aspect > targetAspect {
		// Wider than target: crop the sides.
		cropW := int(float64(h) * targetAspect)
		left := (w - cropW) / 2
		rect = image.Rect(bounds.Min.X+left, bounds.Min.Y, bounds.Min.X+left+cropW, bounds.Max.Y)
	} else {
		// Taller than target: crop top and bottom.
		cropH := int(float64(w) / targetAspect)
		top := (h - cropH) / 2
		rect = image.Rect(bounds.Min.X, bounds.Min.Y+top, bounds.Max.X, bounds.Min.Y+top+cropH)
	}

	cropped := imaging.Crop(img, rect)
	return imaging.Resize(cropped, spec.Width, spec.Height, imaging.NearestNeighbor), nil
}
