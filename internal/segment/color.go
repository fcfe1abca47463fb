package segment

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color without alpha.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#RRGGBB" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses a "#RRGGBB" (or "#rgb") string into an RGB color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MatchMode selects how a pixel is compared against a target color.
type MatchMode int

const (
	// MatchChannel accepts pixels whose R, G and B each differ from the
	// target by at most the tolerance. Used for background removal and
	// collision-map matching.
	MatchChannel MatchMode = iota

	// MatchEuclidean accepts pixels within a spherical neighborhood of the
	// target in RGB space: sqrt(dR²+dG²+dB²) <= tolerance.
	MatchEuclidean

	// MatchPink is a coarse hue classifier for the "pink-ish" color family
	// used by anti-collision map authoring. It ignores the target color and
	// deliberately accepts false positives over false negatives.
	MatchPink
)

// String returns the flag-friendly name of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchChannel:
		return "channel"
	case MatchEuclidean:
		return "euclidean"
	case MatchPink:
		return "pink"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// Matches reports whether pixel is equivalent to target under the given mode
// and tolerance.
//
// Matches is a pure function with no error conditions: a negative tolerance
// must be rejected by the caller (the pipeline does so during validation)
// before reaching this point.
//
// # Modes
//
//   - MatchChannel: |R-Rt| <= tol AND |G-Gt| <= tol AND |B-Bt| <= tol.
//   - MatchEuclidean: Euclidean RGB distance <= tol, computed through
//     go-colorful in its normalized 0-1 color space (tolerance is given in
//     0-255 channel units and scaled accordingly).
//   - MatchPink: R>60, B>60, R>G, B>G, R+B > 1.2·G, and |R-B| <= 5·tol.
//     The 5× tolerance scaling is inherited from the collision tooling this
//     engine replaces and is preserved as-is: it is a heuristic, not a
//     distance metric, and downstream maps were authored against it.
func Matches(pixel, target RGB, mode MatchMode, tolerance float64) bool {
	switch mode {
	case MatchChannel:
		return channelDiff(pixel.R, target.R) <= tolerance &&
			channelDiff(pixel.G, target.G) <= tolerance &&
			channelDiff(pixel.B, target.B) <= tolerance

	case MatchEuclidean:
		p := colorful.Color{R: float64(pixel.R) / 255.0, G: float64(pixel.G) / 255.0, B: float64(pixel.B) / 255.0}
		t := colorful.Color{R: float64(target.R) / 255.0, G: float64(target.G) / 255.0, B: float64(target.B) / 255.0}
		return p.DistanceRgb(t) <= tolerance/255.0

	case MatchPink:
		r, g, b := float64(pixel.R), float64(pixel.G), float64(pixel.B)
		return r > 60 &&
			b > 60 &&
			r > g &&
			b > g &&
			(r+b) > 1.2*g &&
			channelDiff(pixel.R, pixel.B) <= 5*tolerance

	default:
		return false
	}
}

// channelDiff returns |a-b| as a float64 for tolerance comparison.
func channelDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

// pixelRGB reads the RGB channels of the pixel at raster-relative (x, y).
// Coordinates must be in bounds.
func pixelRGB(img *image.NRGBA, x, y int) RGB {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// pixelAlpha reads the alpha channel of the pixel at raster-relative (x, y).
func pixelAlpha(img *image.NRGBA, x, y int) uint8 {
	return img.Pix[img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)+3]
}
