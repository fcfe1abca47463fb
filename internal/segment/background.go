package segment

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// SampleStrategy selects how the pipeline infers a background color when the
// caller did not provide one explicitly.
type SampleStrategy int

const (
	// SampleCorners clusters the four corner pixels and takes the largest
	// cluster as the background. This is the default and matches how the
	// sprite tools have always behaved.
	SampleCorners SampleStrategy = iota

	// SampleDominant takes the single most dominant color of the whole image.
	// Useful for sprites whose subject touches one or more corners.
	SampleDominant
)

// BackgroundEstimate is the result of background color inference.
type BackgroundEstimate struct {
	// Color is the inferred background color.
	Color RGB `json:"color"`

	// Agreement is how many of the four corners fell into the winning
	// cluster (1-4). Zero when the estimate did not come from corner
	// sampling (SampleDominant).
	Agreement int `json:"agreement"`

	// Tolerance is the channel tolerance that produced the agreement. The
	// sampler widens the requested tolerance once (to 2×) if fewer than
	// three corners agree at the original value.
	Tolerance float64 `json:"tolerance"`

	// Ambiguous is set when corner agreement could not be raised above 1/4
	// even after widening. The estimate is still usable (best effort), but
	// callers should surface a warning.
	Ambiguous bool `json:"ambiguous"`
}

// EstimateBackground infers the background color of a raster from its four
// corner pixels.
//
// The corners are read in top-left, top-right, bottom-left, bottom-right
// order (alpha ignored) and greedily clustered: each corner joins the first
// cluster whose representative — its first member — matches within the given
// channel tolerance, otherwise it starts a new cluster. The largest cluster
// wins, ties broken by formation order, and its color is the integer-truncated
// per-channel average of its members.
//
// If the winning cluster holds fewer than three corners, the clustering is
// repeated at twice the tolerance, and the wider result is adopted only when
// it strictly grows the winning cluster. This keeps three near-identical but
// not-quite-matching corners from being treated as three separate backgrounds,
// without letting an unrelated corner color drag the average when widening
// gains nothing.
func EstimateBackground(img *image.NRGBA, tolerance float64) BackgroundEstimate {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	corners := []RGB{
		pixelRGB(img, 0, 0),
		pixelRGB(img, w-1, 0),
		pixelRGB(img, 0, h-1),
		pixelRGB(img, w-1, h-1),
	}

	winner := clusterCorners(corners, tolerance)
	used := tolerance

	if len(winner) < 3 {
		wide := clusterCorners(corners, tolerance*2)
		if len(wide) > len(winner) {
			winner = wide
			used = tolerance * 2
		}
	}

	return BackgroundEstimate{
		Color:     averageRGB(winner),
		Agreement: len(winner),
		Tolerance: used,
		Ambiguous: len(winner) <= 1,
	}
}

// EstimateDominant infers the background as the most dominant color of the
// whole image. Corner agreement does not apply; Agreement is reported as 0.
func EstimateDominant(img image.Image) BackgroundEstimate {
	c := dominantcolor.Find(img)
	return BackgroundEstimate{
		Color: RGB{R: c.R, G: c.G, B: c.B},
	}
}

// clusterCorners greedily clusters the corner colors at the given tolerance
// and returns the largest cluster (first formed wins ties).
func clusterCorners(corners []RGB, tolerance float64) []RGB {
	var groups [][]RGB

	for _, c := range corners {
		placed := false
		for i := range groups {
			if Matches(c, groups[i][0], MatchChannel, tolerance) {
				groups[i] = append(groups[i], c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []RGB{c})
		}
	}

	best := groups[0]
	for _, g := range groups[1:] {
		if len(g) > len(best) {
			best = g
		}
	}
	return best
}

// averageRGB returns the integer-truncated per-channel mean of the colors.
func averageRGB(colors []RGB) RGB {
	if len(colors) == 1 {
		return colors[0]
	}
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(colors)
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}
