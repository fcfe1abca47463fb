package segment

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// ActionKind identifies what the compositor does to selected pixels.
type ActionKind int

const (
	// MakeTransparent zeroes the alpha channel and leaves RGB untouched.
	// Applying it twice is the same as applying it once.
	MakeTransparent ActionKind = iota

	// FillSolid overwrites RGB with a fixed color and leaves alpha untouched.
	FillSolid
)

// Action is a compositing operation over the selected components.
type Action struct {
	Kind ActionKind `json:"kind"`
	Fill RGB        `json:"fill"` // only meaningful for FillSolid
}

// Transparent returns the alpha punch-out action.
func Transparent() Action { return Action{Kind: MakeTransparent} }

// Solid returns the solid-fill action with the given color.
func Solid(c RGB) Action { return Action{Kind: FillSolid, Fill: c} }

// String returns the flag-friendly name of the action.
func (a Action) String() string {
	switch a.Kind {
	case MakeTransparent:
		return "transparent"
	case FillSolid:
		return fmt.Sprintf("fill(%s)", a.Fill.Hex())
	default:
		return fmt.Sprintf("Action(%d)", int(a.Kind))
	}
}

// Apply mutates the raster in place for every pixel in the given components
// and returns the number of pixels written.
//
// Component coordinate sets come from the labeler, which guarantees they are
// in-bounds and pairwise disjoint; Apply relies on both. Disjointness is what
// makes the per-component parallel apply race-free: no two goroutines ever
// touch the same pixel.
func Apply(img *image.NRGBA, comps []Component, act Action) int {
	parallel.Line(len(comps), func(start, end int) {
		for i := start; i < end; i++ {
			applyOne(img, &comps[i], act)
		}
	})

	affected := 0
	for i := range comps {
		affected += comps[i].Size
	}
	return affected
}

// ApplyCopy is the copy-on-write variant of Apply: the original raster is
// left untouched and the mutated clone is returned alongside the pixel count.
func ApplyCopy(img *image.NRGBA, comps []Component, act Action) (*image.NRGBA, int) {
	out := imaging.Clone(img)
	return out, Apply(out, comps, act)
}

func applyOne(img *image.NRGBA, c *Component, act Action) {
	minX, minY := img.Rect.Min.X, img.Rect.Min.Y
	for _, p := range c.Pixels {
		i := img.PixOffset(minX+p.X, minY+p.Y)
		switch act.Kind {
		case MakeTransparent:
			img.Pix[i+3] = 0
		case FillSolid:
			img.Pix[i] = act.Fill.R
			img.Pix[i+1] = act.Fill.G
			img.Pix[i+2] = act.Fill.B
		}
	}
}
