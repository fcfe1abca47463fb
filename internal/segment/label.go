package segment

import (
	"fmt"
	"image"
)

// Connectivity selects which neighbors a flood fill may cross.
type Connectivity int

const (
	// Conn4 connects a pixel to its horizontal and vertical neighbors only.
	// Used for background and collision segmentation.
	Conn4 Connectivity = iota

	// Conn8 also connects diagonal neighbors. Used by the high-tolerance
	// collision grouping and by silhouette boundary detection.
	Conn8
)

// String returns the flag-friendly name of the connectivity.
func (c Connectivity) String() string {
	switch c {
	case Conn4:
		return "4"
	case Conn8:
		return "8"
	default:
		return fmt.Sprintf("Connectivity(%d)", int(c))
	}
}

var (
	offsets4 = [4]image.Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	offsets8 = [8]image.Point{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// Component is one connected region of predicate-matching pixels.
type Component struct {
	// ID is the discovery index within a single Label call (0-based,
	// row-major scan order of the seed pixels).
	ID int `json:"id"`

	// Seed is the first pixel of the component in scan order.
	Seed image.Point `json:"seed"`

	// Color is the raster color at the seed pixel, used as the
	// representative color of the region.
	Color RGB `json:"color"`

	// Pixels are all coordinates belonging to the component. Order is an
	// artifact of traversal; membership is what matters.
	Pixels []image.Point `json:"-"`

	// Size is len(Pixels).
	Size int `json:"size"`
}

// Predicate decides whether the pixel at raster-relative (x, y) belongs to
// the region family being labeled. It must be pure with respect to the
// raster: labeling does not mutate pixels, so a predicate backed by the
// raster sees stable values for the whole pass.
type Predicate func(x, y int) bool

// visitedMask is a flat W×H grid recording which pixels a labeling pass has
// already claimed. One mask exists per pass and is discarded with it; a flat
// slice indexed y*w+x avoids per-row allocation and keeps the hot loop cache
// friendly.
type visitedMask struct {
	bits []bool
	w    int
}

func newVisitedMask(w, h int) *visitedMask {
	return &visitedMask{bits: make([]bool, w*h), w: w}
}

func (m *visitedMask) get(x, y int) bool { return m.bits[y*m.w+x] }
func (m *visitedMask) set(x, y int)      { m.bits[y*m.w+x] = true }

// Label scans the raster in row-major order and groups every
// predicate-matching pixel into connected components.
//
// Each unvisited matching pixel seeds an iterative flood fill over the chosen
// connectivity. The fill uses an explicit stack rather than recursion: sprite
// and map images routinely produce regions hundreds of thousands of pixels
// deep, far beyond safe call-stack growth.
//
// Guarantees:
//
//   - Components are pairwise disjoint and their union is exactly the set of
//     predicate-true pixels.
//   - The same raster and predicate always produce the same components with
//     the same membership; discovery order is the row-major order of seeds.
//   - Out-of-bounds coordinates never enter a component.
//
// A raster with no matching pixels yields an empty slice; a fully matching
// raster yields one component covering the whole raster.
func Label(img *image.NRGBA, pred Predicate, conn Connectivity) []Component {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	visited := newVisitedMask(w, h)

	var comps []Component
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited.get(x, y) || !pred(x, y) {
				continue
			}
			pixels := floodFill(x, y, w, h, visited, pred, conn)
			comps = append(comps, Component{
				ID:     len(comps),
				Seed:   image.Pt(x, y),
				Color:  pixelRGB(img, x, y),
				Pixels: pixels,
				Size:   len(pixels),
			})
		}
	}
	return comps
}

// LabelLargest is a bookkeeping-light variant of Label for callers that only
// ever want the biggest region (single-background removal). It keeps the
// coordinate set of the current best component and discards the rest as the
// scan proceeds, so peak memory is bounded by the largest region instead of
// the whole matching set.
//
// Returns false if no pixel matched the predicate. Ties are broken by scan
// order: the first component to reach the maximum size wins.
func LabelLargest(img *image.NRGBA, pred Predicate, conn Connectivity) (Component, bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	visited := newVisitedMask(w, h)

	var best Component
	found := false
	n := 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited.get(x, y) || !pred(x, y) {
				continue
			}
			pixels := floodFill(x, y, w, h, visited, pred, conn)
			if !found || len(pixels) > best.Size {
				best = Component{
					ID:     n,
					Seed:   image.Pt(x, y),
					Color:  pixelRGB(img, x, y),
					Pixels: pixels,
					Size:   len(pixels),
				}
				found = true
			}
			n++
		}
	}
	return best, found
}

// floodFill claims every unvisited predicate-true pixel connected to
// (startX, startY) and returns their coordinates. Pixels are marked visited
// exactly once; bounds are checked before a neighbor is ever pushed.
func floodFill(startX, startY, w, h int, visited *visitedMask, pred Predicate, conn Connectivity) []image.Point {
	offsets := offsets4[:]
	if conn == Conn8 {
		offsets = offsets8[:]
	}

	stack := []image.Point{{X: startX, Y: startY}}
	var pixels []image.Point

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited.get(p.X, p.Y) || !pred(p.X, p.Y) {
			continue
		}
		visited.set(p.X, p.Y)
		pixels = append(pixels, p)

		for _, d := range offsets {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h || visited.get(nx, ny) {
				continue
			}
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}
	return pixels
}
