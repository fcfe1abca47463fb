package segment

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// OutlineSpec describes a silhouette stroke: its width in pixels (Chebyshev
// metric) and its color.
type OutlineSpec struct {
	Radius int `json:"radius"`
	Color  RGB `json:"color"`
}

// Outline stamps a solid stroke along the silhouette boundary of the raster's
// opaque pixels and returns the number of boundary pixels found.
//
// The pass runs in two strictly separated phases:
//
//  1. Boundary detection: a pixel is a boundary pixel iff its own alpha is
//     greater than zero and at least one of its in-bounds 8-neighbors has
//     alpha zero. All boundary pixels are collected into a snapshot first.
//  2. Dilation: for every snapshotted boundary pixel, every in-bounds offset
//     (dx, dy) with max(|dx|,|dy|) < Radius whose pixel currently has alpha
//     greater than zero is overwritten with the stroke color at full opacity.
//
// The snapshot is what keeps the stroke stable: painting while still
// detecting would let freshly painted opaque pixels seed new boundaries and
// cascade the stroke across the whole silhouette.
//
// The strict < Radius test excludes the outermost ring of the (2·Radius+1)²
// window, so the stroke is Radius pixels wide, not Radius+1. A Radius of zero
// therefore paints nothing. Pixels whose alpha is already zero are never
// altered, and nothing is ever painted outside the raster.
func Outline(img *image.NRGBA, spec OutlineSpec) int {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	minX, minY := img.Rect.Min.X, img.Rect.Min.Y

	// Phase 1: snapshot boundary pixels. Rows are independent read-only
	// scans, so they shard cleanly; per-row buckets keep the final list in
	// deterministic row-major order.
	rows := make([][]image.Point, h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				if pixelAlpha(img, x, y) == 0 {
					continue
				}
				if hasTransparentNeighbor(img, x, y, w, h) {
					rows[y] = append(rows[y], image.Pt(x, y))
				}
			}
		}
	})

	boundary := 0
	for _, row := range rows {
		boundary += len(row)
	}

	// Phase 2: paint. Windows of nearby boundary pixels overlap, so this
	// stays sequential; every write is the same color either way, but the
	// snapshot order makes the sequential form the obviously correct one.
	for _, row := range rows {
		for _, p := range row {
			for dy := -spec.Radius; dy <= spec.Radius; dy++ {
				for dx := -spec.Radius; dx <= spec.Radius; dx++ {
					if chebyshev(dx, dy) >= spec.Radius {
						continue
					}
					nx, ny := p.X+dx, p.Y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					i := img.PixOffset(minX+nx, minY+ny)
					if img.Pix[i+3] == 0 {
						continue
					}
					img.Pix[i] = spec.Color.R
					img.Pix[i+1] = spec.Color.G
					img.Pix[i+2] = spec.Color.B
					img.Pix[i+3] = 0xFF
				}
			}
		}
	}

	return boundary
}

// hasTransparentNeighbor reports whether any in-bounds 8-neighbor of (x, y)
// has alpha zero. Out-of-bounds neighbors do not count as transparent: a
// fully opaque raster has no silhouette.
func hasTransparentNeighbor(img *image.NRGBA, x, y, w, h int) bool {
	for _, d := range offsets8 {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		if pixelAlpha(img, nx, ny) == 0 {
			return true
		}
	}
	return false
}

// chebyshev returns max(|dx|, |dy|).
func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
