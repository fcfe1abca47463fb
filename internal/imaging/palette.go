package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects the palette extraction algorithm.
type PaletteMethod int

const (
	// PaletteDominant ranks quantized colors by coverage weight.
	PaletteDominant PaletteMethod = iota

	// PaletteKMeans partitions subsampled pixels into k clusters and takes
	// the cluster centers. Slower, but groups gradients better.
	PaletteKMeans
)

// String returns the flag-friendly name of the method.
func (m PaletteMethod) String() string {
	switch m {
	case PaletteKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// PaletteEntry is one palette color with its approximate image coverage.
type PaletteEntry struct {
	Hex    string  `json:"hex"`    // "#RRGGBB"
	Weight float64 `json:"weight"` // fraction of sampled pixels, 0-1
}

// ExtractPalette extracts the k most representative colors of an image,
// ordered darkest to brightest. Transparent pixels are ignored by the kmeans
// path. Used by the sprite tools for report output only; segmentation never
// depends on the palette.
func ExtractPalette(img image.Image, k int, method PaletteMethod) ([]PaletteEntry, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be > 0, got %d", k)
	}

	var entries []PaletteEntry
	switch method {
	case PaletteKMeans:
		var err error
		entries, err = kmeansPalette(img, k)
		if err != nil {
			return nil, err
		}
	default:
		entries = dominantPalette(img, k)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return luminance(entries[i].Hex) < luminance(entries[j].Hex)
	})
	return entries, nil
}

func dominantPalette(img image.Image, k int) []PaletteEntry {
	found := dominantcolor.FindWeight(img, k)
	entries := make([]PaletteEntry, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		entries = append(entries, PaletteEntry{Hex: col.Hex(), Weight: c.Weight})
	}
	return entries
}

func kmeansPalette(img image.Image, k int) ([]PaletteEntry, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Subsample to keep partitioning tractable on large sprites.
	const maxSamples = 10000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(bl) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("no opaque pixels to build a palette from")
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition failed: %w", err)
	}

	entries := make([]PaletteEntry, 0, len(cc))
	for _, cluster := range cc {
		center := cluster.Center
		col := colorful.Color{R: center[0], G: center[1], B: center[2]}.Clamped()
		entries = append(entries, PaletteEntry{
			Hex:    col.Hex(),
			Weight: float64(len(cluster.Observations)) / float64(len(dataset)),
		})
	}
	return entries, nil
}

// luminance returns the linear luminance of a hex color, used only for the
// dark-to-bright palette ordering. Unparseable strings sort first.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return -1
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
