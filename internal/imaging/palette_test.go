package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// hexNear reports whether a palette hex is within tol channel units of a
// reference color. Both extraction methods quantize, so exact equality is
// too strict to assert on.
func hexNear(t *testing.T, hex string, want color.NRGBA, tol float64) bool {
	t.Helper()
	c, err := colorful.Hex(hex)
	if err != nil {
		t.Fatalf("palette produced unparseable hex %q: %v", hex, err)
	}
	return math.Abs(c.R*255-float64(want.R)) <= tol &&
		math.Abs(c.G*255-float64(want.G)) <= tol &&
		math.Abs(c.B*255-float64(want.B)) <= tol
}

func twoBandImage(dark, bright color.NRGBA) *image.NRGBA {
	img := newTestNRGBA(40, 40, dark)
	fillRect(img, image.Rect(20, 0, 40, 40), bright)
	return img
}

func TestExtractPaletteTwoColors(t *testing.T) {
	dark := color.NRGBA{R: 20, G: 20, B: 60, A: 255}
	bright := color.NRGBA{R: 230, G: 220, B: 210, A: 255}

	for _, method := range []PaletteMethod{PaletteDominant, PaletteKMeans} {
		t.Run(method.String(), func(t *testing.T) {
			entries, err := ExtractPalette(twoBandImage(dark, bright), 2, method)
			if err != nil {
				t.Fatalf("ExtractPalette failed: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("got %d entries, want 2", len(entries))
			}

			// Dark-to-bright ordering.
			if !hexNear(t, entries[0].Hex, dark, 25) {
				t.Errorf("first entry %q not near the dark band", entries[0].Hex)
			}
			if !hexNear(t, entries[1].Hex, bright, 25) {
				t.Errorf("second entry %q not near the bright band", entries[1].Hex)
			}

			total := 0.0
			for _, e := range entries {
				if e.Weight <= 0 {
					t.Errorf("entry %q has weight %g, want > 0", e.Hex, e.Weight)
				}
				total += e.Weight
			}
			if math.Abs(total-1) > 0.05 {
				t.Errorf("weights sum to %g, want ~1", total)
			}
		})
	}
}

func TestExtractPaletteKMeansSkipsTransparent(t *testing.T) {
	// Only the opaque band may contribute: a single cluster must land on
	// its color, not get dragged toward the transparent region's black.
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	fillRect(img, image.Rect(0, 0, 20, 40), color.NRGBA{R: 200, G: 50, B: 50, A: 255})

	entries, err := ExtractPalette(img, 1, PaletteKMeans)
	if err != nil {
		t.Fatalf("ExtractPalette failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !hexNear(t, entries[0].Hex, color.NRGBA{R: 200, G: 50, B: 50}, 10) {
		t.Errorf("entry %q not near the opaque band color", entries[0].Hex)
	}
}

func TestExtractPaletteRejectsBadInput(t *testing.T) {
	img := newTestNRGBA(4, 4, color.NRGBA{R: 10, A: 255})
	if _, err := ExtractPalette(img, 0, PaletteDominant); err == nil {
		t.Error("expected error for k = 0")
	}

	transparent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := ExtractPalette(transparent, 2, PaletteKMeans); err == nil {
		t.Error("expected error for a fully transparent image on the kmeans path")
	}
}
