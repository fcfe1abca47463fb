package segment

import (
	"image"
	"testing"
)

// predMatch builds a predicate matching the raster against a target color.
func predMatch(img *image.NRGBA, target RGB, tol float64) Predicate {
	return func(x, y int) bool {
		return Matches(pixelRGB(img, x, y), target, MatchChannel, tol)
	}
}

func TestLabelUniformRaster(t *testing.T) {
	c := RGB{R: 250, G: 250, B: 250}
	img := newRaster(7, 5, c, 255)

	comps := Label(img, predMatch(img, c, 0), Conn4)

	if len(comps) != 1 {
		t.Fatalf("got %d components, want 1", len(comps))
	}
	if comps[0].Size != 35 {
		t.Errorf("size = %d, want W×H = 35", comps[0].Size)
	}
	if comps[0].Color != c {
		t.Errorf("representative color = %v, want %v", comps[0].Color, c)
	}
	if comps[0].Seed != image.Pt(0, 0) {
		t.Errorf("seed = %v, want (0,0)", comps[0].Seed)
	}
}

func TestLabelNoMatches(t *testing.T) {
	img := newRaster(4, 4, RGB{R: 10, G: 10, B: 10}, 255)

	comps := Label(img, predMatch(img, RGB{250, 250, 250}, 5), Conn4)

	if len(comps) != 0 {
		t.Fatalf("got %d components, want none", len(comps))
	}
}

func TestLabelDisjointCover(t *testing.T) {
	// Stripes of the target color separated by non-matching columns.
	target := RGB{R: 255, G: 0, B: 0}
	other := RGB{R: 0, G: 0, B: 255}
	img := newRaster(9, 6, other, 255)
	for y := 0; y < 6; y++ {
		for _, x := range []int{0, 1, 4, 7, 8} {
			setPixel(img, x, y, target, 255)
		}
	}

	pred := predMatch(img, target, 0)
	comps := Label(img, pred, Conn4)

	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3 stripes", len(comps))
	}

	seen := make(map[image.Point]int)
	total := 0
	for _, c := range comps {
		if c.Size != len(c.Pixels) {
			t.Errorf("component %d: Size %d != len(Pixels) %d", c.ID, c.Size, len(c.Pixels))
		}
		for _, p := range c.Pixels {
			seen[p]++
			if !pred(p.X, p.Y) {
				t.Errorf("component %d contains non-matching pixel %v", c.ID, p)
			}
		}
		total += c.Size
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("pixel %v claimed by %d components, want exactly 1", p, n)
		}
	}

	want := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			if pred(x, y) {
				want++
			}
		}
	}
	if total != want {
		t.Errorf("union covers %d pixels, want all %d matching pixels", total, want)
	}
}

func TestLabelDeterministic(t *testing.T) {
	target := RGB{R: 200, G: 20, B: 20}
	img := newRaster(8, 8, RGB{}, 255)
	for _, p := range []image.Point{{1, 1}, {2, 1}, {1, 2}, {5, 5}, {6, 5}, {0, 7}} {
		setPixel(img, p.X, p.Y, target, 255)
	}

	first := Label(img, predMatch(img, target, 0), Conn4)
	second := Label(img, predMatch(img, target, 0), Conn4)

	if len(first) != len(second) {
		t.Fatalf("runs disagree on component count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Seed != second[i].Seed || first[i].Size != second[i].Size {
			t.Errorf("component %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLabelConnectivity(t *testing.T) {
	// Two diagonal pixels: separate under 4-connectivity, one region
	// under 8-connectivity.
	target := RGB{R: 255, G: 255, B: 255}
	img := newRaster(2, 2, RGB{}, 255)
	setPixel(img, 0, 0, target, 255)
	setPixel(img, 1, 1, target, 255)

	if got := Label(img, predMatch(img, target, 0), Conn4); len(got) != 2 {
		t.Errorf("Conn4: got %d components, want 2", len(got))
	}
	if got := Label(img, predMatch(img, target, 0), Conn8); len(got) != 1 {
		t.Errorf("Conn8: got %d components, want 1", len(got))
	}
}

func TestLabelAlphaAwarePredicate(t *testing.T) {
	// 4×4 raster of one color with two transparent pixels at (0,0) and
	// (0,1); a predicate requiring opacity plus a channel match yields a
	// single 14-pixel component.
	c := RGB{R: 255, G: 0, B: 255}
	img := newRaster(4, 4, c, 255)
	setPixel(img, 0, 0, c, 0)
	setPixel(img, 0, 1, c, 0)

	pred := func(x, y int) bool {
		return pixelAlpha(img, x, y) > 0 && Matches(pixelRGB(img, x, y), c, MatchChannel, 0)
	}

	comps := Label(img, pred, Conn4)
	if len(comps) != 1 {
		t.Fatalf("got %d components, want 1", len(comps))
	}
	if comps[0].Size != 14 {
		t.Errorf("size = %d, want 14", comps[0].Size)
	}
}

func TestLabelLargest(t *testing.T) {
	target := RGB{R: 240, G: 240, B: 240}
	img := newRaster(10, 3, RGB{}, 255)
	// A 2-pixel region and a 5-pixel region.
	setPixel(img, 0, 0, target, 255)
	setPixel(img, 1, 0, target, 255)
	for x := 4; x < 9; x++ {
		setPixel(img, x, 2, target, 255)
	}

	best, ok := LabelLargest(img, predMatch(img, target, 0), Conn4)
	if !ok {
		t.Fatal("LabelLargest found nothing")
	}
	if best.Size != 5 {
		t.Errorf("size = %d, want the 5-pixel region", best.Size)
	}
	if best.Seed != image.Pt(4, 2) {
		t.Errorf("seed = %v, want (4,2)", best.Seed)
	}

	if _, ok := LabelLargest(img, func(x, y int) bool { return false }, Conn4); ok {
		t.Error("LabelLargest should report no match for an all-false predicate")
	}
}

func TestLabelLargestTieBreak(t *testing.T) {
	target := RGB{R: 1, G: 2, B: 3}
	img := newRaster(5, 1, RGB{}, 255)
	// Two regions of equal size; the first in scan order must win.
	setPixel(img, 0, 0, target, 255)
	setPixel(img, 1, 0, target, 255)
	setPixel(img, 3, 0, target, 255)
	setPixel(img, 4, 0, target, 255)

	best, ok := LabelLargest(img, predMatch(img, target, 0), Conn4)
	if !ok {
		t.Fatal("LabelLargest found nothing")
	}
	if best.Seed != image.Pt(0, 0) {
		t.Errorf("seed = %v, want the first-encountered region at (0,0)", best.Seed)
	}
}
