package segment

import (
	"fmt"
	"image"
)

// Config collects every tunable of the segmentation pipeline in one place.
// There is deliberately no module-level state: the same four-stage pipeline
// serves plain background removal, auto-sampled solid-background removal,
// high-tolerance collision grouping and anti-collision solidification purely
// through different Config values.
type Config struct {
	// Tolerance is the color-match tolerance, in 0-255 channel units.
	// Must be >= 0.
	Tolerance float64

	// MinPixels is the minimum component size to qualify. Must be >= 0, and
	// in SingleLargest mode must not exceed the raster's pixel count.
	MinPixels int

	// Mode selects single-largest or all-above-threshold filtering.
	Mode FilterMode

	// Action is what the compositor does to selected regions.
	Action Action

	// Match selects channel-box, Euclidean or pink-heuristic matching.
	Match MatchMode

	// TargetColor is the color to match. Nil means auto-sample the
	// background (ignored entirely by MatchPink, which is target-free).
	TargetColor *RGB

	// Sampling picks the auto-sample strategy when TargetColor is nil.
	Sampling SampleStrategy

	// Connectivity is the flood-fill neighborhood (default Conn4).
	Connectivity Connectivity

	// Outline, when non-nil, runs the silhouette stroke pass after
	// compositing. Its radius must be > 0; callers that want no outline
	// leave the field nil instead of passing a zero radius.
	Outline *OutlineSpec
}

// Report summarizes one pipeline run.
type Report struct {
	// ComponentsFound is how many connected regions matched the predicate,
	// before size filtering.
	ComponentsFound int `json:"components_found"`

	// SelectedSizes are the sizes of the regions that passed the filter,
	// largest first.
	SelectedSizes []int `json:"selected_sizes"`

	// PixelsAffected is the total number of pixels the compositor wrote.
	PixelsAffected int `json:"pixels_affected"`

	// Background is the inferred background estimate, present only when the
	// target color was auto-sampled.
	Background *BackgroundEstimate `json:"background,omitempty"`

	// BoundaryPixels is the silhouette boundary count from the outline
	// pass, zero when no outline was requested.
	BoundaryPixels int `json:"boundary_pixels,omitempty"`

	// Warning carries non-fatal conditions, currently only an ambiguous
	// background estimate.
	Warning string `json:"warning,omitempty"`
}

// Run executes the full segmentation pipeline on the raster, mutating it in
// place: optional background sampling, connected-component labeling, size
// filtering, compositing, and the optional outline pass.
//
// All parameters are validated before the first pixel is read; on an
// *InvalidParameterError the raster is guaranteed untouched. When
// single-largest selection comes up empty the raster is likewise untouched
// and the returned error wraps ErrNoQualifyingRegion, with the labeling
// statistics still available in the Report.
func Run(img *image.NRGBA, cfg Config) (*Report, error) {
	if err := validate(img, cfg); err != nil {
		return nil, err
	}

	report := &Report{}

	target := RGB{}
	if cfg.Match != MatchPink {
		if cfg.TargetColor != nil {
			target = *cfg.TargetColor
		} else {
			est := sampleBackground(img, cfg)
			report.Background = &est
			target = est.Color
			if est.Ambiguous {
				report.Warning = fmt.Sprintf(
					"ambiguous background: only %d/4 corners agreed at tolerance %.0f",
					est.Agreement, est.Tolerance)
			}
		}
	}

	pred := func(x, y int) bool {
		return Matches(pixelRGB(img, x, y), target, cfg.Match, cfg.Tolerance)
	}

	comps := Label(img, pred, cfg.Connectivity)
	report.ComponentsFound = len(comps)

	selected := FilterComponents(comps, cfg.MinPixels, cfg.Mode)
	report.SelectedSizes = make([]int, len(selected))
	for i := range selected {
		report.SelectedSizes[i] = selected[i].Size
	}

	if cfg.Mode == SingleLargest && len(selected) == 0 {
		return report, fmt.Errorf("%d components found, none of at least %d pixels: %w",
			len(comps), cfg.MinPixels, ErrNoQualifyingRegion)
	}

	report.PixelsAffected = Apply(img, selected, cfg.Action)

	if cfg.Outline != nil {
		report.BoundaryPixels = Outline(img, *cfg.Outline)
	}

	return report, nil
}

// sampleBackground dispatches on the configured sampling strategy.
func sampleBackground(img *image.NRGBA, cfg Config) BackgroundEstimate {
	if cfg.Sampling == SampleDominant {
		return EstimateDominant(img)
	}
	return EstimateBackground(img, cfg.Tolerance)
}

// validate fails fast on any parameter that can never produce a valid run.
// It reads no pixels, so a failure here implies an untouched raster.
func validate(img *image.NRGBA, cfg Config) error {
	if cfg.Tolerance < 0 {
		return invalidParam("tolerance", "must be >= 0, got %g", cfg.Tolerance)
	}
	if cfg.MinPixels < 0 {
		return invalidParam("min_pixels", "must be >= 0, got %d", cfg.MinPixels)
	}
	total := img.Rect.Dx() * img.Rect.Dy()
	if cfg.Mode == SingleLargest && cfg.MinPixels > total {
		return invalidParam("min_pixels",
			"%d exceeds the raster's %d pixels; single-largest can never be satisfied",
			cfg.MinPixels, total)
	}
	switch cfg.Mode {
	case SingleLargest, AllAboveThreshold:
	default:
		return invalidParam("mode", "unknown filter mode %d", int(cfg.Mode))
	}
	switch cfg.Match {
	case MatchChannel, MatchEuclidean, MatchPink:
	default:
		return invalidParam("match", "unknown match mode %d", int(cfg.Match))
	}
	switch cfg.Action.Kind {
	case MakeTransparent, FillSolid:
	default:
		return invalidParam("action", "unknown action %d", int(cfg.Action.Kind))
	}
	switch cfg.Connectivity {
	case Conn4, Conn8:
	default:
		return invalidParam("connectivity", "unknown connectivity %d", int(cfg.Connectivity))
	}
	if cfg.Outline != nil && cfg.Outline.Radius <= 0 {
		return invalidParam("outline.radius", "must be > 0, got %d", cfg.Outline.Radius)
	}
	return nil
}
