// Command collisionmap turns an authored map key image into a clean collision
// map for the game.
//
// Two modes exist:
//
//   - walkable: finds every region matching the walkable key color (high
//     tolerance, 8-connected) and repaints those regions onto a black canvas,
//     producing a forgiving collision map that tolerates compression noise.
//   - anti: finds every sufficiently large pink-ish region and solidifies it
//     with a fill color, for anti-collision map authoring.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/WhyILived/sprite-tools/internal/imaging"
	"github.com/WhyILived/sprite-tools/internal/segment"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		in          = flag.String("in", "", "input map key image")
		out         = flag.String("out", "", "output collision map (default: <in>_processed.png)")
		mode        = flag.String("mode", "walkable", "processing mode: walkable or anti")
		walkableHex = flag.String("walkable", "#EA00F9", "walkable key color (walkable mode)")
		fillHex     = flag.String("fill", "#FFFFFF", "solid fill color (anti mode)")
		tolerance   = flag.Float64("tolerance", 80, "color match tolerance")
		match       = flag.String("match", "euclidean", "color matching: channel, euclidean or pink")
		minPixels   = flag.Int("min-pixels", 50, "minimum region size in pixels")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("collisionmap %s (commit %s)\n", Version, GitCommit)
		return
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "collisionmap: -in is required")
		flag.Usage()
		os.Exit(2)
	}
	outPath := *out
	if outPath == "" {
		outPath = defaultOutput(*in)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := log.WithFields(logrus.Fields{"in": *in, "out": outPath, "mode": *mode})

	img, err := imaging.LoadNRGBA(*in)
	if err != nil {
		entry.WithError(err).Fatal("failed to load input")
	}

	var result *image.NRGBA
	switch *mode {
	case "walkable":
		result, err = walkableMap(img, *walkableHex, *match, *tolerance, *minPixels, entry)
	case "anti":
		result, err = antiCollisionMap(img, *fillHex, *tolerance, *minPixels, entry)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		entry.WithError(err).Fatal("processing failed")
	}

	if err := imaging.Save(result, outPath); err != nil {
		entry.WithError(err).Fatal("failed to save output")
	}
	entry.Info("saved collision map")
}

// walkableMap repaints every qualifying walkable region onto a fresh black
// canvas. Regions are matched against the key color with the configured
// tolerance and grouped 8-connected, so diagonal corridors stay joined.
func walkableMap(img *image.NRGBA, walkableHex, match string, tolerance float64, minPixels int, log *logrus.Entry) (*image.NRGBA, error) {
	walkable, err := segment.ParseHex(walkableHex)
	if err != nil {
		return nil, err
	}
	matchMode, err := parseMatch(match)
	if err != nil {
		return nil, err
	}
	if tolerance < 0 {
		return nil, &segment.InvalidParameterError{Param: "tolerance", Reason: "must be >= 0"}
	}

	comps := segment.Label(img, func(x, y int) bool {
		return segment.Matches(pixelAt(img, x, y), walkable, matchMode, tolerance)
	}, segment.Conn8)
	selected := segment.FilterComponents(comps, minPixels, segment.AllAboveThreshold)

	// Fresh canvas: NRGBA zero value is transparent black; force it opaque.
	canvas := image.NewNRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	for i := 3; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i] = 0xFF
	}
	painted := segment.Apply(canvas, selected, segment.Solid(walkable))

	total := img.Rect.Dx() * img.Rect.Dy()
	log.WithFields(logrus.Fields{
		"groups_found":    len(comps),
		"groups_kept":     len(selected),
		"walkable_pixels": painted,
		"coverage_pct":    fmt.Sprintf("%.1f", float64(painted)/float64(total)*100),
	}).Info("walkable regions grouped")

	return canvas, nil
}

// antiCollisionMap solidifies every pink region of at least minPixels with
// the fill color, leaving the rest of the map untouched.
func antiCollisionMap(img *image.NRGBA, fillHex string, tolerance float64, minPixels int, log *logrus.Entry) (*image.NRGBA, error) {
	fill, err := segment.ParseHex(fillHex)
	if err != nil {
		return nil, err
	}

	report, err := segment.Run(img, segment.Config{
		Tolerance: tolerance,
		MinPixels: minPixels,
		Mode:      segment.AllAboveThreshold,
		Action:    segment.Solid(fill),
		Match:     segment.MatchPink,
	})
	if err != nil {
		return nil, err
	}
	if len(report.SelectedSizes) == 0 {
		log.WithField("min_pixels", minPixels).Warn("no pink groups above threshold")
	}

	log.WithFields(logrus.Fields{
		"groups_found":      report.ComponentsFound,
		"groups_kept":       len(report.SelectedSizes),
		"pixels_solidified": report.PixelsAffected,
	}).Info("pink regions solidified")

	return img, nil
}

func parseMatch(s string) (segment.MatchMode, error) {
	switch s {
	case "channel":
		return segment.MatchChannel, nil
	case "euclidean":
		return segment.MatchEuclidean, nil
	case "pink":
		return segment.MatchPink, nil
	default:
		return 0, fmt.Errorf("unknown match mode %q", s)
	}
}

func pixelAt(img *image.NRGBA, x, y int) segment.RGB {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return segment.RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

func defaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + "_processed.png"
}
