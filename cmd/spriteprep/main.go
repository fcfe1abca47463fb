// Command spriteprep prepares generated character sprites for the game:
// aspect-ratio crop, nearest-neighbor downscale, background removal with
// tolerance-based segmentation, and a silhouette cleanup stroke.
//
// It processes a single file or every PNG in a directory. Images whose
// background cannot be isolated are skipped with a warning so batch runs
// keep going.
package main

import (
	"errors"
	"flag"
	"fmt"
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
		in          = flag.String("in", "", "input image file or directory")
		out         = flag.String("out", "", "output file or directory (default: alongside input with _processed suffix)")
		width       = flag.Int("width", imaging.DefaultPrepSpec.Width, "target sprite width")
		height      = flag.Int("height", imaging.DefaultPrepSpec.Height, "target sprite height")
		noPrep      = flag.Bool("no-prep", false, "skip the crop/downscale step")
		bgHex       = flag.String("bg", "", "explicit background color as #RRGGBB (default: auto-sample)")
		sampling    = flag.String("sample", "corners", "background sampling strategy: corners or dominant")
		tolerance   = flag.Float64("tolerance", 10, "color match tolerance (0-255 channel units)")
		minPixels   = flag.Int("min-pixels", 0, "minimum region size in pixels")
		mode        = flag.String("mode", "all-above-threshold", "region selection: single-largest or all-above-threshold")
		outlineR    = flag.Int("outline", 2, "outline stroke radius (0 disables)")
		outlineHex  = flag.String("outline-color", "#000000", "outline stroke color")
		paletteK    = flag.Int("palette", 0, "report the N dominant colors of each result (0 disables)")
		paletteMeth = flag.String("palette-method", "dominant", "palette extraction: dominant or kmeans")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("spriteprep %s (commit %s)\n", Version, GitCommit)
		return
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "spriteprep: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := buildConfig(*bgHex, *sampling, *tolerance, *minPixels, *mode, *outlineR, *outlineHex)
	if err != nil {
		log.WithError(err).Fatal("invalid flags")
	}

	prep := &imaging.PrepSpec{Width: *width, Height: *height}
	if *noPrep {
		prep = nil
	}

	inputs, err := collectInputs(*in)
	if err != nil {
		log.WithError(err).Fatal("failed to list inputs")
	}

	failed := 0
	for _, path := range inputs {
		outPath := outputPath(path, *in, *out)
		entry := log.WithFields(logrus.Fields{"in": path, "out": outPath})
		if err := processOne(path, outPath, prep, cfg, *paletteK, *paletteMeth, entry); err != nil {
			if errors.Is(err, segment.ErrNoQualifyingRegion) {
				entry.WithError(err).Warn("skipped: no qualifying background region")
				continue
			}
			entry.WithError(err).Error("failed")
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// buildConfig translates CLI flags into a pipeline configuration.
func buildConfig(bgHex, sampling string, tolerance float64, minPixels int, mode string, outlineR int, outlineHex string) (segment.Config, error) {
	cfg := segment.Config{
		Tolerance: tolerance,
		MinPixels: minPixels,
		Action:    segment.Transparent(),
		Match:     segment.MatchChannel,
	}

	switch mode {
	case "single-largest":
		cfg.Mode = segment.SingleLargest
	case "all-above-threshold":
		cfg.Mode = segment.AllAboveThreshold
	default:
		return cfg, fmt.Errorf("unknown mode %q", mode)
	}

	switch sampling {
	case "corners":
		cfg.Sampling = segment.SampleCorners
	case "dominant":
		cfg.Sampling = segment.SampleDominant
	default:
		return cfg, fmt.Errorf("unknown sampling strategy %q", sampling)
	}

	if bgHex != "" {
		c, err := segment.ParseHex(bgHex)
		if err != nil {
			return cfg, err
		}
		cfg.TargetColor = &c
	}

	if outlineR > 0 {
		c, err := segment.ParseHex(outlineHex)
		if err != nil {
			return cfg, err
		}
		cfg.Outline = &segment.OutlineSpec{Radius: outlineR, Color: c}
	}

	return cfg, nil
}

// processOne runs the full prep + segmentation pipeline on a single sprite.
func processOne(inPath, outPath string, prep *imaging.PrepSpec, cfg segment.Config, paletteK int, paletteMeth string, log *logrus.Entry) error {
	img, err := imaging.LoadNRGBA(inPath)
	if err != nil {
		return err
	}

	if prep != nil {
		img, err = imaging.Prep(img, *prep)
		if err != nil {
			return err
		}
	}

	report, err := segment.Run(img, cfg)
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"components":      report.ComponentsFound,
		"pixels_affected": report.PixelsAffected,
	}
	if report.Background != nil {
		fields["background"] = report.Background.Color.Hex()
		fields["agreement"] = report.Background.Agreement
	}
	if report.BoundaryPixels > 0 {
		fields["boundary_pixels"] = report.BoundaryPixels
	}
	if report.Warning != "" {
		log.WithFields(fields).Warn(report.Warning)
	}

	if paletteK > 0 {
		method := imaging.PaletteDominant
		if paletteMeth == "kmeans" {
			method = imaging.PaletteKMeans
		}
		if palette, perr := imaging.ExtractPalette(img, paletteK, method); perr == nil {
			hexes := make([]string, len(palette))
			for i, p := range palette {
				hexes[i] = p.Hex
			}
			fields["palette"] = strings.Join(hexes, ",")
		} else {
			log.WithError(perr).Warn("palette extraction failed")
		}
	}

	if err := imaging.Save(img, outPath); err != nil {
		return err
	}
	log.WithFields(fields).Info("processed")
	return nil
}

// collectInputs returns the PNGs to process: the file itself, or every .png
// directly inside the directory.
func collectInputs(in string) ([]string, error) {
	stat, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return []string{in}, nil
	}

	entries, err := os.ReadDir(in)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		paths = append(paths, filepath.Join(in, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .png files in %s", in)
	}
	return paths, nil
}

// outputPath decides where one result goes: the explicit -out file for single
// inputs, inside the -out directory for batch runs, or next to the input with
// a _processed suffix when -out is empty.
func outputPath(inPath, in, out string) string {
	if out == "" {
		ext := filepath.Ext(inPath)
		return strings.TrimSuffix(inPath, ext) + "_processed" + ext
	}
	stat, err := os.Stat(in)
	if err == nil && stat.IsDir() {
		return filepath.Join(out, filepath.Base(inPath))
	}
	return out
}
