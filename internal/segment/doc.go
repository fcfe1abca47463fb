// Package segment implements the pixel-level background/foreground
// segmentation engine shared by the sprite preparation and collision-map
// tools.
//
// The engine operates on an in-memory *image.NRGBA raster owned by the caller
// and runs as a fixed pipeline of stages, each completing before the next:
//
//  1. Background sampling (optional): infer a background color from the four
//     corner pixels, or from the dominant image color.
//  2. Connected-component labeling: group predicate-matching pixels into
//     connected regions via iterative flood fill.
//  3. Region filtering: keep the single largest region, or every region above
//     a minimum pixel count.
//  4. Compositing: punch the selected regions transparent, or overwrite them
//     with a solid fill color.
//  5. Edge outlining (optional): stamp a fixed-radius stroke along the
//     silhouette boundary of the remaining opaque pixels.
//
// All stages mutate the raster in place; none retains a reference after
// returning. The engine performs no I/O. Decoding, saving, and batch
// orchestration live in internal/imaging and the cmd tools.
//
// # Coordinate System
//
// Pixel coordinates are 0-based and relative to the raster's bounds origin:
// (0,0) is the top-left pixel, X grows rightward, Y grows downward.
//
// # Error Handling
//
// Parameter problems are reported as *InvalidParameterError before any pixel
// is touched; a single-largest selection that finds no region of the required
// size is reported via the ErrNoQualifyingRegion sentinel so batch callers can
// skip and continue. An ambiguous background estimate is never an error: it is
// flagged on the BackgroundEstimate and surfaced as a report warning.
package segment
