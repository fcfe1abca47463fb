// Package imaging holds the file-facing collaborators around the
// segmentation engine: loading and caching rasters, saving results,
// sprite geometry preparation, shared-crop trimming, and palette reports.
//
// Everything here normalizes to *image.NRGBA with zero-origin bounds before
// handing rasters to internal/segment, and nothing here inspects pixels for
// segmentation purposes — the engine owns all of that.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The free functions are stateless;
// concurrent calls on distinct images need no synchronization, while
// operations mutating the same raster must be serialized by the caller.
package imaging
