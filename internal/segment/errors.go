package segment

import (
	"errors"
	"fmt"
)

// ErrNoQualifyingRegion is returned by the pipeline when single-largest
// selection found no component of at least the configured minimum size.
//
// It is recoverable by design: batch tools should detect it with errors.Is
// and skip the image rather than abort the run. The raster is left untouched.
var ErrNoQualifyingRegion = errors.New("no qualifying region")

// InvalidParameterError reports a configuration value that can never produce
// a valid run, such as a negative tolerance or a minimum pixel count larger
// than the raster itself.
//
// It is always detected before any traversal begins; the raster is never
// partially mutated on an InvalidParameterError.
type InvalidParameterError struct {
	Param  string // name of the offending parameter
	Reason string // human-readable explanation
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// invalidParam builds an *InvalidParameterError with a formatted reason.
func invalidParam(param, format string, args ...interface{}) error {
	return &InvalidParameterError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
