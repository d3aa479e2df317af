package scratch

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems. Constructors wrap them in a
// *ConfigError, so callers match with errors.Is.
var (
	// ErrInvalidDimensions is returned for a surface whose width or height
	// is not positive.
	ErrInvalidDimensions = errors.New("scratch: invalid surface dimensions")

	// ErrInvalidThreshold is returned for a reveal threshold outside (0, 100].
	ErrInvalidThreshold = errors.New("scratch: threshold must be in (0, 100]")

	// ErrInvalidRadius is returned for a brush radius that is not a positive
	// finite number.
	ErrInvalidRadius = errors.New("scratch: brush radius must be positive")

	// ErrNilRaster is returned when a tracker is constructed without a surface.
	ErrNilRaster = errors.New("scratch: nil raster")
)

// ConfigError reports an invalid construction parameter.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v (%s=%v)", e.Err, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }
