package dataset

import "github.com/juju/errors"

var (
	// ErrUnknownIdentifier reports a build-phase record referencing an identifier
	// that was never registered by Fit or FitPartial.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrInvalidConfig reports an unrecognized build option or a malformed value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsUnknownIdentifier reports whether err was caused by an unregistered identifier.
func IsUnknownIdentifier(err error) bool {
	return errors.Is(err, ErrUnknownIdentifier)
}

// IsInvalidConfig reports whether err was caused by a rejected build option.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
