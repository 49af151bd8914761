package grid

import "errors"

var (
	// ErrConfiguration is returned for dimensions, densities or counts that cannot produce a layout.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvariantViolation means the generator produced an inconsistent graph. It is a bug, not a runtime condition.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrFormat is returned by Read for text that is not a layout.
	ErrFormat = errors.New("malformed layout text")
)
