package sampledata

import "errors"

var (
	// ErrInvalidConfig is returned for a Config that cannot be generated.
	ErrInvalidConfig = errors.New("invalid generator config")

	// ErrWrite is returned when the output cannot be written.
	ErrWrite = errors.New("write sample data")
)
