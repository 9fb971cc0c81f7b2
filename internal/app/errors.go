package service

import "errors"

var (
	// ErrReadInput is returned when the input file cannot be opened or read.
	ErrReadInput = errors.New("read input")

	// ErrMalformedInput is wrapped by ErrReadInput when the input is not valid UTF-8.
	ErrMalformedInput = errors.New("input is not valid UTF-8")

	// ErrWriteReport is returned when the report cannot be written.
	ErrWriteReport = errors.New("write report")
)
