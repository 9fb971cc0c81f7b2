package sampledata

import (
	"fmt"
	"time"
)

// Default generator settings.
const (
	DefaultLines          = 10000
	DefaultDuplicateRatio = 0.1
	DefaultInvalidRatio   = 0.05
	DefaultDays           = 3
	DefaultSeed           = 1
)

// Config holds configuration for one generated file.
type Config struct {
	Lines          int       // Data lines to write, header excluded
	DuplicateRatio float64   // Share of lines re-submitting an earlier email
	InvalidRatio   float64   // Share of lines failing validation
	Days           int       // Calendar days the deliveries span
	Start          time.Time // First delivery day
	Seed           int64     // RNG seed; equal seeds give equal files
	Header         bool      // Write the column header first
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		Lines:          DefaultLines,
		DuplicateRatio: DefaultDuplicateRatio,
		InvalidRatio:   DefaultInvalidRatio,
		Days:           DefaultDays,
		Start:          time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		Seed:           DefaultSeed,
		Header:         true,
	}
}

// Validate checks that the ratios and counts are usable.
func (c Config) Validate() error {
	switch {
	case c.Lines < 0:
		return fmt.Errorf("%w: lines must not be negative, got %d", ErrInvalidConfig, c.Lines)
	case c.Days < 1:
		return fmt.Errorf("%w: days must be at least 1, got %d", ErrInvalidConfig, c.Days)
	case c.DuplicateRatio < 0 || c.InvalidRatio < 0:
		return fmt.Errorf("%w: ratios must not be negative", ErrInvalidConfig)
	case c.DuplicateRatio+c.InvalidRatio > 1:
		return fmt.Errorf("%w: duplicate and invalid ratios add up to more than 1", ErrInvalidConfig)
	}
	return nil
}

// Stats describes what Generate wrote.
type Stats struct {
	Lines      int            // Data lines written
	Valid      int            // Lines that pass validation
	Duplicates int            // Valid lines reusing an earlier email
	Unique     int            // Distinct emails among valid lines
	Invalid    int            // Lines that fail validation
	ByReason   map[string]int // Invalid lines per rejection reason
}
