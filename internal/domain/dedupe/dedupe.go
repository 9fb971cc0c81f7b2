// Package dedupe collapses submissions that share an identity key.
package dedupe

import (
	"context"

	"github.com/okian/applicants/internal/domain/model"
)

const defaultCapacity = 64

// Deduper keeps one applicant per email, the last one put.
type Deduper interface {
	// Put records a, replacing any earlier applicant with the same email.
	// Returns true if an earlier applicant was replaced.
	Put(ctx context.Context, a model.Applicant) bool

	// Pool returns a copy of the surviving applicants, ordered by the first
	// appearance of each email.
	Pool(ctx context.Context) []model.Applicant

	// Len returns the number of distinct emails seen.
	Len() int
}

// inMemoryDeduper is a map from email to slot in an insertion-ordered slice.
// Replacing keeps the slot, so the pool order never depends on map iteration.
type inMemoryDeduper struct {
	capacity int
	slots    map[string]int
	pool     []model.Applicant
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.slots = make(map[string]int, d.capacity)
	d.pool = make([]model.Applicant, 0, d.capacity)

	return d
}

// Put implements Deduper.
func (d *inMemoryDeduper) Put(_ context.Context, a model.Applicant) bool {
	if i, ok := d.slots[a.Email]; ok {
		d.pool[i] = a
		return true
	}
	d.slots[a.Email] = len(d.pool)
	d.pool = append(d.pool, a)
	return false
}

// Pool implements Deduper.
func (d *inMemoryDeduper) Pool(_ context.Context) []model.Applicant {
	out := make([]model.Applicant, len(d.pool))
	copy(out, d.pool)
	return out
}

// Len implements Deduper.
func (d *inMemoryDeduper) Len() int {
	return len(d.pool)
}

// Collapse runs records through a fresh deduper in order and returns the pool
// together with the number of records that replaced an earlier one.
func Collapse(ctx context.Context, records []model.Applicant) ([]model.Applicant, int) {
	d := NewInMemoryDeduper(WithCapacity(len(records)))
	replaced := 0
	for _, r := range records {
		if d.Put(ctx, r) {
			replaced++
		}
	}
	return d.Pool(ctx), replaced
}
