// Package ranking derives the two report orderings from an applicant pool.
//
// View A ranks by adjusted score and feeds the top surnames. View B ranks by
// raw score and feeds the top-half average. Each view sorts its own copy, so
// neither depends on the other or on the pool's order.
package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/applicants/internal/domain/model"
)

// TopCount is how many surnames the report lists.
const TopCount = 3

// compareAdjusted orders a before b when it ranks higher in View A:
// adjusted desc, raw desc, delivery asc, email asc.
func compareAdjusted(a, b model.Applicant) int {
	if c := cmp.Compare(b.AdjustedScore, a.AdjustedScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.RawScore, a.RawScore); c != 0 {
		return c
	}
	if c := a.Delivery.Compare(b.Delivery); c != 0 {
		return c
	}
	return strings.Compare(a.Email, b.Email)
}

// compareRaw orders by raw score desc. Email asc breaks ties only to make
// the order reproducible; it cannot change the average.
func compareRaw(a, b model.Applicant) int {
	if c := cmp.Compare(b.RawScore, a.RawScore); c != 0 {
		return c
	}
	return strings.Compare(a.Email, b.Email)
}

// ByAdjusted returns a copy of pool in View A order.
func ByAdjusted(pool []model.Applicant) []model.Applicant {
	out := slices.Clone(pool)
	slices.SortFunc(out, compareAdjusted)
	return out
}

// ByRaw returns a copy of pool in View B order.
func ByRaw(pool []model.Applicant) []model.Applicant {
	out := slices.Clone(pool)
	slices.SortFunc(out, compareRaw)
	return out
}

// TopSurnames returns the surnames of the first n applicants in View A order,
// or of all of them when the pool is smaller.
func TopSurnames(pool []model.Applicant, n int) []string {
	ranked := ByAdjusted(pool)
	if n < len(ranked) {
		ranked = ranked[:max(n, 0)]
	}
	out := make([]string, len(ranked))
	for i, a := range ranked {
		out[i] = a.Surname()
	}
	return out
}

// HalfCount returns ceil(size/2).
func HalfCount(size int) int {
	return (size + 1) / 2
}

// TopHalf returns the first HalfCount(len(pool)) applicants in View B order.
func TopHalf(pool []model.Applicant) []model.Applicant {
	return ByRaw(pool)[:HalfCount(len(pool))]
}
