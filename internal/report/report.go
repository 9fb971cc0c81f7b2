// Package report aggregates an adjusted applicant pool into the summary
// report and renders it in its fixed JSON shape.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/okian/applicants/internal/domain/model"
	"github.com/okian/applicants/internal/domain/ranking"
	"github.com/okian/applicants/internal/domain/types"
)

const averagePlaces = 2

// Aggregate builds the report for an adjusted pool.
func Aggregate(pool []model.Applicant) types.Report {
	if len(pool) == 0 {
		return types.EmptyReport()
	}

	return types.Report{
		UniqueApplicants: len(pool),
		TopApplicants:    ranking.TopSurnames(pool, ranking.TopCount),
		AverageScore:     AverageRaw(ranking.TopHalf(pool)),
	}
}

// AverageRaw returns the mean raw score of applicants rounded half up to two
// decimals, or 0 when there are none. Raw scores carry at most two decimals,
// so the sum is exact and only the final division rounds.
func AverageRaw(applicants []model.Applicant) float64 {
	if len(applicants) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, a := range applicants {
		sum = sum.Add(decimal.NewFromFloat(a.RawScore))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(applicants)))).Round(averagePlaces).Float64()
	return avg
}
