// Package types contains common types used across the application
package types

// Report is the summary written for one input file.
type Report struct {
	UniqueApplicants int      `json:"uniqueApplicants"`
	TopApplicants    []string `json:"topApplicants"`
	AverageScore     float64  `json:"averageScore"`
}

// EmptyReport is the report for an input with no valid records.
func EmptyReport() Report {
	return Report{TopApplicants: []string{}}
}

// IsEmpty reports whether r describes an empty pool.
func (r Report) IsEmpty() bool {
	return r.UniqueApplicants == 0
}
