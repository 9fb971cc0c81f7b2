// Package model contains domain models passed between layers.
package model

import (
	"cmp"
	"regexp"
	"time"
)

// nameSeparator matches the whitespace runs that split a full name into tokens.
var nameSeparator = regexp.MustCompile(`[ \t\n\x0B\f\r]+`)

// Applicant is one validated submission line.
type Applicant struct {
	FullName      string    // trimmed, at least two tokens
	Email         string    // identity key for deduplication
	Delivery      time.Time // wall-clock delivery time, second precision, UTC carrier
	RawScore      float64   // as submitted, within [0, 10]
	AdjustedScore float64   // RawScore until the adjuster runs
}

// NewApplicant builds an applicant whose adjusted score starts at the raw score.
func NewApplicant(fullName, email string, delivery time.Time, score float64) Applicant {
	return Applicant{
		FullName:      fullName,
		Email:         email,
		Delivery:      delivery,
		RawScore:      score,
		AdjustedScore: score,
	}
}

// NameTokens splits a full name on whitespace runs.
func NameTokens(fullName string) []string {
	return nameSeparator.Split(fullName, -1)
}

// Surname returns the last whitespace-separated token of the full name.
func (a Applicant) Surname() string {
	tokens := NameTokens(a.FullName)
	return tokens[len(tokens)-1]
}

// DeliveryDate returns the calendar date of the delivery.
func (a Applicant) DeliveryDate() Date {
	return DateOf(a.Delivery)
}

// SecondOfDay returns the delivery time of day in seconds since midnight.
func (a Applicant) SecondOfDay() int {
	h, m, s := a.Delivery.Clock()
	return h*3600 + m*60 + s
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmp.Compare(d.Year, o.Year)
	case d.Month != o.Month:
		return cmp.Compare(int(d.Month), int(o.Month))
	default:
		return cmp.Compare(d.Day, o.Day)
	}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}
