// Package scoring applies the delivery-window adjustment to applicant scores.
//
// The window spans the earliest and latest delivery dates in the pool.
// Deliveries on the first day earn a bonus point at any time of day;
// deliveries in the afternoon of the last day lose a point. A pool whose
// deliveries all fall on one date is left untouched.
package scoring

import (
	"github.com/okian/applicants/internal/domain/model"
)

// Adjustment rule constants.
const (
	earlyBonus  = 1.0
	latePenalty = 1.0
	// lastMorningEnd is 11:59:59 in seconds since midnight; the penalty
	// applies strictly after it.
	lastMorningEnd = 11*3600 + 59*60 + 59
)

// Outcome names the adjustment branch applied to one applicant.
type Outcome int

// Possible outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeBonus
	OutcomePenalty
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeBonus:
		return "bonus"
	case OutcomePenalty:
		return "penalty"
	default:
		return "none"
	}
}

// Window is the adjustment window of a pool.
type Window struct {
	First model.Date
	Last  model.Date
}

// NewWindow computes the window of pool. ok is false for an empty pool.
func NewWindow(pool []model.Applicant) (w Window, ok bool) {
	if len(pool) == 0 {
		return Window{}, false
	}
	w.First = pool[0].DeliveryDate()
	w.Last = w.First
	for _, a := range pool[1:] {
		d := a.DeliveryDate()
		if d.Before(w.First) {
			w.First = d
		}
		if d.After(w.Last) {
			w.Last = d
		}
	}
	return w, true
}

// SingleDay reports whether every delivery fell on the same date.
func (w Window) SingleDay() bool {
	return w.First == w.Last
}

// Outcome returns the branch that applies to a. Bonus and penalty are
// exclusive: a date can only equal both ends on a single-day window.
func (w Window) Outcome(a model.Applicant) Outcome {
	if w.SingleDay() {
		return OutcomeNone
	}
	d := a.DeliveryDate()
	switch {
	case d == w.First:
		return OutcomeBonus
	case d == w.Last && a.SecondOfDay() > lastMorningEnd:
		return OutcomePenalty
	default:
		return OutcomeNone
	}
}

// Summary counts applicants per outcome.
type Summary struct {
	Window    Window
	Bonus     int
	Penalty   int
	Unchanged int
}

// Adjust sets AdjustedScore on every applicant of pool in place, starting from
// the raw score each time so repeated calls give the same result. Scores are
// not clamped.
func Adjust(pool []model.Applicant) Summary {
	w, ok := NewWindow(pool)
	if !ok {
		return Summary{}
	}

	s := Summary{Window: w}
	for i := range pool {
		a := &pool[i]
		switch w.Outcome(*a) {
		case OutcomeBonus:
			a.AdjustedScore = a.RawScore + earlyBonus
			s.Bonus++
		case OutcomePenalty:
			a.AdjustedScore = a.RawScore - latePenalty
			s.Penalty++
		default:
			a.AdjustedScore = a.RawScore
			s.Unchanged++
		}
	}
	return s
}
