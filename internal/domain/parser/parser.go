// Package parser turns raw submission lines into validated applicants.
//
// A line is `name,email,delivery_datetime,score`. Validation runs in a fixed
// order and stops at the first failure; the returned error names the reason.
// Rejections are a normal outcome, callers drop the line and move on.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okian/applicants/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Header is the column line optionally found at the top of an input file.
const Header = "name,email,delivery_datetime,score"

const (
	fieldCount   = 4
	minNameParts = 2
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.@_]*@[a-zA-Z0-9._]+[a-zA-Z]$`)
	scorePattern    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	deliveryPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})$`)

	minScore = decimal.Zero
	maxScore = decimal.NewFromInt(10)
)

// IsHeader reports whether line is the column header.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, Header)
}

// Parse validates one data line.
func Parse(line string) (model.Applicant, error) {
	fields := splitFields(line)
	if len(fields) != fieldCount {
		return model.Applicant{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = trim(fields[i])
	}
	name, email, deliveryText, scoreText := fields[0], fields[1], fields[2], fields[3]

	if !ValidEmail(email) {
		return model.Applicant{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	delivery, err := ParseDelivery(deliveryText)
	if err != nil {
		return model.Applicant{}, err
	}

	score, err := ParseScore(scoreText)
	if err != nil {
		return model.Applicant{}, err
	}

	if len(model.NameTokens(name)) < minNameParts {
		return model.Applicant{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return model.NewApplicant(name, email, delivery, score), nil
}

// ValidEmail checks the accepted email grammar: a leading letter, then
// letters, digits, '.', '_' with exactly one '@', ending in a letter.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email) && strings.Count(email, "@") == 1
}

// ParseDelivery parses YYYY-MM-DDTHH:MM:SS.
//
// Resolution is lenient in two places: a day past the end of its month is
// moved to the month's last day (2023-02-30 -> 2023-02-28), and 24:00:00 is
// midnight of the following day.
func ParseDelivery(text string) (time.Time, error) {
	m := deliveryPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDelivery, text)
	}

	var n [6]int
	for i := range n {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDelivery, text, err)
		}
		n[i] = v
	}
	year, month, day, hour, minute, second := n[0], n[1], n[2], n[3], n[4], n[5]

	switch {
	case year < 1,
		month < 1 || month > 12,
		day < 1 || day > 31,
		minute > 59,
		second > 59,
		hour > 24,
		hour == 24 && (minute != 0 || second != 0):
		return time.Time{}, fmt.Errorf("%w: %q: field out of range", ErrInvalidDelivery, text)
	}

	if last := daysIn(time.Month(month), year); day > last {
		day = last
	}

	// time.Date normalizes hour 24 into the next day.
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}

// ParseScore accepts an unsigned integer or decimal with up to two fraction
// digits in [0, 10].
func ParseScore(text string) (float64, error) {
	if !scorePattern.MatchString(text) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScoreFormat, text)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidScoreFormat, text, err)
	}
	if d.LessThan(minScore) || d.GreaterThan(maxScore) {
		return 0, fmt.Errorf("%w: %s", ErrScoreOutOfRange, text)
	}

	f, _ := d.Float64()
	return f, nil
}

// splitFields splits on commas and drops trailing empty fields, so
// "a,b,c,d,," yields four fields.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// trim removes spaces and control characters from both ends.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
