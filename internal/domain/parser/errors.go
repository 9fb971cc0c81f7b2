package parser

import "errors"

// Sentinel kinds for rejected lines, in validation order.
var (
	ErrFieldCount         = errors.New("line must have exactly 4 fields")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidDelivery    = errors.New("invalid delivery datetime")
	ErrInvalidScoreFormat = errors.New("invalid score format")
	ErrScoreOutOfRange    = errors.New("score out of range")
	ErrInvalidName        = errors.New("name needs a first name and a surname")
)

// Reason returns a short, stable label for a rejection error, suitable for
// metric labels and log fields.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFieldCount):
		return "field_count"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, ErrInvalidDelivery):
		return "invalid_delivery"
	case errors.Is(err, ErrInvalidScoreFormat):
		return "invalid_score_format"
	case errors.Is(err, ErrScoreOutOfRange):
		return "score_out_of_range"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	default:
		return "unknown"
	}
}
