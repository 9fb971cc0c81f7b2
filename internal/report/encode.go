package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/okian/applicants/internal/domain/types"
)

// emptyJSON is written verbatim for an empty pool. Its bare 0 differs from the
// two-decimal rendering of every other report and consumers rely on it.
const emptyJSON = `{"uniqueApplicants": 0, "topApplicants": [], "averageScore": 0}`

// Encode renders r as
//
//	{"uniqueApplicants": N, "topApplicants": ["A","B"], "averageScore": X.XX}
//
// with a space after each top-level colon and comma, a compact name array and
// exactly two fraction digits.
func Encode(r types.Report) ([]byte, error) {
	if r.IsEmpty() {
		return []byte(emptyJSON), nil
	}

	names, err := encodeNames(r.TopApplicants)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"uniqueApplicants": %d, "topApplicants": %s, "averageScore": %s}`,
		r.UniqueApplicants, names, strconv.FormatFloat(r.AverageScore, 'f', 2, 64))
	return buf.Bytes(), nil
}

// htmlEscapes complements encoding/json, which already escapes <, > and &.
var htmlEscapes = []struct {
	from, to []byte
}{
	{[]byte("="), []byte(`\u003d`)},
	{[]byte("'"), []byte(`\u0027`)},
}

// encodeNames renders a compact JSON string array with HTML-sensitive
// characters escaped as \u00XX.
func encodeNames(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	out, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("encode top applicants: %w", err)
	}
	for _, e := range htmlEscapes {
		out = bytes.ReplaceAll(out, e.from, e.to)
	}
	return out, nil
}
