// Package sampledata writes synthetic applicant files for load runs and
// tests. Output is fully determined by the configured seed.
package sampledata

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okian/applicants/internal/domain/parser"
	"github.com/okian/applicants/pkg/logger"
)

const (
	deliveryLayout = "2006-01-02T15:04:05"
	secondsPerDay  = 24 * 60 * 60
	emailIDLength  = 12
	emailDomain    = "example.com"
)

// Score bands, as min and width.
const (
	avgPerformerMin     = 3.0
	avgPerformerRange   = 4.0
	highPerformerMin    = 7.0
	highPerformerRange  = 2.0
	lowPerformerMin     = 0.1
	lowPerformerRange   = 2.9
	elitePerformerMin   = 9.0
	elitePerformerRange = 1.0
	veryLowMin          = 0.1
	veryLowRange        = 0.9
	midPerformerMin     = 6.0
	midPerformerRange   = 2.0
	goodPerformerMin    = 2.0
	goodPerformerRange  = 2.0
	wideRangeMin        = 0.0
	wideRange           = 10.0
	performerBands      = 8
)

var (
	firstNames = []string{"Ana", "Ion", "Maria", "Dan", "Elena", "Mihai", "Ioana", "Andrei", "Sofia", "Radu"}
	lastNames  = []string{"Popescu", "Ionescu", "Dumitrescu", "Stan", "Constantin", "Lupu", "Marin", "Tudor", "Rusu", "Neagu"}
)

// corruption turns a valid line's fields into one that fails for a
// specific reason.
type corruption struct {
	err   error
	apply func(name, email, delivery, score string) string
}

var corruptions = []corruption{
	{parser.ErrFieldCount, func(name, email, delivery, _ string) string {
		return join(name, email, delivery)
	}},
	{parser.ErrInvalidEmail, func(name, email, delivery, score string) string {
		return join(name, "1"+email, delivery, score)
	}},
	{parser.ErrInvalidDelivery, func(name, email, delivery, score string) string {
		return join(name, email, strings.Replace(delivery, "T", " ", 1), score)
	}},
	{parser.ErrInvalidScoreFormat, func(name, email, delivery, _ string) string {
		return join(name, email, delivery, "8.125")
	}},
	{parser.ErrScoreOutOfRange, func(name, email, delivery, _ string) string {
		return join(name, email, delivery, "10.5")
	}},
	{parser.ErrInvalidName, func(name, email, delivery, score string) string {
		return join(strings.Fields(name)[0], email, delivery, score)
	}},
}

type submission struct {
	name  string
	email string
}

// Generate writes cfg.Lines applicant lines to w.
func Generate(ctx context.Context, cfg Config, w io.Writer) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible test data
	bw := bufio.NewWriter(w)
	stats := Stats{ByReason: make(map[string]int)}
	var seen []submission

	logger.Get().Info(ctx, "generating applicants",
		logger.Int("lines", cfg.Lines),
		logger.Float64("duplicateRatio", cfg.DuplicateRatio),
		logger.Float64("invalidRatio", cfg.InvalidRatio),
	)

	if cfg.Header {
		if _, err := fmt.Fprintln(bw, parser.Header); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	for i := 0; i < cfg.Lines; i++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("context cancelled during generation: %w", err)
		}

		delivery := generateDelivery(rng, cfg)
		score := generateScore(rng)

		var line string
		roll := rng.Float64()
		switch {
		case roll < cfg.InvalidRatio:
			sub, err := newSubmission(rng)
			if err != nil {
				return stats, err
			}
			c := corruptions[rng.Intn(len(corruptions))]
			line = c.apply(sub.name, sub.email, delivery, score)
			stats.Invalid++
			stats.ByReason[parser.Reason(c.err)]++
		case roll < cfg.InvalidRatio+cfg.DuplicateRatio && len(seen) > 0:
			sub := seen[rng.Intn(len(seen))]
			line = join(sub.name, sub.email, delivery, score)
			stats.Valid++
			stats.Duplicates++
		default:
			sub, err := newSubmission(rng)
			if err != nil {
				return stats, err
			}
			seen = append(seen, sub)
			line = join(sub.name, sub.email, delivery, score)
			stats.Valid++
		}

		if _, err := fmt.Fprintln(bw, line); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		stats.Lines++
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	stats.Unique = len(seen)

	logger.Get().Info(ctx, "generated applicants",
		logger.Int("valid", stats.Valid),
		logger.Int("unique", stats.Unique),
		logger.Int("invalid", stats.Invalid),
	)
	return stats, nil
}

// newSubmission picks a name and derives a fresh email from a random UUID.
func newSubmission(rng *rand.Rand) (submission, error) {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return submission{}, fmt.Errorf("generate email id: %w", err)
	}
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	hex := strings.ReplaceAll(id.String(), "-", "")[:emailIDLength]
	return submission{
		name:  first + " " + last,
		email: strings.ToLower(first) + "." + strings.ToLower(last) + "_" + hex + "@" + emailDomain,
	}, nil
}

func generateDelivery(rng *rand.Rand, cfg Config) string {
	day := cfg.Start.AddDate(0, 0, rng.Intn(cfg.Days))
	t := day.Add(time.Duration(rng.Intn(secondsPerDay)) * time.Second)
	return t.Format(deliveryLayout)
}

// generateScore draws from one of several performer bands and renders the
// value with at most two decimals.
func generateScore(rng *rand.Rand) string {
	var v float64
	switch rng.Intn(performerBands) {
	case 0:
		v = avgPerformerMin + rng.Float64()*avgPerformerRange
	case 1:
		v = highPerformerMin + rng.Float64()*highPerformerRange
	case 2:
		v = lowPerformerMin + rng.Float64()*lowPerformerRange
	case 3:
		v = elitePerformerMin + rng.Float64()*elitePerformerRange
	case 4:
		v = veryLowMin + rng.Float64()*veryLowRange
	case 5:
		v = midPerformerMin + rng.Float64()*midPerformerRange
	case 6:
		v = goodPerformerMin + rng.Float64()*goodPerformerRange
	default:
		v = wideRangeMin + rng.Float64()*wideRange
	}
	d := decimal.NewFromFloat(v).Round(2)
	if d.GreaterThan(decimal.NewFromInt(10)) {
		d = decimal.NewFromInt(10)
	}
	return d.String()
}

func join(fields ...string) string {
	return strings.Join(fields, ",")
}
