// Package service runs the applicant pipeline: it reads an input file,
// validates and deduplicates its records, applies the date-window
// adjustment and writes the resulting report.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/applicants/internal/domain/dedupe"
	"github.com/okian/applicants/internal/domain/model"
	"github.com/okian/applicants/internal/domain/parser"
	"github.com/okian/applicants/internal/domain/scoring"
	"github.com/okian/applicants/internal/domain/types"
	"github.com/okian/applicants/internal/report"
	"github.com/okian/applicants/pkg/logger"
	"github.com/okian/applicants/pkg/metrics"
)

const (
	// DefaultOutputPath is where the report goes unless configured otherwise.
	DefaultOutputPath = "output.json"

	reportPerm = 0o644
)

// Stage names used for the stage duration histogram.
const (
	StageParse     = "parse"
	StageDedupe    = "dedupe"
	StageAdjust    = "adjust"
	StageAggregate = "aggregate"
)

// Service runs the pipeline for one input at a time. It holds no state
// between runs.
type Service struct {
	logger      logger.Logger
	metrics     *metrics.Manager
	outputPath  string
	metricsFile string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager runs are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithOutputPath sets the report destination.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithMetricsFile enables a Prometheus textfile export after each run.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// New constructs a Service. Without WithLogger the global logger is used,
// so logger.Init must have been called.
func New(opts ...Option) *Service {
	s := &Service{
		metrics:    metrics.Default(),
		outputPath: DefaultOutputPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("pipeline")
	}

	return s
}

// OutputPath returns where Run writes the report.
func (s *Service) OutputPath() string {
	return s.outputPath
}

// Run processes the file at inputPath and writes the encoded report to the
// output path. Nothing is written when the input cannot be read.
func (s *Service) Run(ctx context.Context, inputPath string) (types.Report, error) {
	log := s.runLogger()
	log.Info(ctx, "processing file", logger.String("input", inputPath), logger.String("output", s.outputPath))

	rep, err := s.run(ctx, log, inputPath)

	result := metrics.ResultSuccess
	switch {
	case err != nil:
		result = metrics.ResultFailed
		log.Error(ctx, "run failed", logger.Error(err))
	case rep.IsEmpty():
		result = metrics.ResultEmpty
	}
	s.metrics.RecordRun(result)
	s.exportMetrics(ctx, log)

	return rep, err
}

func (s *Service) run(ctx context.Context, log logger.Logger, inputPath string) (types.Report, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return types.Report{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer f.Close()

	rep, err := s.process(ctx, log, f)
	if err != nil {
		return types.Report{}, err
	}

	if err := s.write(rep); err != nil {
		return types.Report{}, err
	}
	log.Info(ctx, "report written",
		logger.String("output", s.outputPath),
		logger.Int("uniqueApplicants", rep.UniqueApplicants),
	)
	return rep, nil
}

// Process runs the pipeline over r and returns the report without writing it.
func (s *Service) Process(ctx context.Context, r io.Reader) (types.Report, error) {
	return s.process(ctx, s.runLogger(), r)
}

func (s *Service) process(ctx context.Context, log logger.Logger, r io.Reader) (types.Report, error) {
	start := time.Now()
	records, err := s.parse(ctx, log, r)
	if err != nil {
		return types.Report{}, err
	}
	s.observe(StageParse, start)

	start = time.Now()
	pool := s.dedupe(ctx, records)
	s.observe(StageDedupe, start)
	s.metrics.UpdatePoolSize(len(pool))

	start = time.Now()
	summary := scoring.Adjust(pool)
	s.observe(StageAdjust, start)
	s.metrics.RecordAdjustments(scoring.OutcomeBonus.String(), summary.Bonus)
	s.metrics.RecordAdjustments(scoring.OutcomePenalty.String(), summary.Penalty)
	s.metrics.RecordAdjustments(scoring.OutcomeNone.String(), summary.Unchanged)
	if len(pool) > 0 {
		log.Debug(ctx, "adjustment window",
			logger.String("first", summary.Window.First.String()),
			logger.String("last", summary.Window.Last.String()),
			logger.Int("bonus", summary.Bonus),
			logger.Int("penalty", summary.Penalty),
		)
	}

	start = time.Now()
	rep := report.Aggregate(pool)
	s.observe(StageAggregate, start)
	s.metrics.UpdateReport(len(rep.TopApplicants), rep.AverageScore)

	log.Info(ctx, "pipeline finished",
		logger.Int("records", len(records)),
		logger.Int("pool", len(pool)),
		logger.Float64("averageScore", rep.AverageScore),
	)
	return rep, nil
}

// parse reads every line of r and keeps the valid records in input order.
// A header is recognised on the first line only.
func (s *Service) parse(ctx context.Context, log logger.Logger, r io.Reader) ([]model.Applicant, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var records []model.Applicant
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.metrics.RecordLineRead()

		if i == 0 && parser.IsHeader(line) {
			s.metrics.RecordHeaderSkipped()
			continue
		}

		a, err := parser.Parse(line)
		if err != nil {
			reason := parser.Reason(err)
			s.metrics.RecordLineRejected(reason)
			log.Debug(ctx, "line rejected",
				logger.Int("line", i+1),
				logger.String("reason", reason),
				logger.Error(err),
			)
			continue
		}
		records = append(records, a)
	}
	return records, nil
}

func (s *Service) dedupe(ctx context.Context, records []model.Applicant) []model.Applicant {
	pool, replaced := dedupe.Collapse(ctx, records)
	s.metrics.RecordDuplicatesCollapsed(replaced)
	return pool
}

func (s *Service) write(rep types.Report) error {
	data, err := report.Encode(rep)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	if err := os.WriteFile(s.outputPath, data, reportPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteReport, err)
	}
	return nil
}

// exportMetrics writes the textfile when one is configured. A failed export
// is logged and does not fail the run.
func (s *Service) exportMetrics(ctx context.Context, log logger.Logger) {
	if s.metricsFile == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsFile); err != nil {
		log.Warn(ctx, "metrics export failed", logger.String("path", s.metricsFile), logger.Error(err))
	}
}

func (s *Service) observe(stage string, start time.Time) {
	s.metrics.RecordStageDuration(stage, float64(time.Since(start).Microseconds())/1000)
}

func (s *Service) runLogger() logger.Logger {
	return s.logger.With(logger.String("run_id", uuid.NewString()))
}
