package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it gets a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
				So(manager.Registry(), ShouldNotPointTo, Default().Registry())
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names use the namespace and subsystem", func() {
				manager.RecordLineRead()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_test_subsystem_lines_read_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording intake metrics", func() {
			m.RecordLineRead()
			m.RecordLineRead()
			m.RecordLineRejected("invalid_email")
			m.RecordHeaderSkipped()

			Convey("Then counters reflect the calls", func() {
				So(testutil.ToFloat64(m.linesRead), ShouldEqual, 2)
				So(testutil.ToFloat64(m.linesRejected.WithLabelValues("invalid_email")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.headersSkipped), ShouldEqual, 1)
			})
		})

		Convey("When recording pool and report metrics", func() {
			m.RecordDuplicatesCollapsed(2)
			m.RecordDuplicatesCollapsed(0)
			m.UpdatePoolSize(4)
			m.RecordAdjustments("bonus", 2)
			m.RecordAdjustments("penalty", 0)
			m.UpdateReport(3, 8.5)
			m.RecordRun(ResultSuccess)
			m.RecordStageDuration("parse", 1.5)

			Convey("Then gauges hold the last values", func() {
				So(testutil.ToFloat64(m.duplicatesCollapsed), ShouldEqual, 2)
				So(testutil.ToFloat64(m.poolSize), ShouldEqual, 4)
				So(testutil.ToFloat64(m.adjustments.WithLabelValues("bonus")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.topCount), ShouldEqual, 3)
				So(testutil.ToFloat64(m.averageScore), ShouldEqual, 8.5)
				So(testutil.ToFloat64(m.runs.WithLabelValues(ResultSuccess)), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.stageDuration), ShouldEqual, 1)
			})
		})

		Convey("When asking for the default manager", func() {
			Convey("Then the same manager is returned every time", func() {
				So(Default(), ShouldNotBeNil)
				So(Default(), ShouldPointTo, Default())
				So(Default().Registry(), ShouldNotPointTo, m.Registry())
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false))
		m.RecordLineRead()
		m.UpdatePoolSize(7)

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(m.linesRead), ShouldEqual, 0)
			So(testutil.ToFloat64(m.poolSize), ShouldEqual, 0)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded values", t, func() {
		m := NewManager()
		m.UpdatePoolSize(5)
		dir := t.TempDir()

		Convey("When writing to a textfile", func() {
			path := filepath.Join(dir, "applicants.prom")
			err := m.WriteTextfile(path)

			Convey("Then the file holds the exposition format", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "applicants_pipeline_pool_size 5")
			})
		})

		Convey("When the target directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(dir, "missing", "applicants.prom"))

			Convey("Then the export error is returned", func() {
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}
