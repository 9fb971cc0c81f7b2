package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the applicants command", t, func() {
		dir := t.TempDir()
		in := filepath.Join(dir, "input.csv")
		out := filepath.Join(dir, "result.json")
		convey.So(os.WriteFile(in, []byte(strings.Join([]string{
			"name,email,delivery_datetime,score",
			"Ana Pop,ana@mail.com,2024-05-10T09:00:00,9",
			"Dan Ion,dan@mail.com,2024-05-11T14:00:00,7",
		}, "\n")+"\n"), 0o600), convey.ShouldBeNil)

		convey.Convey("When no input path is given", func() {
			stdout, _, err := execute()

			convey.Convey("Then it asks for one and exits cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldStartWith, missingInputMessage+"\n")
				convey.So(stdout, convey.ShouldContainSubstring, "Usage:")
			})
		})

		convey.Convey("When processing a valid file", func() {
			stdout, _, err := execute(in, "-o", out)

			convey.Convey("Then the report is written and its path printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldEqual, "Result saved to "+out+"\n")
				data, readErr := os.ReadFile(out)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual,
					`{"uniqueApplicants": 2, "topApplicants": ["Pop","Ion"], "averageScore": 9.00}`)
			})
		})

		convey.Convey("When the input file is missing", func() {
			stdout, stderr, err := execute(filepath.Join(dir, "missing.csv"), "--output", out)

			convey.Convey("Then the error is reported on stderr and nothing is written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldBeEmpty)
				convey.So(stderr, convey.ShouldContainSubstring, processErrorPrefix)
				_, statErr := os.Stat(out)
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a config file sets the output path", func() {
			cfgPath := filepath.Join(dir, "config.yaml")
			fromConfig := filepath.Join(dir, "from-config.json")
			convey.So(os.WriteFile(cfgPath, []byte("output_path: "+fromConfig+"\nlog_level: error\n"), 0o600), convey.ShouldBeNil)

			stdout, _, err := execute(in, "--config", cfgPath)

			convey.Convey("Then the configured path is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldEqual, "Result saved to "+fromConfig+"\n")
				_, statErr := os.Stat(fromConfig)
				convey.So(statErr, convey.ShouldBeNil)
			})

			convey.Convey("And the output flag still wins", func() {
				stdout, _, err := execute(in, "--config", cfgPath, "-o", out)
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldEqual, "Result saved to "+out+"\n")
			})
		})

		convey.Convey("When the config file is invalid", func() {
			cfgPath := filepath.Join(dir, "bad.yaml")
			convey.So(os.WriteFile(cfgPath, []byte("log_format: xml\n"), 0o600), convey.ShouldBeNil)

			stdout, stderr, err := execute(in, "--config", cfgPath)

			convey.Convey("Then the config error is reported", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldBeEmpty)
				convey.So(stderr, convey.ShouldContainSubstring, "failed to load config")
			})
		})

		convey.Convey("When the log level is unknown", func() {
			stdout, stderr, err := execute(in, "-o", out, "--log-level", "loud")

			convey.Convey("Then it falls back and still processes the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldEqual, "Result saved to "+out+"\n")
				convey.So(stderr, convey.ShouldContainSubstring, "invalid log_level")
			})
		})

		convey.Convey("When an unknown flag is passed", func() {
			_, _, err := execute(in, "--bogus")

			convey.Convey("Then cobra rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
