package logging_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/pkg/logging"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

const (
	testTime = "2019/05/15 01:01:01.000000"
)

func TestLogWithWriters(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "LogWithWriters", testLogWithWriters, spec.Report(report.Terminal{}))
}

func testLogWithWriters(t *testing.T, when spec.G, it spec.S) {
	var (
		logger         *logging.LogWithWriters
		outBuf, errBuf *bytes.Buffer
		fOut, fErr     io.Writer
		timeFmt        = "2006/01/02 15:04:05.000000"
		clockFunc      = func() time.Time {
			clock, _ := time.Parse(timeFmt, testTime)
			return clock
		}
	)

	it.Before(func() {
		outBuf, errBuf = &bytes.Buffer{}, &bytes.Buffer{}
		fOut, fErr = outBuf, errBuf
		logger = logging.NewLogWithWriters(fOut, fErr, logging.WithClock(clockFunc))
	})

	when("default", func() {
		it("has no time and is not verbose", func() {
			logger.Info("parsed Dockerfile")
			h.AssertEq(t, outBuf.String(), "parsed Dockerfile\n")
			h.AssertFalse(t, logger.IsVerbose())
		})

		it("drops debug messages", func() {
			logger.Debug("line 1: from")
			h.AssertEq(t, outBuf.String(), "")
		})

		it("prefixes warnings", func() {
			logger.Warnf("empty continuation line at %d", 3)
			h.AssertEq(t, outBuf.String(), "Warning: empty continuation line at 3\n")
		})

		it("sends errors to the error writer", func() {
			logger.Error("bad instruction")
			h.AssertEq(t, outBuf.String(), "")
			h.AssertEq(t, errBuf.String(), "ERROR: bad instruction\n")
		})
	})

	when("time is wanted", func() {
		it("prepends the clock time", func() {
			logger.WantTime(true)
			logger.Info("parsed Dockerfile")
			h.AssertEq(t, outBuf.String(), testTime+" parsed Dockerfile\n")
		})

		it("stamps every line of a multi-line message", func() {
			logger.WantTime(true)
			logger.Warn("first\nsecond")
			h.AssertEq(t, outBuf.String(), testTime+" Warning: first\n"+testTime+" second\n")
		})
	})

	when("verbose", func() {
		it("shows debug messages", func() {
			logger = logging.NewLogWithWriters(fOut, fErr, logging.WithVerbose(true))
			logger.Debugf("line %d: %s", 1, "from")
			h.AssertEq(t, outBuf.String(), "line 1: from\n")
			h.AssertTrue(t, logger.IsVerbose())
		})
	})

	when("quiet", func() {
		it.Before(func() {
			logger.WantQuiet(true)
		})

		it("drops info but keeps warnings", func() {
			logger.Info("parsed Dockerfile")
			logger.Warn("careful")
			h.AssertEq(t, outBuf.String(), "Warning: careful\n")
		})

		it("is reported as quiet", func() {
			h.AssertTrue(t, logging.IsQuiet(logger))
		})
	})

	when("#WriterForLevel", func() {
		it("discards writers below the logger level", func() {
			h.AssertTrue(t, logger.WriterForLevel(logging.DebugLevel) == io.Discard)
		})

		it("returns the error writer for errors", func() {
			_, _ = logger.WriterForLevel(logging.ErrorLevel).Write([]byte("boom"))
			h.AssertEq(t, errBuf.String(), "boom\n")
		})

		it("reports the bytes it was given", func() {
			n, err := logger.WriterForLevel(logging.InfoLevel).Write([]byte("no newline"))
			h.AssertNil(t, err)
			h.AssertEq(t, n, len("no newline"))
			h.AssertEq(t, outBuf.String(), "no newline\n")
		})
	})

	when("#PrefixedLogger", func() {
		it("tags every message", func() {
			prefixed := logging.PrefixedLogger(logger, "Dockerfile")
			prefixed.Infof("%d instructions", 4)
			h.AssertEq(t, outBuf.String(), "[Dockerfile] 4 instructions\n")
		})
	})
}
