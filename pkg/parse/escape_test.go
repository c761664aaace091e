package parse_test

import (
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/pkg/instruction"
	"github.com/buildpacks/dockerphile/pkg/parse"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

func TestScanEscapeDirective(t *testing.T) {
	spec.Run(t, "ScanEscapeDirective", testScanEscapeDirective, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testScanEscapeDirective(t *testing.T, when spec.G, it spec.S) {
	scan := func(src string) (*instruction.ESCAPE, error) {
		return parse.ScanEscapeDirective(strings.NewReader(src))
	}

	it("finds a directive on the first line", func() {
		esc, err := scan("# escape=`\nFROM mcr.microsoft.com/windows/servercore\n")
		h.AssertNil(t, err)
		h.AssertEq(t, esc, &instruction.ESCAPE{Char: '`'})
	})

	it("skips leading blank lines", func() {
		esc, err := scan("\n   \n#  ESCAPE = \\\nFROM alpine\n")
		h.AssertNil(t, err)
		h.AssertEq(t, esc, &instruction.ESCAPE{Char: '\\'})
	})

	it("ignores a directive after other lines", func() {
		esc, err := scan("# syntax=docker/dockerfile:1\n# escape=`\n")
		h.AssertNil(t, err)
		h.AssertNil(t, esc)
	})

	it("ignores files without a directive", func() {
		esc, err := scan("FROM alpine\n")
		h.AssertNil(t, err)
		h.AssertNil(t, esc)
	})

	it("rejects unsupported characters", func() {
		_, err := scan("# escape=x\n")
		h.AssertErrorIs(t, err, instruction.ErrInvalid)
	})
}
