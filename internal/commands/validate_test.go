package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/commands"
	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/pkg/logging"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

func TestValidateCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "ValidateCommand", testValidateCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testValidateCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		logger  logging.Logger
		outBuf  bytes.Buffer
		tmpDir  string
		command *cobra.Command
	)

	it.Before(func() {
		outBuf.Reset()
		tmpDir = t.TempDir()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)
		command = commands.Validate(logger, config.Config{})
	})

	when("every file is valid", func() {
		it("reports the instruction count per file", func() {
			one := h.WriteFile(t, tmpDir, "one.Dockerfile", "FROM alpine\nRUN true\n")
			two := h.WriteFile(t, tmpDir, "two.Dockerfile", "FROM alpine\nENV A=1 B=2\nCMD [\"sh\"]\n")

			command.SetArgs([]string{one, two})
			h.AssertNil(t, command.Execute())

			out := outBuf.String()
			h.AssertContains(t, out, "["+one+"] 2 instructions")
			h.AssertContains(t, out, "["+two+"] 4 instructions")
			h.AssertContains(t, out, "Successfully validated 2 Dockerfiles")
		})
	})

	when("a file is invalid", func() {
		it("reports it and fails once", func() {
			good := h.WriteFile(t, tmpDir, "good.Dockerfile", "FROM alpine\n")
			bad := h.WriteFile(t, tmpDir, "bad.Dockerfile", "FROM alpine\nFROBNICATE now\n")

			command.SetArgs([]string{good, bad})
			err := command.Execute()
			h.AssertError(t, err, "validation failed")

			out := outBuf.String()
			h.AssertContains(t, out, "["+good+"] 1 instruction\n")
			h.AssertContains(t, out, "["+bad+"] line 2")
			h.AssertContains(t, out, `unrecognized instruction "FROBNICATE"`)
			h.AssertContains(t, out, "ERROR: 1 of 2 Dockerfiles are invalid")
			h.AssertNotContains(t, out, "ERROR: validation failed")
		})

		it("reports missing files", func() {
			command.SetArgs([]string{filepath.Join(tmpDir, "missing")})
			h.AssertError(t, command.Execute(), "validation failed")
			h.AssertContains(t, outBuf.String(), "opening Dockerfile")
		})
	})

	when("a stage platform is malformed", func() {
		it("warns and still succeeds", func() {
			path := h.WriteFile(t, tmpDir, "Dockerfile", "FROM --platform=x86/linux alpine\nFROM --platform=$BUILDPLATFORM golang\n")

			command.SetArgs([]string{path})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "Warning: ["+path+"] FROM alpine: unknown os 'x86'")
			h.AssertNotContains(t, outBuf.String(), "FROM golang")
		})
	})

	when("a .dockerignore sits next to the Dockerfile", func() {
		it("warns about excluded sources", func() {
			h.WriteFile(t, tmpDir, ".dockerignore", "*.log\nsecrets/\n")
			path := h.WriteFile(t, tmpDir, "Dockerfile", `FROM alpine
COPY app.log secrets/key main.go /app/
COPY --from=builder debug.log /tmp/
ADD https://example.com/x.log /tmp/
`)

			command.SetArgs([]string{path})
			h.AssertNil(t, command.Execute())

			out := outBuf.String()
			h.AssertContains(t, out, "Warning: ["+path+"] COPY source 'app.log' is excluded by")
			h.AssertContains(t, out, "COPY source 'secrets/key' is excluded by")
			h.AssertNotContains(t, out, "'main.go'")
			h.AssertNotContains(t, out, "'debug.log'")
			h.AssertNotContains(t, out, "x.log")
		})

		it("prefers <dockerfile>.dockerignore", func() {
			h.WriteFile(t, tmpDir, ".dockerignore", "*.log\n")
			h.WriteFile(t, tmpDir, "Dockerfile.dockerignore", "*.txt\n")
			path := h.WriteFile(t, tmpDir, "Dockerfile", "FROM alpine\nCOPY a.log b.txt /app/\n")

			command.SetArgs([]string{path})
			h.AssertNil(t, command.Execute())

			out := outBuf.String()
			h.AssertContains(t, out, "'b.txt' is excluded")
			h.AssertNotContains(t, out, "'a.log' is excluded")
		})
	})

	when("--ignore-file", func() {
		it("uses the given file for every Dockerfile", func() {
			ignoreFile := h.WriteFile(t, t.TempDir(), "ignore", "vendor\n")
			path := h.WriteFile(t, tmpDir, "Dockerfile", "FROM alpine\nADD vendor /app/vendor\n")

			command.SetArgs([]string{path, "--ignore-file", ignoreFile})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "ADD source 'vendor' is excluded by '"+ignoreFile+"'")
		})

		it("fails when the file is missing", func() {
			path := h.WriteFile(t, tmpDir, "Dockerfile", "FROM alpine\n")

			command.SetArgs([]string{path, "--ignore-file", filepath.Join(tmpDir, "nope")})
			h.AssertError(t, command.Execute(), "validation failed")
			h.AssertContains(t, outBuf.String(), "reading ignore file")
		})

		it("falls back to the configured ignore file", func() {
			ignoreFile := h.WriteFile(t, t.TempDir(), "ignore", "*.md\n")
			path := h.WriteFile(t, tmpDir, "Dockerfile", "FROM alpine\nCOPY README.md /\n")

			command = commands.Validate(logger, config.Config{IgnoreFile: ignoreFile})
			command.SetArgs([]string{path})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "'README.md' is excluded")
		})
	})
}
