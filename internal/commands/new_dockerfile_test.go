package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/internal/commands"
	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/pkg/logging"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

func TestNewDockerfileCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "NewDockerfileCommand", testNewDockerfileCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testNewDockerfileCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		logger logging.Logger
		outBuf bytes.Buffer
	)

	it.Before(func() {
		outBuf.Reset()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)
	})

	it("writes every instruction in order", func() {
		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{
			"--from", "golang:1.22",
			"--as", "build",
			"--platform", "linux/amd64",
			"--env", "CGO_ENABLED=0",
			"--workdir", "/src",
			"--copy", ".:.",
			"--run", "go build -o /app .",
			"--expose", "8080",
			"--expose", "53/udp",
			"--user", "app:app",
			"--cmd", "/app",
			"--cmd", "serve",
		})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), `FROM --platform=linux/amd64 golang:1.22 AS build
ENV CGO_ENABLED=0
WORKDIR /src
COPY "." "."
RUN go build -o /app .
EXPOSE 8080 53/udp
USER app:app
CMD ["/app", "serve"]
`)
	})

	it("joins several --run values into one RUN", func() {
		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{"--from", "alpine", "--run", "apk update", "--run", "apk add curl"})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), "FROM alpine\nRUN \\\n  apk update && \\\n  apk add curl\n")
	})

	it("uses the configured base image", func() {
		command := commands.NewDockerfile(logger, config.Config{DefaultBaseImage: "debian:bookworm"})
		command.SetArgs([]string{})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), "FROM debian:bookworm\n")
	})

	it("requires a base image", func() {
		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{})
		h.AssertError(t, command.Execute(), "a base image is required")
	})

	it("saves to --output", func() {
		path := filepath.Join(t.TempDir(), "Dockerfile")

		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{"--from", "alpine", "--output", path})
		h.AssertNil(t, command.Execute())

		h.AssertFileContents(t, path, "FROM alpine\n")
		h.AssertContains(t, outBuf.String(), "Successfully wrote '"+path+"'")
	})

	it("applies configured registry mirrors", func() {
		command := commands.NewDockerfile(logger, config.Config{RegistryMirrors: map[string]string{"index.docker.io": "mirror.gcr.io"}})
		command.SetArgs([]string{"--from", "alpine:3.19"})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), "FROM mirror.gcr.io/library/alpine:3.19\n")
	})

	it("normalises --platform", func() {
		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{"--from", "alpine", "--platform", "Linux/arm64"})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), "FROM --platform=linux/arm64 alpine\n")
	})

	it("keeps build arg platforms", func() {
		command := commands.NewDockerfile(logger, config.Config{})
		command.SetArgs([]string{"--from", "alpine", "--platform", "$BUILDPLATFORM"})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, outBuf.String(), "FROM --platform=$BUILDPLATFORM alpine\n")
	})

	when("flags are malformed", func() {
		it("rejects invalid platforms", func() {
			command := commands.NewDockerfile(logger, config.Config{})
			command.SetArgs([]string{"--from", "alpine", "--platform", "amd64"})
			h.AssertError(t, command.Execute(), "unknown os 'amd64'")
		})

		it("rejects --env without =", func() {
			command := commands.NewDockerfile(logger, config.Config{})
			command.SetArgs([]string{"--from", "alpine", "--env", "PATH"})
			h.AssertError(t, command.Execute(), "invalid --env 'PATH'")
		})

		it("rejects --copy without a destination", func() {
			command := commands.NewDockerfile(logger, config.Config{})
			command.SetArgs([]string{"--from", "alpine", "--copy", "src"})
			h.AssertError(t, command.Execute(), "invalid --copy 'src'")
		})

		it("surfaces instruction validation errors", func() {
			command := commands.NewDockerfile(logger, config.Config{})
			command.SetArgs([]string{"--from", "alpine", "--as", "two words"})
			h.AssertError(t, command.Execute(), "must not contain whitespace")
		})
	})
}
