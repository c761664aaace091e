package commands_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/internal/commands"
	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/inspect/writer"
	"github.com/buildpacks/dockerphile/pkg/logging"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

func TestInspectCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "InspectCommand", testInspectCommand, spec.Random(), spec.Report(report.Terminal{}))
}

type fakeWriterFactory struct {
	requested string
}

func (f *fakeWriterFactory) Writer(kind string) (writer.InspectWriter, error) {
	f.requested = kind
	return writer.NewFactory().Writer(kind)
}

func testInspectCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		logger  logging.Logger
		outBuf  bytes.Buffer
		factory *fakeWriterFactory
		path    string
	)

	it.Before(func() {
		outBuf.Reset()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)
		factory = &fakeWriterFactory{}
		path = h.WriteFile(t, t.TempDir(), "Dockerfile", "FROM alpine:3.19 AS base\nEXPOSE 80\nUSER app\n")
	})

	it("defaults to human-readable output", func() {
		command := commands.Inspect(logger, config.Config{}, factory)
		command.SetArgs([]string{path})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, factory.requested, "human-readable")
		h.AssertContains(t, outBuf.String(), "Inspecting Dockerfile: '"+path+"'")
	})

	it("uses the configured default output", func() {
		command := commands.Inspect(logger, config.Config{DefaultOutput: "yaml"}, factory)
		command.SetArgs([]string{path})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, factory.requested, "yaml")
	})

	it("prefers --output over the config", func() {
		command := commands.Inspect(logger, config.Config{DefaultOutput: "yaml"}, factory)
		command.SetArgs([]string{path, "--output", "json"})
		h.AssertNil(t, command.Execute())

		h.AssertEq(t, factory.requested, "json")

		var out struct {
			Stages []struct {
				Name       string `json:"name"`
				Repository string `json:"repository"`
			} `json:"stages"`
			Runtime struct {
				User  string   `json:"user"`
				Ports []string `json:"ports"`
			} `json:"runtime"`
		}
		h.AssertNil(t, json.Unmarshal(outBuf.Bytes(), &out))
		h.AssertEq(t, out.Stages[0].Name, "base")
		h.AssertEq(t, out.Stages[0].Repository, "library/alpine")
		h.AssertEq(t, out.Runtime.User, "app")
		h.AssertEq(t, out.Runtime.Ports, []string{"80"})
	})

	it("rejects unknown formats", func() {
		command := commands.Inspect(logger, config.Config{}, factory)
		command.SetArgs([]string{path, "-o", "xml"})
		h.AssertError(t, command.Execute(), "output format 'xml' is not supported")
	})

	it("fails on invalid Dockerfiles", func() {
		bad := h.WriteFile(t, t.TempDir(), "Dockerfile", "FROM\n")
		command := commands.Inspect(logger, config.Config{}, factory)
		command.SetArgs([]string{bad})
		h.AssertError(t, command.Execute(), "parsing '"+bad+"'")
	})
}
