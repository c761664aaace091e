package inspect_test

import (
	"strings"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

const multiStage = `ARG BASE=golang:1.22
FROM --platform=linux/amd64 ${BASE} AS build
WORKDIR /src
COPY . .
RUN go build -o /out/app .

FROM gcr.io/distroless/static:nonroot
COPY --from=build /out/app /app
ENV PORT=8080 MODE=prod
LABEL org.opencontainers.image.source=https://example.com
EXPOSE 8080/tcp
VOLUME ["/data"]
USER nonroot:nonroot
ENTRYPOINT ["/app"]
CMD ["serve"]
HEALTHCHECK CMD ["/app", "health"]
ONBUILD RUN echo hi
`

func TestInfoDisplay(t *testing.T) {
	spec.Run(t, "InfoDisplay", testInfoDisplay, spec.Report(report.Terminal{}))
}

func testInfoDisplay(t *testing.T, when spec.G, it spec.S) {
	var doc *dockerfile.Document

	it.Before(func() {
		var err error
		doc, err = dockerfile.FromReader(strings.NewReader(multiStage))
		h.AssertNil(t, err)
	})

	it("identifies the rendering", func() {
		info := inspect.NewInfoDisplay(doc, inspect.GeneralInfo{Path: "Dockerfile"})

		h.AssertEq(t, info.Path, "Dockerfile")
		h.AssertEq(t, info.Digest, digest.FromString(doc.String()).String())
		h.AssertEq(t, info.Size, humanize.Bytes(uint64(len(doc.String()))))
		h.AssertEq(t, info.Escape, `\`)
	})

	it("counts instructions per kind in keyword order", func() {
		info := inspect.NewInfoDisplay(doc, inspect.GeneralInfo{})

		h.AssertEq(t, info.Instructions, 17)
		h.AssertEq(t, info.Kinds, []inspect.KindCount{
			{Kind: "ARG", Count: 1},
			{Kind: "CMD", Count: 1},
			{Kind: "COPY", Count: 2},
			{Kind: "ENTRYPOINT", Count: 1},
			{Kind: "ENV", Count: 2},
			{Kind: "EXPOSE", Count: 1},
			{Kind: "FROM", Count: 2},
			{Kind: "HEALTHCHECK", Count: 1},
			{Kind: "LABEL", Count: 1},
			{Kind: "ONBUILD", Count: 1},
			{Kind: "RUN", Count: 1},
			{Kind: "USER", Count: 1},
			{Kind: "VOLUME", Count: 1},
			{Kind: "WORKDIR", Count: 1},
		})
	})

	it("describes every stage", func() {
		info := inspect.NewInfoDisplay(doc, inspect.GeneralInfo{})

		h.AssertEq(t, info.Stages, []inspect.StageDisplay{
			{
				Index:        0,
				BaseImage:    "${BASE}",
				Name:         "build",
				Platform:     "linux/amd64",
				Instructions: 3,
			},
			{
				Index:        1,
				BaseImage:    "gcr.io/distroless/static:nonroot",
				Registry:     "gcr.io",
				Repository:   "distroless/static",
				Identifier:   "nonroot",
				Instructions: 11,
			},
		})
	})

	it("resolves docker hub short names", func() {
		d := dockerfile.New()
		h.AssertNil(t, d.From("alpine"))

		info := inspect.NewInfoDisplay(d, inspect.GeneralInfo{})
		h.AssertEq(t, info.Stages[0].Registry, "index.docker.io")
		h.AssertEq(t, info.Stages[0].Repository, "library/alpine")
		h.AssertEq(t, info.Stages[0].Identifier, "latest")
	})

	it("leaves scratch unresolved", func() {
		d := dockerfile.New()
		h.AssertNil(t, d.From("scratch"))

		info := inspect.NewInfoDisplay(d, inspect.GeneralInfo{})
		h.AssertEq(t, info.Stages[0].Registry, "")
	})

	it("reports the runtime settings of the last stage", func() {
		info := inspect.NewInfoDisplay(doc, inspect.GeneralInfo{})

		h.AssertEq(t, info.Runtime, inspect.RuntimeDisplay{
			User:        "nonroot:nonroot",
			Entrypoint:  "[/app]",
			Cmd:         "[serve]",
			Healthcheck: true,
			Ports:       []string{"8080/tcp"},
			Volumes:     []string{"/data"},
		})
		h.AssertEq(t, info.Triggers, []string{"RUN"})
	})

	it("lists sorted variable names", func() {
		info := inspect.NewInfoDisplay(doc, inspect.GeneralInfo{})

		h.AssertEq(t, info.Args, []string{"BASE"})
		h.AssertEq(t, info.Env, []string{"MODE", "PORT"})
		h.AssertEq(t, info.Labels, []string{"org.opencontainers.image.source"})
	})

	when("the document is empty", func() {
		it("returns empty collections", func() {
			info := inspect.NewInfoDisplay(dockerfile.New(), inspect.GeneralInfo{})

			h.AssertEq(t, info.Instructions, 0)
			h.AssertEq(t, info.Kinds, []inspect.KindCount{})
			h.AssertEq(t, info.Stages, []inspect.StageDisplay{})
			h.AssertEq(t, info.Size, "1 B")
		})
	})
}
