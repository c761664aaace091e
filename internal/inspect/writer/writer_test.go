package writer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/internal/inspect/writer"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

const source = `FROM golang:1.22 AS build
RUN go build -o /app .
FROM gcr.io/distroless/static
COPY --from=build /app /app
EXPOSE 8080
ENTRYPOINT ["/app"]
`

func TestWriters(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Writers", testWriters, spec.Report(report.Terminal{}))
}

func testWriters(t *testing.T, when spec.G, it spec.S) {
	var (
		assert  = h.NewAssertionManager(t)
		outBuf  bytes.Buffer
		logger  logging.Logger
		doc     *dockerfile.Document
		info    = inspect.GeneralInfo{Path: "Dockerfile"}
		factory = writer.NewFactory()
	)

	it.Before(func() {
		outBuf.Reset()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)

		var err error
		doc, err = dockerfile.FromReader(strings.NewReader(source))
		h.AssertNil(t, err)
	})

	printAs := func(kind string) string {
		w, err := factory.Writer(kind)
		h.AssertNil(t, err)
		h.AssertNil(t, w.Print(logger, info, doc))
		return outBuf.String()
	}

	when("#Writer", func() {
		it("rejects unknown formats", func() {
			_, err := factory.Writer("xml")
			assert.ErrorContains(err, "output format 'xml' is not supported")
		})

		it("supports every listed format", func() {
			for _, kind := range writer.Kinds {
				_, err := factory.Writer(kind)
				h.AssertNil(t, err)
			}
		})
	})

	when("human-readable", func() {
		it("prints a summary", func() {
			out := printAs("human-readable")

			assert.ContainsAll(out,
				"Inspecting Dockerfile: 'Dockerfile'",
				"Digest: sha256:",
				"Instructions: 6",
				"Stages:",
				"golang:1.22",
				"gcr.io/distroless/static",
				"Runtime:",
				"[/app]",
				"8080",
				"Build Args: -",
			)
		})

		it("fails without a document", func() {
			err := writer.NewHumanReadable().Print(logger, info, nil)
			assert.ErrorContains(err, "no Dockerfile to inspect at 'Dockerfile'")
		})
	})

	when("json", func() {
		it("prints indented json", func() {
			out := printAs("json")

			assert.ContainsAll(out,
				`"path": "Dockerfile"`,
				`"digest": "sha256:`,
				`"base_image": "gcr.io/distroless/static"`,
				`"registry": "gcr.io"`,
				`"name": "build"`,
				`"ports": [`,
			)
		})
	})

	when("yaml", func() {
		it("prints a yaml document", func() {
			out := printAs("yaml")

			h.AssertTrue(t, strings.HasPrefix(out, "---\n"))
			assert.ContainsAll(out,
				"path: Dockerfile",
				"registry: gcr.io",
				"repository: distroless/static",
				"index: 1",
			)
		})
	})

	when("toml", func() {
		it("prints toml tables", func() {
			out := printAs("toml")

			assert.ContainsAll(out,
				`path = "Dockerfile"`,
				"[[stages]]",
				`base_image = "golang:1.22"`,
				"[runtime]",
			)
		})
	})

	when("structured format without a document", func() {
		it("fails", func() {
			err := writer.NewJSON().Print(logger, info, nil)
			assert.ErrorContains(err, "no Dockerfile to inspect")
		})
	})
}
