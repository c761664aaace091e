package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

const buildkitModule = "github.com/moby/buildkit"

func Report(logger logging.Logger, version string) *cobra.Command {
	var explicit bool

	cmd := &cobra.Command{
		Use:   "report",
		Args:  cobra.NoArgs,
		Short: "Display useful information for reporting an issue",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			err := generateOutput(&buf, version, explicit)
			if err != nil {
				return err
			}

			logger.Info(buf.String())

			return nil
		}),
	}

	cmd.Flags().BoolVarP(&explicit, "explicit", "e", false, "Print config without redacting information")
	AddHelpFlag(cmd, "report")
	return cmd
}

func generateOutput(writer io.Writer, version string, explicit bool) error {
	tpl := template.Must(template.New("").Parse(`Dockerphile:
  Version:  {{ .Version }}
  OS/Arch:  {{ .OS }}/{{ .Arch }}

Dockerfile Parser:  {{ .Parser }}

Config:
{{ .Config -}}`))

	configData := ""
	if path, err := config.DefaultConfigPath(); err != nil {
		configData = fmt.Sprintf("(error: %s)", err.Error())
	} else if data, err := os.ReadFile(path); err != nil {
		configData = fmt.Sprintf("(no config file found at %s)", path)
	} else {
		var padded strings.Builder

		for _, line := range strings.Split(string(data), "\n") {
			if !explicit {
				line = sanitize(line)
			}
			_, _ = fmt.Fprintf(&padded, "  %s\n", line)
		}
		configData = strings.TrimRight(padded.String(), " \n")
	}

	return tpl.Execute(writer, map[string]string{
		"Version": version,
		"OS":      runtime.GOOS,
		"Arch":    runtime.GOARCH,
		"Parser":  parserVersion(),
		"Config":  configData,
	})
}

func parserVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(unknown)"
	}
	for _, dep := range info.Deps {
		if dep.Path == buildkitModule {
			return buildkitModule + " " + dep.Version
		}
	}
	return "(unknown)"
}

// sanitize redacts the ignore-file path.
func sanitize(line string) string {
	if strings.HasPrefix(line, "ignore-file") {
		return `ignore-file = "[REDACTED]"`
	}

	return line
}
