package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/inspect"
	"github.com/buildpacks/dockerphile/internal/inspect/writer"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

const defaultOutput = "human-readable"

type InspectWriterFactory interface {
	Writer(kind string) (writer.InspectWriter, error)
}

type InspectFlags struct {
	OutputFormat string
}

func Inspect(logger logging.Logger, cfg config.Config, writerFactory InspectWriterFactory) *cobra.Command {
	var flags InspectFlags

	cmd := &cobra.Command{
		Use:     "inspect <dockerfile>",
		Args:    cobra.ExactArgs(1),
		Short:   "Show stages, runtime settings and a digest of a Dockerfile",
		Example: "dockerphile inspect Dockerfile --output json",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			path := args[0]

			format := flags.OutputFormat
			if format == "" {
				format = cfg.DefaultOutput
			}
			if format == "" {
				format = defaultOutput
			}

			w, err := writerFactory.Writer(format)
			if err != nil {
				return err
			}

			doc, err := dockerfile.FromSource(path, dockerfile.WithLogger(logger))
			if err != nil {
				return errors.Wrapf(err, "parsing %s", style.Symbol(path))
			}

			return w.Print(logger, inspect.GeneralInfo{Path: path}, doc)
		}),
	}

	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "", "Output format to display the Dockerfile summary (json, yaml, toml, human-readable)")
	AddHelpFlag(cmd, "inspect")
	return cmd
}
