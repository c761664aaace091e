package commands

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type FmtFlags struct {
	Write bool
	Check bool
}

// Fmt prints, rewrites or checks the canonical rendering of a Dockerfile.
func Fmt(logger logging.Logger) *cobra.Command {
	var flags FmtFlags

	cmd := &cobra.Command{
		Use:   "fmt <dockerfile>",
		Args:  cobra.ExactArgs(1),
		Short: "Print a Dockerfile in canonical form",
		Long: "Parse a Dockerfile and render it back in canonical form.\n\n" +
			"Comments other than a leading escape directive are dropped, ENV and LABEL pairs are split into one instruction each, " +
			"and MAINTAINER is removed.",
		Example: "dockerphile fmt Dockerfile --write",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if flags.Write && flags.Check {
				return errors.New("--write and --check cannot be used together")
			}

			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", style.Symbol(path))
			}

			doc, err := dockerfile.FromReader(bytes.NewReader(src), dockerfile.WithLogger(logger))
			if err != nil {
				return errors.Wrapf(err, "parsing %s", style.Symbol(path))
			}

			switch {
			case flags.Check:
				if doc.String() != string(src) {
					logger.Errorf("%s is not formatted", style.Symbol(path))
					logging.Tip(logger, "Run %s to fix it", style.Symbol("dockerphile fmt --write "+path))
					return NewSoftError("Dockerfile is not formatted")
				}
				logger.Infof("%s is formatted", style.Symbol(path))
			case flags.Write:
				if err := doc.Save(path); err != nil {
					return err
				}
				logger.Infof("Successfully formatted %s", style.Symbol(path))
			default:
				if _, err := doc.WriteTo(logger.Writer()); err != nil {
					return errors.Wrap(err, "writing Dockerfile")
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&flags.Write, "write", "w", false, "Write the result back to the source file")
	cmd.Flags().BoolVar(&flags.Check, "check", false, "Fail if the file is not already formatted")
	AddHelpFlag(cmd, "fmt")
	return cmd
}
