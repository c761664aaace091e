package commands

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/name"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/internal/target"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/instruction"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type NewDockerfileFlags struct {
	From     string
	As       string
	Platform string
	Workdir  string
	User     string
	Output   string
	Env      []string
	Copy     []string
	Run      []string
	Expose   []string
	Cmd      []string
}

// NewDockerfile generates a single stage Dockerfile through the builder API.
func NewDockerfile(logger logging.Logger, cfg config.Config) *cobra.Command {
	var flags NewDockerfileFlags

	cmd := &cobra.Command{
		Use:   "new",
		Args:  cobra.NoArgs,
		Short: "Generate a Dockerfile",
		Long: "Generate a single stage Dockerfile from flags.\n\n" +
			"Instructions are written in this order: FROM, ENV, WORKDIR, COPY, RUN, EXPOSE, USER, CMD. " +
			"Several --run commands are joined into one RUN instruction.",
		Example: "dockerphile new --from golang:1.22 --workdir /src --copy .:. --run 'go mod download' --run 'go build ./...' --cmd ./app",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if flags.From == "" {
				flags.From = cfg.DefaultBaseImage
			}
			if flags.From == "" {
				return errors.Errorf("a base image is required, pass %s or set one with %s",
					style.Symbol("--from"), style.Symbol("dockerphile config default-base-image"))
			}

			from, err := name.TranslateRegistry(flags.From, cfg.RegistryMirrors, logger)
			if err != nil {
				return errors.Wrapf(err, "invalid base image %s", style.Symbol(flags.From))
			}
			flags.From = from

			if flags.Platform != "" && !target.IsBuildArg(flags.Platform) {
				platform, err := target.ParsePlatform(flags.Platform)
				if err != nil {
					return err
				}
				flags.Platform = platform.String()
			}

			doc, err := generate(logger, flags)
			if err != nil {
				return err
			}

			if flags.Output == "" {
				_, err := doc.WriteTo(logger.Writer())
				return err
			}
			if err := doc.Save(flags.Output); err != nil {
				return err
			}
			logger.Infof("Successfully wrote %s", style.Symbol(flags.Output))
			return nil
		}),
	}

	cmd.Flags().StringVar(&flags.From, "from", "", "Base image, defaults to the configured default-base-image.\nConfigured registry mirrors are applied")
	cmd.Flags().StringVar(&flags.As, "as", "", "Stage name")
	cmd.Flags().StringVar(&flags.Platform, "platform", "", "Platform of the base image, e.g. linux/amd64")
	cmd.Flags().StringVar(&flags.Workdir, "workdir", "", "Working directory")
	cmd.Flags().StringVar(&flags.User, "user", "", "User, optionally followed by :group")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "File to write, defaults to standard output")
	cmd.Flags().StringArrayVar(&flags.Env, "env", nil, "Environment variable as KEY=VALUE"+multiValueHelp("variable"))
	cmd.Flags().StringArrayVar(&flags.Copy, "copy", nil, "Files to copy as <src>:<dest>"+multiValueHelp("copy"))
	cmd.Flags().StringArrayVar(&flags.Run, "run", nil, "Shell command to run"+multiValueHelp("command"))
	cmd.Flags().StringArrayVar(&flags.Expose, "expose", nil, "Port to expose, e.g. 8080 or 53/udp"+multiValueHelp("port"))
	cmd.Flags().StringArrayVar(&flags.Cmd, "cmd", nil, "Default command argument, written in exec form"+multiValueHelp("argument"))
	AddHelpFlag(cmd, "new")
	return cmd
}

func generate(logger logging.Logger, flags NewDockerfileFlags) (*dockerfile.Document, error) {
	doc := dockerfile.New(dockerfile.WithLogger(logger))

	if err := doc.FromWithOptions(flags.From, instruction.FromOptions{As: flags.As, Platform: flags.Platform}); err != nil {
		return nil, err
	}

	for _, env := range flags.Env {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			return nil, errors.Errorf("invalid --env %s, expected KEY=VALUE", style.Symbol(env))
		}
		if err := doc.Env(key, value); err != nil {
			return nil, err
		}
	}

	if flags.Workdir != "" {
		if err := doc.Workdir(flags.Workdir); err != nil {
			return nil, err
		}
	}

	for _, c := range flags.Copy {
		src, dest, ok := strings.Cut(c, ":")
		if !ok || src == "" || dest == "" {
			return nil, errors.Errorf("invalid --copy %s, expected <src>:<dest>", style.Symbol(c))
		}
		if err := doc.Copy(src, dest); err != nil {
			return nil, err
		}
	}

	switch len(flags.Run) {
	case 0:
	case 1:
		if err := doc.Run(instruction.Shell(flags.Run[0])); err != nil {
			return nil, err
		}
	default:
		err := doc.WithRunBlock(instruction.ShellForm, func(b *dockerfile.RunBlock) error {
			for _, r := range flags.Run {
				b.Run(r)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(flags.Expose) > 0 {
		if err := doc.Expose(flags.Expose...); err != nil {
			return nil, err
		}
	}

	if flags.User != "" {
		user, group, _ := strings.Cut(flags.User, ":")
		if err := doc.User(user, group); err != nil {
			return nil, err
		}
	}

	if len(flags.Cmd) > 0 {
		if err := doc.Cmd(instruction.Exec(flags.Cmd...)); err != nil {
			return nil, err
		}
	}

	return doc, nil
}
