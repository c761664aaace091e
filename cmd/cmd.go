package cmd

import (
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/commands"
	"github.com/buildpacks/dockerphile/internal/config"
	inspectwriter "github.com/buildpacks/dockerphile/internal/inspect/writer"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

// ConfigurableLogger defines behavior required by the DockerphileCommand
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantQuiet(f bool)
	WantVerbose(f bool)
}

// NewDockerphileCommand generates a Dockerphile command
func NewDockerphileCommand(logger ConfigurableLogger) (*cobra.Command, error) {
	cobra.EnableCommandSorting = false
	cfg, cfgPath, err := initConfig(logger)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:   "dockerphile",
		Short: "CLI for writing, formatting and inspecting Dockerfiles",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil && flag {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	rootCmd.Flags().Bool("version", false, "Show current 'dockerphile' version")

	commands.AddHelpFlag(rootCmd, "dockerphile")

	rootCmd.AddCommand(commands.Fmt(logger))
	rootCmd.AddCommand(commands.Validate(logger, cfg))
	rootCmd.AddCommand(commands.Inspect(logger, cfg, inspectwriter.NewFactory()))
	rootCmd.AddCommand(commands.NewDockerfile(logger, cfg))

	rootCmd.AddCommand(commands.NewConfigCommand(logger, cfg, cfgPath))

	rootCmd.AddCommand(commands.Version(logger, Version))
	rootCmd.AddCommand(commands.Report(logger, Version))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, logging.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, logging.ErrorLevel))

	return rootCmd, nil
}

func initConfig(logger logging.Logger) (config.Config, string, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.Config{}, "", errors.Wrap(err, "getting config path")
	}

	cfg, unknownKeys, err := config.Read(path)
	if err != nil {
		return config.Config{}, "", errors.Wrap(err, "reading dockerphile config")
	}
	if unknownKeys != "" {
		logger.Warnf("Ignoring unknown keys %s in %s", unknownKeys, path)
	}
	return cfg, path, nil
}
