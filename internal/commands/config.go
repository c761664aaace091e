package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

func NewConfigCommand(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Args:  cobra.NoArgs,
		Short: "Interact with dockerphile's configuration",
		Long:  "Run without a subcommand to list every setting stored in " + style.Symbol(cfgPath) + ".",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			for _, s := range []configSetting{defaultOutputSetting, defaultBaseImageSetting, ignoreFileSetting} {
				value := s.get(cfg)
				if value == "" {
					value = "(not set)"
				}
				logger.Infof("%s = %s", s.name, value)
			}
			listRegistryMirrors(logger, cfg)
			return nil
		}),
	}

	cmd.AddCommand(ConfigDefaultOutput(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigDefaultBaseImage(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigIgnoreFile(logger, cfg, cfgPath))
	cmd.AddCommand(ConfigRegistryMirrors(logger, cfg, cfgPath))

	AddHelpFlag(cmd, "config")
	return cmd
}

// configSetting describes a single string key of the config file.
type configSetting struct {
	name        string
	description string
	get         func(config.Config) string
	set         func(*config.Config, string)
	// parse validates and normalises a new value.
	parse func(string) (string, error)
}

func configSettingCommand(logger logging.Logger, cfg config.Config, cfgPath string, s configSetting) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   s.name + " [value]",
		Args:  cobra.MaximumNArgs(1),
		Short: "List, set and unset the " + s.description,
		Long: "You can use this command to list, set, and unset the " + s.description + ":\n" +
			"* To list it, run `dockerphile config " + s.name + "`.\n" +
			"* To set it, run `dockerphile config " + s.name + " <value>`.\n" +
			"* To unset it, run `dockerphile config " + s.name + " --unset`.",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			switch {
			case unset:
				if len(args) > 0 {
					return errors.Errorf("%s and --unset cannot be specified simultaneously", s.name)
				}
				old := s.get(cfg)
				if old == "" {
					logger.Infof("%s is not set", s.name)
					return nil
				}
				s.set(&cfg, "")
				if err := config.Write(cfg, cfgPath); err != nil {
					return errors.Wrapf(err, "writing config to %s", cfgPath)
				}
				logger.Infof("Successfully unset %s %s", s.name, style.Symbol(old))

			case len(args) == 0: // list
				current := s.get(cfg)
				if current == "" {
					logger.Infof("%s is not set", s.name)
					return nil
				}
				logger.Infof("The current %s is %s", s.name, style.Symbol(current))

			default: // set
				value, err := s.parse(args[0])
				if err != nil {
					return err
				}
				if value == s.get(cfg) {
					logger.Infof("%s is already set to %s", s.name, style.Symbol(value))
					return nil
				}
				s.set(&cfg, value)
				if err := config.Write(cfg, cfgPath); err != nil {
					return errors.Wrapf(err, "writing config to %s", cfgPath)
				}
				logger.Infof("Successfully set %s as the %s", style.Symbol(value), s.name)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&unset, "unset", "u", false, "Unset "+s.name)
	AddHelpFlag(cmd, s.name)
	return cmd
}
