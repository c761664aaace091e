package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/inspect/writer"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

var defaultOutputSetting = configSetting{
	name:        "default-output",
	description: "output format used by inspect when --output is not given",
	get:         func(c config.Config) string { return c.DefaultOutput },
	set:         func(c *config.Config, v string) { c.DefaultOutput = v },
	parse: func(v string) (string, error) {
		if _, err := writer.NewFactory().Writer(v); err != nil {
			return "", err
		}
		return v, nil
	},
}

func ConfigDefaultOutput(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	return configSettingCommand(logger, cfg, cfgPath, defaultOutputSetting)
}
