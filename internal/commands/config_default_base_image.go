package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/name"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

var defaultBaseImageSetting = configSetting{
	name:        "default-base-image",
	description: "base image used by new when --from is not given",
	get:         func(c config.Config) string { return c.DefaultBaseImage },
	set:         func(c *config.Config, v string) { c.DefaultBaseImage = v },
	parse: func(v string) (string, error) {
		if err := name.Validate(v); err != nil {
			return "", errors.Wrapf(err, "invalid image name %s", style.Symbol(v))
		}
		return v, nil
	},
}

func ConfigDefaultBaseImage(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	return configSettingCommand(logger, cfg, cfgPath, defaultBaseImageSetting)
}
