package commands

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

var ignoreFileSetting = configSetting{
	name:        "ignore-file",
	description: "ignore file used by validate for every Dockerfile",
	get:         func(c config.Config) string { return c.IgnoreFile },
	set:         func(c *config.Config, v string) { c.IgnoreFile = v },
	parse: func(v string) (string, error) {
		abs, err := filepath.Abs(v)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", errors.Wrapf(err, "checking ignore file %s", style.Symbol(abs))
		}
		return abs, nil
	},
}

func ConfigIgnoreFile(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	return configSettingCommand(logger, cfg, cfgPath, ignoreFileSetting)
}
