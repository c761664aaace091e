package commands

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

func ConfigRegistryMirrors(logger logging.Logger, cfg config.Config, cfgPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry-mirrors",
		Args:  cobra.NoArgs,
		Short: "List, add and remove registry mirrors used by new",
		Long: "Registry mirrors rewrite the base image written by `dockerphile new`.\n" +
			"Use " + style.Symbol("*") + " as the registry to mirror every registry.",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			listRegistryMirrors(logger, cfg)
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "add <registry> <mirror>",
		Args:    cobra.ExactArgs(2),
		Short:   "Add a registry mirror",
		Example: "dockerphile config registry-mirrors add index.docker.io mirror.gcr.io",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			registry, mirror := args[0], args[1]
			if cfg.RegistryMirrors == nil {
				cfg.RegistryMirrors = map[string]string{}
			}
			cfg.RegistryMirrors[registry] = mirror
			if err := config.Write(cfg, cfgPath); err != nil {
				return errors.Wrapf(err, "failed to write to %s", cfgPath)
			}
			logger.Infof("Registry %s configured with mirror %s", style.Symbol(registry), style.Symbol(mirror))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <registry>",
		Args:  cobra.ExactArgs(1),
		Short: "Remove a registry mirror",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			registry := args[0]
			if _, ok := cfg.RegistryMirrors[registry]; !ok {
				logger.Infof("No mirror has been set for %s", style.Symbol(registry))
				return nil
			}
			delete(cfg.RegistryMirrors, registry)
			if err := config.Write(cfg, cfgPath); err != nil {
				return errors.Wrapf(err, "failed to write to %s", cfgPath)
			}
			logger.Infof("Removed mirror for %s", style.Symbol(registry))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "List registry mirrors",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			listRegistryMirrors(logger, cfg)
			return nil
		}),
	})

	AddHelpFlag(cmd, "registry-mirrors")
	return cmd
}

func listRegistryMirrors(logger logging.Logger, cfg config.Config) {
	if len(cfg.RegistryMirrors) == 0 {
		logger.Info("No registry mirrors have been set")
		return
	}

	var registries []string
	for registry := range cfg.RegistryMirrors {
		registries = append(registries, registry)
	}
	sort.Strings(registries)

	logger.Info("Registry Mirrors:")
	for _, registry := range registries {
		logger.Infof("  %s => %s", registry, cfg.RegistryMirrors[registry])
	}
}
