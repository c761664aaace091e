package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const homeEnv = "DOCKERPHILE_HOME"

type Config struct {
	// DefaultOutput is the output format used by inspect when --output is not given.
	DefaultOutput string `toml:"default-output,omitempty"`
	// DefaultBaseImage is the base image used by new when --from is not given.
	DefaultBaseImage string `toml:"default-base-image,omitempty"`
	// IgnoreFile overrides the .dockerignore looked up next to each Dockerfile by validate.
	IgnoreFile string `toml:"ignore-file,omitempty"`
	// RegistryMirrors maps a registry host, or "*" for every registry, to the
	// mirror new writes into FROM.
	RegistryMirrors map[string]string `toml:"registry-mirrors,omitempty"`
}

func DefaultConfigPath() (string, error) {
	home, err := DockerphileHome()
	if err != nil {
		return "", errors.Wrap(err, "getting dockerphile home")
	}
	return filepath.Join(home, "config.toml"), nil
}

// DockerphileHome is $DOCKERPHILE_HOME, or ~/.dockerphile when unset.
func DockerphileHome() (string, error) {
	home := os.Getenv(homeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "getting user home")
		}
		home = filepath.Join(userHome, ".dockerphile")
	}
	return home, nil
}

// Read loads the config at path. A missing file yields the zero Config. Keys
// the Config does not define are returned formatted for display.
func Read(path string) (Config, string, error) {
	cfg := Config{}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, "", nil
		}
		return Config{}, "", errors.Wrapf(err, "failed to read config file at path %s", path)
	}

	return cfg, ParseUndecodedKeys(md.Undecoded()), nil
}

func Write(cfg Config, path string) error {
	if err := MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	return toml.NewEncoder(w).Encode(cfg)
}

func MkdirAll(path string) error {
	return os.MkdirAll(path, 0750)
}
