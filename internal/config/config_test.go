package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/dockerphile/internal/config"
	h "github.com/buildpacks/dockerphile/testhelpers"
)

func TestConfig(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "config", testConfig, spec.Report(report.Terminal{}))
}

func testConfig(t *testing.T, when spec.G, it spec.S) {
	var (
		tmpDir     string
		configPath string
	)

	it.Before(func() {
		tmpDir = t.TempDir()
		configPath = filepath.Join(tmpDir, "config.toml")
	})

	when("#Read", func() {
		when("no config on disk", func() {
			it("returns an empty config", func() {
				cfg, unknown, err := config.Read(configPath)
				h.AssertNil(t, err)
				h.AssertEq(t, cfg, config.Config{})
				h.AssertEq(t, unknown, "")
			})
		})

		when("config on disk", func() {
			it("reads known keys and reports the others", func() {
				h.WriteFile(t, tmpDir, "config.toml", `
default-output = "yaml"
default-base-image = "alpine:3.19"
colour = true

[registries]
  default = "docker.io"
`)
				cfg, unknown, err := config.Read(configPath)
				h.AssertNil(t, err)
				h.AssertEq(t, cfg.DefaultOutput, "yaml")
				h.AssertEq(t, cfg.DefaultBaseImage, "alpine:3.19")
				h.AssertEq(t, unknown, "'colour', 'registries'")
			})

			it("fails on invalid toml", func() {
				h.WriteFile(t, tmpDir, "config.toml", "default-output = \n")
				_, _, err := config.Read(configPath)
				h.AssertError(t, err, "failed to read config file at path")
			})
		})
	})

	when("#Write", func() {
		it("round trips through Read", func() {
			path := filepath.Join(tmpDir, "a", "b", "config.toml")
			cfg := config.Config{DefaultOutput: "json", IgnoreFile: "/src/.dockerignore"}
			h.AssertNil(t, config.Write(cfg, path))

			read, _, err := config.Read(path)
			h.AssertNil(t, err)
			h.AssertEq(t, read, cfg)
		})

		it("omits unset keys", func() {
			h.AssertNil(t, config.Write(config.Config{DefaultBaseImage: "alpine"}, configPath))
			h.AssertFileContents(t, configPath, "default-base-image = \"alpine\"\n")
		})
	})

	when("#DefaultConfigPath", func() {
		it("uses DOCKERPHILE_HOME", func() {
			t.Setenv("DOCKERPHILE_HOME", tmpDir)
			path, err := config.DefaultConfigPath()
			h.AssertNil(t, err)
			h.AssertEq(t, path, filepath.Join(tmpDir, "config.toml"))
		})

		it("falls back to the user home", func() {
			t.Setenv("DOCKERPHILE_HOME", "")
			home, err := os.UserHomeDir()
			h.AssertNil(t, err)

			path, err := config.DefaultConfigPath()
			h.AssertNil(t, err)
			h.AssertEq(t, path, filepath.Join(home, ".dockerphile", "config.toml"))
		})
	})
}
