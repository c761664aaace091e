package cmd

// Version is set at build time with
// -ldflags "-X github.com/buildpacks/dockerphile/cmd.Version=<version>".
var Version = "0.0.0"
