package main

import (
	"os"

	"github.com/heroku/color"
	"golang.org/x/term"

	"github.com/buildpacks/dockerphile/cmd"
	"github.com/buildpacks/dockerphile/internal/commands"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

func main() {
	// output piped to a file or another program is left uncolored
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable(true)
	}

	logger := logging.NewLogWithWriters(color.Stdout(), color.Stderr())

	rootCmd, err := cmd.NewDockerphileCommand(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
