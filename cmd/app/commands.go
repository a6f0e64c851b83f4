package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/shepatra/internal/app"
	"github.com/allisson/shepatra/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getRecipeCommands()...)
	return cmds
}

// newCLIContainer builds a container whose logs go to stderr, keeping stdout for
// command output.
func newCLIContainer() *app.Container {
	return app.NewContainer(config.Load(), app.WithLogOutput(os.Stderr))
}

func formatFlag(value, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   value,
		Usage:   usage,
	}
}
