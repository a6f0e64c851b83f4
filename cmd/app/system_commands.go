package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/shepatra/cmd/app/commands"
	"github.com/allisson/shepatra/internal/app"
	"github.com/allisson/shepatra/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the recipe API server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, app.NewContainer(config.Load()), version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the SQL recipe store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "dir",
					Value: commands.MigrationsDir,
					Usage: "Directory holding the postgresql and mysql migrations",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				cfg := container.Config()
				return commands.RunMigrations(
					container.Logger(),
					cfg.DBDriver,
					cfg.DBConnectionString,
					cmd.String("dir"),
				)
			},
		},
		{
			Name:  "shell",
			Usage: "Make recipes and hashed passwords interactively",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := newCLIContainer()
				defer func() { _ = container.Shutdown(ctx) }()

				texts, err := container.I18n()
				if err != nil {
					return err
				}

				recipeUseCase, err := container.RecipeUseCase()
				if err != nil {
					return err
				}

				return commands.RunShell(ctx, recipeUseCase, texts, commands.DefaultIO())
			},
		},
		{
			Name:  "algorithms",
			Usage: "List the hash algorithms available as recipe layers",
			Flags: []cli.Flag{
				formatFlag(commands.FormatText, "Output format: 'text' or 'json'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunAlgorithms(commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}
