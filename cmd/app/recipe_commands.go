package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/shepatra/cmd/app/commands"
	"github.com/allisson/shepatra/internal/app"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// withRecipeUseCase runs fn with the recipe use case of a fresh container.
func withRecipeUseCase(
	ctx context.Context,
	fn func(useCase recipeUseCase.RecipeUseCase, container *app.Container) error,
) error {
	container := newCLIContainer()
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.RecipeUseCase()
	if err != nil {
		return err
	}
	return fn(useCase, container)
}

func getRecipeCommands() []*cli.Command {
	nameFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:     "name",
			Aliases:  []string{"n"},
			Required: true,
			Usage:    "Recipe name",
		}
	}
	layersFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:    "layers",
			Aliases: []string{"l"},
			Usage:   "Comma-separated algorithms applied in order (e.g., 'SHA-256,Blake3,SHA-512')",
		}
	}
	textOrJSON := "Output format: 'text' or 'json'"

	return []*cli.Command{
		{
			Name:  "recipe",
			Usage: "Manage stored recipes",
			Commands: []*cli.Command{
				{
					Name:  "create",
					Usage: "Create a new recipe",
					Flags: []cli.Flag{nameFlag(), layersFlag(), formatFlag(commands.FormatText, textOrJSON)},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, c *app.Container) error {
							return commands.RunRecipeCreate(ctx, uc, c.Logger(), commands.DefaultIO().Writer,
								cmd.String("name"), cmd.String("layers"), cmd.String("format"))
						})
					},
				},
				{
					Name:  "replace",
					Usage: "Create a recipe or overwrite an existing one",
					Flags: []cli.Flag{nameFlag(), layersFlag(), formatFlag(commands.FormatText, textOrJSON)},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, c *app.Container) error {
							return commands.RunRecipeReplace(ctx, uc, c.Logger(), commands.DefaultIO().Writer,
								cmd.String("name"), cmd.String("layers"), cmd.String("format"))
						})
					},
				},
				{
					Name:  "list",
					Usage: "List recipes ordered by name",
					Flags: []cli.Flag{formatFlag(commands.FormatText, textOrJSON)},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, _ *app.Container) error {
							return commands.RunRecipeList(ctx, uc, commands.DefaultIO().Writer, cmd.String("format"))
						})
					},
				},
				{
					Name:  "show",
					Usage: "Show one recipe",
					Flags: []cli.Flag{nameFlag(), formatFlag(commands.FormatText, textOrJSON)},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, _ *app.Container) error {
							return commands.RunRecipeShow(ctx, uc, commands.DefaultIO().Writer,
								cmd.String("name"), cmd.String("format"))
						})
					},
				},
				{
					Name:  "delete",
					Usage: "Delete a recipe",
					Flags: []cli.Flag{nameFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, c *app.Container) error {
							return commands.RunRecipeDelete(ctx, uc, c.Logger(), commands.DefaultIO().Writer,
								cmd.String("name"))
						})
					},
				},
			},
		},
		{
			Name:  "hash",
			Usage: "Hash a text with a stored recipe",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "recipe",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Recipe name",
				},
				&cli.StringFlag{
					Name:    "input",
					Aliases: []string{"i"},
					Usage:   "Text to hash (read from stdin when omitted)",
				},
				&cli.BoolFlag{
					Name:    "trace",
					Aliases: []string{"t"},
					Usage:   "Print the output of every layer",
				},
				formatFlag(commands.FormatText, textOrJSON),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, _ *app.Container) error {
					return commands.RunHash(ctx, uc, commands.DefaultIO(), commands.HashOptions{
						Recipe:   cmd.String("recipe"),
						Input:    cmd.String("input"),
						InputSet: cmd.IsSet("input"),
						Trace:    cmd.Bool("trace"),
						Format:   cmd.String("format"),
					})
				})
			},
		},
		{
			Name:  "export",
			Usage: "Export every recipe in the recipes.json layout",
			Flags: []cli.Flag{
				formatFlag(commands.FormatJSON, "Output format: 'json' or 'yaml'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRecipeUseCase(ctx, func(uc recipeUseCase.RecipeUseCase, _ *app.Container) error {
					return commands.RunExport(ctx, uc, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
	}
}
