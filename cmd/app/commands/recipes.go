package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	"github.com/allisson/shepatra/internal/recipe/http/dto"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// RunRecipeCreate stores a new recipe. layers is a comma-separated list of algorithm
// names applied in order.
func RunRecipeCreate(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, layers, format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	recipe, err := parseLayersFlag(layers)
	if err != nil {
		return fmt.Errorf("invalid layers: %w", err)
	}

	named, err := useCase.Create(ctx, name, recipe)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	logger.Info("recipe created", slog.String("name", named.Name), slog.Int("layers", named.Recipe.Len()))
	return writeRecipe(writer, named, format)
}

// RunRecipeReplace creates the recipe or overwrites an existing one.
func RunRecipeReplace(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, layers, format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	recipe, err := parseLayersFlag(layers)
	if err != nil {
		return fmt.Errorf("invalid layers: %w", err)
	}

	named, err := useCase.Replace(ctx, name, recipe)
	if err != nil {
		return fmt.Errorf("failed to replace recipe: %w", err)
	}

	logger.Info("recipe replaced", slog.String("name", named.Name), slog.Int("layers", named.Recipe.Len()))
	return writeRecipe(writer, named, format)
}

// RunRecipeShow prints one recipe.
func RunRecipeShow(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	writer io.Writer,
	name, format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	named, err := useCase.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	return writeRecipe(writer, named, format)
}

// RunRecipeList prints every recipe, ordered by name.
func RunRecipeList(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	recipes, err := useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(writer, dto.MapRecipesToListResponse(recipes))
	}

	for _, named := range recipes {
		if _, err := fmt.Fprintf(writer, "%s\t%s\n", named.Name, layersText(named.Recipe)); err != nil {
			return err
		}
	}
	return nil
}

// RunRecipeDelete removes a recipe.
func RunRecipeDelete(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
) error {
	if err := useCase.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	logger.Info("recipe deleted", slog.String("name", name))
	_, err := fmt.Fprintf(writer, "Recipe %q deleted\n", name)
	return err
}

func writeRecipe(writer io.Writer, named *recipeDomain.NamedRecipe, format string) error {
	if format == FormatJSON {
		return writeJSON(writer, dto.MapRecipeToResponse(named))
	}

	_, err := fmt.Fprintf(writer, "Name:        %s\nLayers:      %s\nFingerprint: %s\n",
		named.Name, layersText(named.Recipe), named.Recipe.Fingerprint())
	return err
}

// layersText joins layer names with " -> ", or "(identity)" for the empty recipe.
func layersText(recipe recipeDomain.Recipe) string {
	if recipe.IsEmpty() {
		return "(identity)"
	}
	return strings.Join(recipe.Names(), " -> ")
}
