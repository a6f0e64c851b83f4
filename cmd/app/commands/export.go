package commands

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// exportedRecipe is the YAML shape of one recipe, mirroring the JSON document.
type exportedRecipe struct {
	Layers []string `yaml:"layers"`
}

// RunExport writes every stored recipe in the recipes.json shape, as JSON or YAML.
func RunExport(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format, FormatJSON, FormatYAML); err != nil {
		return err
	}

	recipes, err := useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	if format == FormatJSON {
		book := make(recipeDomain.RecipeBook, len(recipes))
		for _, named := range recipes {
			book[named.Name] = named.Recipe
		}
		return writeJSON(writer, book)
	}

	doc := make(map[string]exportedRecipe, len(recipes))
	for _, named := range recipes {
		doc[named.Name] = exportedRecipe{Layers: named.Recipe.Names()}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = writer.Write(data)
	return err
}
