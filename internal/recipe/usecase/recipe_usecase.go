package usecase

import (
	"context"
	"errors"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	recipeService "github.com/allisson/shepatra/internal/recipe/service"
)

// recipeUseCase implements the RecipeUseCase interface.
type recipeUseCase struct {
	recipeRepo RecipeRepository
	executor   recipeService.ChainExecutor
}

// Create validates and stores a new recipe.
func (r *recipeUseCase) Create(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	named, err := newNamedRecipe(name, recipe)
	if err != nil {
		return nil, err
	}

	if err := r.recipeRepo.Create(ctx, named); err != nil {
		return nil, err
	}

	return named, nil
}

// Replace stores the recipe under name, overwriting any previous layers.
func (r *recipeUseCase) Replace(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	named, err := newNamedRecipe(name, recipe)
	if err != nil {
		return nil, err
	}

	err = r.recipeRepo.Update(ctx, named)
	if errors.Is(err, recipeDomain.ErrRecipeNotFound) {
		err = r.recipeRepo.Create(ctx, named)
		// Lost a race with a concurrent create, overwrite it.
		if errors.Is(err, recipeDomain.ErrRecipeAlreadyExists) {
			err = r.recipeRepo.Update(ctx, named)
		}
	}
	if err != nil {
		return nil, err
	}

	return named, nil
}

// Get retrieves a recipe by name.
func (r *recipeUseCase) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	return r.recipeRepo.Get(ctx, name)
}

// List retrieves all recipes ordered by name.
func (r *recipeUseCase) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	return r.recipeRepo.List(ctx)
}

// Delete removes a recipe by name.
func (r *recipeUseCase) Delete(ctx context.Context, name string) error {
	return r.recipeRepo.Delete(ctx, name)
}

// Hash resolves the recipe and runs it over input.
func (r *recipeUseCase) Hash(ctx context.Context, name, input string) (string, error) {
	named, err := r.resolve(ctx, name, input)
	if err != nil {
		return "", err
	}

	return r.executor.Execute(named.Recipe, input), nil
}

// Trace resolves the recipe and runs it over input, keeping every intermediate value.
func (r *recipeUseCase) Trace(
	ctx context.Context,
	name, input string,
) ([]recipeDomain.LayerResult, error) {
	named, err := r.resolve(ctx, name, input)
	if err != nil {
		return nil, err
	}

	return r.executor.Trace(named.Recipe, input), nil
}

// resolve checks the input and loads the recipe before any digest is computed, so a
// failed lookup never yields a partial result.
func (r *recipeUseCase) resolve(
	ctx context.Context,
	name, input string,
) (*recipeDomain.NamedRecipe, error) {
	if len(input) > recipeDomain.MaxInputSize {
		return nil, recipeDomain.ErrInputTooLong
	}
	if err := recipeDomain.ValidateRecipeName(name); err != nil {
		return nil, err
	}

	return r.recipeRepo.Get(ctx, name)
}

func newNamedRecipe(name string, recipe recipeDomain.Recipe) (*recipeDomain.NamedRecipe, error) {
	if err := recipeDomain.ValidateRecipeName(name); err != nil {
		return nil, err
	}

	validated, err := recipeDomain.NewRecipe(recipe.Layers...)
	if err != nil {
		return nil, err
	}

	return &recipeDomain.NamedRecipe{Name: name, Recipe: validated}, nil
}

// NewRecipeUseCase creates a new recipe use case instance with the provided dependencies.
func NewRecipeUseCase(recipeRepo RecipeRepository, executor recipeService.ChainExecutor) RecipeUseCase {
	return &recipeUseCase{
		recipeRepo: recipeRepo,
		executor:   executor,
	}
}
