// Package usecase defines the interfaces and implementations for recipe management and
// hashing use cases. Use cases resolve stored recipes through a repository and hand them
// to the chain executor.
package usecase

import (
	"context"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// RecipeRepository defines the interface for recipe persistence operations.
type RecipeRepository interface {
	// Create stores a new recipe. Returns ErrRecipeAlreadyExists if the name is taken.
	Create(ctx context.Context, recipe *recipeDomain.NamedRecipe) error
	// Update overwrites the layers of an existing recipe. Returns ErrRecipeNotFound if absent.
	Update(ctx context.Context, recipe *recipeDomain.NamedRecipe) error
	Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error)
	// List returns all recipes ordered by name.
	List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error)
	Delete(ctx context.Context, name string) error
}

// RecipeUseCase defines the interface for recipe management and hashing business logic.
type RecipeUseCase interface {
	Create(ctx context.Context, name string, recipe recipeDomain.Recipe) (*recipeDomain.NamedRecipe, error)
	// Replace creates the recipe or overwrites the one already stored under name.
	Replace(ctx context.Context, name string, recipe recipeDomain.Recipe) (*recipeDomain.NamedRecipe, error)
	Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error)
	List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error)
	Delete(ctx context.Context, name string) error
	// Hash applies the named recipe to input and returns the final digest text.
	Hash(ctx context.Context, name, input string) (string, error)
	// Trace is like Hash but returns the output of every layer.
	Trace(ctx context.Context, name, input string) ([]recipeDomain.LayerResult, error)
}
