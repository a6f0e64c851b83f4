package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/shepatra/internal/database"
	apperrors "github.com/allisson/shepatra/internal/errors"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// PostgreSQLRecipeRepository implements recipe persistence for PostgreSQL databases.
type PostgreSQLRecipeRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecipeRepository creates a new PostgreSQL recipe repository.
func NewPostgreSQLRecipeRepository(db *sql.DB) *PostgreSQLRecipeRepository {
	return &PostgreSQLRecipeRepository{db: db}
}

// Create inserts a new recipe.
func (p *PostgreSQLRecipeRepository) Create(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	querier := database.GetTx(ctx, p.db)

	layers, err := encodeLayers(recipe.Recipe)
	if err != nil {
		return err
	}

	query := `INSERT INTO recipes (name, layers, created_at, updated_at)
			  VALUES ($1, $2, NOW(), NOW())`

	if _, err := querier.ExecContext(ctx, query, recipe.Name, layers); err != nil {
		if isUniqueViolation(err) {
			return recipeDomain.ErrRecipeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create recipe")
	}
	return nil
}

// Update overwrites the layers of an existing recipe.
func (p *PostgreSQLRecipeRepository) Update(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	querier := database.GetTx(ctx, p.db)

	layers, err := encodeLayers(recipe.Recipe)
	if err != nil {
		return err
	}

	query := `UPDATE recipes SET layers = $1, updated_at = NOW() WHERE name = $2`

	result, err := querier.ExecContext(ctx, query, layers, recipe.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update recipe")
	}
	return requireAffected(result, "failed to update recipe")
}

// Get retrieves a recipe by name.
func (p *PostgreSQLRecipeRepository) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT layers FROM recipes WHERE name = $1`

	var column string
	if err := querier.QueryRowContext(ctx, query, name).Scan(&column); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recipeDomain.ErrRecipeNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recipe")
	}

	recipe, err := decodeLayers(name, column)
	if err != nil {
		return nil, err
	}
	return &recipeDomain.NamedRecipe{Name: name, Recipe: recipe}, nil
}

// List retrieves all recipes ordered by name.
func (p *PostgreSQLRecipeRepository) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name, layers FROM recipes ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipes")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecipes(rows)
}

// Delete removes a recipe by name.
func (p *PostgreSQLRecipeRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM recipes WHERE name = $1`

	result, err := querier.ExecContext(ctx, query, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete recipe")
	}
	return requireAffected(result, "failed to delete recipe")
}

// requireAffected maps a statement that touched no row to ErrRecipeNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return recipeDomain.ErrRecipeNotFound
	}
	return nil
}
