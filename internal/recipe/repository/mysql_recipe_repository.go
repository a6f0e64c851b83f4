package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/shepatra/internal/database"
	apperrors "github.com/allisson/shepatra/internal/errors"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// MySQLRecipeRepository implements recipe persistence for MySQL databases.
type MySQLRecipeRepository struct {
	db *sql.DB
}

// NewMySQLRecipeRepository creates a new MySQL recipe repository.
func NewMySQLRecipeRepository(db *sql.DB) *MySQLRecipeRepository {
	return &MySQLRecipeRepository{db: db}
}

// Create inserts a new recipe.
func (m *MySQLRecipeRepository) Create(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	querier := database.GetTx(ctx, m.db)

	layers, err := encodeLayers(recipe.Recipe)
	if err != nil {
		return err
	}

	query := `INSERT INTO recipes (name, layers, created_at, updated_at)
			  VALUES (?, ?, NOW(), NOW())`

	if _, err := querier.ExecContext(ctx, query, recipe.Name, layers); err != nil {
		if isUniqueViolation(err) {
			return recipeDomain.ErrRecipeAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create recipe")
	}
	return nil
}

// Update overwrites the layers of an existing recipe.
//
// MySQL reports zero affected rows when the new values equal the stored ones, so a zero
// count is confirmed with an existence check before reporting ErrRecipeNotFound.
func (m *MySQLRecipeRepository) Update(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	querier := database.GetTx(ctx, m.db)

	layers, err := encodeLayers(recipe.Recipe)
	if err != nil {
		return err
	}

	query := `UPDATE recipes SET layers = ?, updated_at = NOW() WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, layers, recipe.Name)
	if err != nil {
		return apperrors.Wrap(err, "failed to update recipe")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update recipe")
	}
	if affected > 0 {
		return nil
	}

	var exists int
	err = querier.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE name = ?`, recipe.Name).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return recipeDomain.ErrRecipeNotFound
		}
		return apperrors.Wrap(err, "failed to update recipe")
	}
	return nil
}

// Get retrieves a recipe by name.
func (m *MySQLRecipeRepository) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT layers FROM recipes WHERE name = ?`

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
func (m *MySQLRecipeRepository) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLRecipeRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM recipes WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete recipe")
	}
	return requireAffected(result, "failed to delete recipe")
}
