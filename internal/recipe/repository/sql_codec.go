package repository

import (
	"database/sql"
	"encoding/json"
	"strings"

	apperrors "github.com/allisson/shepatra/internal/errors"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// encodeLayers renders the layers column: a JSON array of canonical names.
func encodeLayers(recipe recipeDomain.Recipe) (string, error) {
	data, err := json.Marshal(recipe.Names())
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode recipe layers")
	}
	return string(data), nil
}

// decodeLayers parses a layers column. Unknown names are reported against the recipe.
func decodeLayers(name, column string) (recipeDomain.Recipe, error) {
	var names []string
	if err := json.Unmarshal([]byte(column), &names); err != nil {
		return recipeDomain.Recipe{}, apperrors.Wrapf(err, "failed to decode layers of recipe %q", name)
	}

	layers, err := recipeDomain.ParseLayers(name, names)
	if err != nil {
		return recipeDomain.Recipe{}, err
	}
	return recipeDomain.Recipe{Layers: layers}, nil
}

func scanRecipes(rows *sql.Rows) ([]*recipeDomain.NamedRecipe, error) {
	recipes := make([]*recipeDomain.NamedRecipe, 0)
	for rows.Next() {
		var name, column string
		if err := rows.Scan(&name, &column); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan recipe")
		}

		recipe, err := decodeLayers(name, column)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, &recipeDomain.NamedRecipe{Name: name, Recipe: recipe})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recipes")
	}
	return recipes, nil
}

// isUniqueViolation reports a duplicate primary key on either supported database.
// PostgreSQL: "duplicate key value violates unique constraint"
// MySQL: "Error 1062 (23000): Duplicate entry"
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}
