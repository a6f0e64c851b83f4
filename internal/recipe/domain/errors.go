package domain

import (
	"fmt"

	"github.com/allisson/shepatra/internal/errors"
)

// Recipe error definitions.
//
// These wrap the shared errors from internal/errors so that the HTTP layer can map
// them to status codes without knowing about recipes.
var (
	// ErrUnknownAlgorithm indicates a textual algorithm name matched neither a canonical
	// nor a legacy display name. Returned wrapped in *UnknownAlgorithmError.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnknownAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unknown algorithm")

	// ErrRecipeNotFound indicates no recipe is stored under the requested name.
	//
	// HTTP Status: 404 Not Found
	ErrRecipeNotFound = errors.Wrap(errors.ErrNotFound, "recipe not found")

	// ErrRecipeAlreadyExists indicates a recipe with the same name is already stored.
	//
	// HTTP Status: 409 Conflict
	ErrRecipeAlreadyExists = errors.Wrap(errors.ErrConflict, "recipe already exists")

	// ErrInvalidRecipeName indicates the recipe name is blank, padded with whitespace,
	// or longer than MaxRecipeNameLength.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidRecipeName = errors.Wrap(errors.ErrInvalidInput, "invalid recipe name")

	// ErrRecipeCancelled indicates a Builder was used after Cancel.
	ErrRecipeCancelled = errors.Wrap(errors.ErrInvalidInput, "recipe was cancelled")

	// ErrInputTooLong indicates the text to hash exceeds MaxInputSize bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInputTooLong = errors.Wrap(errors.ErrInvalidInput, "input exceeds maximum size")
)

// UnknownAlgorithmError reports an algorithm name that could not be resolved, together
// with the recipe it was found in (empty when resolved outside of a recipe).
type UnknownAlgorithmError struct {
	Name   string
	Recipe string
}

func (e *UnknownAlgorithmError) Error() string {
	if e.Recipe == "" {
		return fmt.Sprintf("unknown algorithm %q", e.Name)
	}
	return fmt.Sprintf("unknown algorithm %q in recipe %q", e.Name, e.Recipe)
}

// Unwrap exposes ErrUnknownAlgorithm (and through it errors.ErrInvalidInput).
func (e *UnknownAlgorithmError) Unwrap() error {
	return ErrUnknownAlgorithm
}
