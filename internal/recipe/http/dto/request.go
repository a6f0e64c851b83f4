// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	customValidation "github.com/allisson/shepatra/internal/validation"
)

// algorithmName accepts canonical and legacy display names.
var algorithmName = validation.By(func(value any) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_algorithm_type", "must be a string")
	}
	if _, err := recipeDomain.ResolveAlgorithm(name); err != nil {
		return validation.NewError("validation_algorithm", err.Error())
	}
	return nil
})

// CreateRecipeRequest contains the parameters for creating a recipe.
type CreateRecipeRequest struct {
	Name   string   `json:"name"`
	Layers []string `json:"layers"`
}

// Validate checks if the create recipe request is valid.
func (r *CreateRecipeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.RuneLength(1, recipeDomain.MaxRecipeNameLength),
		),
		validation.Field(&r.Layers, validation.Each(algorithmName)),
	)
}

// Recipe converts the requested layer names into a recipe.
func (r *CreateRecipeRequest) Recipe() (recipeDomain.Recipe, error) {
	return toRecipe(r.Name, r.Layers)
}

// ReplaceRecipeRequest contains the parameters for replacing a recipe.
// The name is extracted from the URL parameter, not the request body.
type ReplaceRecipeRequest struct {
	Layers []string `json:"layers"`
}

// Validate checks if the replace recipe request is valid.
func (r *ReplaceRecipeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Layers, validation.Each(algorithmName)),
	)
}

// Recipe converts the requested layer names into a recipe.
func (r *ReplaceRecipeRequest) Recipe(name string) (recipeDomain.Recipe, error) {
	return toRecipe(name, r.Layers)
}

// HashRequest contains the text to hash with a stored recipe.
type HashRequest struct {
	Input string `json:"input"`
	Trace bool   `json:"trace"`
}

// Validate checks if the hash request is valid. An empty input is allowed.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Input, customValidation.MaxBytes(recipeDomain.MaxInputSize)),
	)
}

func toRecipe(name string, names []string) (recipeDomain.Recipe, error) {
	layers, err := recipeDomain.ParseLayers(name, names)
	if err != nil {
		return recipeDomain.Recipe{}, err
	}
	return recipeDomain.Recipe{Layers: layers}, nil
}
