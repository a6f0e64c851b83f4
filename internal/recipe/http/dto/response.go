package dto

import (
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// RecipeResponse represents a stored recipe in API responses.
type RecipeResponse struct {
	Name        string   `json:"name"`
	Layers      []string `json:"layers"`
	Fingerprint string   `json:"fingerprint"`
}

// ListRecipesResponse represents a page of recipes in API responses.
type ListRecipesResponse struct {
	Data []RecipeResponse `json:"data"`
}

// AlgorithmResponse describes one supported digest algorithm.
type AlgorithmResponse struct {
	Name       string `json:"name"`
	DigestSize int    `json:"digest_size"`
}

// ListAlgorithmsResponse lists algorithms in registry order.
type ListAlgorithmsResponse struct {
	Data []AlgorithmResponse `json:"data"`
}

// LayerResponse is the running value after one layer of a traced hash.
type LayerResponse struct {
	Index     int    `json:"index"`
	Algorithm string `json:"algorithm"`
	Output    string `json:"output"`
}

// HashResponse is the result of hashing an input with a recipe.
type HashResponse struct {
	Recipe string          `json:"recipe"`
	Digest string          `json:"digest"`
	Layers []LayerResponse `json:"layers,omitempty"`
}

// MapRecipeToResponse converts a domain recipe to an API response.
func MapRecipeToResponse(recipe *recipeDomain.NamedRecipe) RecipeResponse {
	return RecipeResponse{
		Name:        recipe.Name,
		Layers:      recipe.Recipe.Names(),
		Fingerprint: recipe.Recipe.Fingerprint().String(),
	}
}

// MapRecipesToListResponse converts domain recipes to a list response.
func MapRecipesToListResponse(recipes []*recipeDomain.NamedRecipe) ListRecipesResponse {
	data := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		data = append(data, MapRecipeToResponse(recipe))
	}
	return ListRecipesResponse{Data: data}
}

// MapAlgorithmsToListResponse converts algorithms to a list response.
func MapAlgorithmsToListResponse(algorithms []recipeDomain.Algorithm) ListAlgorithmsResponse {
	data := make([]AlgorithmResponse, 0, len(algorithms))
	for _, alg := range algorithms {
		data = append(data, AlgorithmResponse{Name: alg.String(), DigestSize: alg.Size()})
	}
	return ListAlgorithmsResponse{Data: data}
}

// MapTraceToHashResponse builds a hash response that includes every layer. The digest is
// the output of the last layer, or input for an empty recipe.
func MapTraceToHashResponse(name, input string, trace []recipeDomain.LayerResult) HashResponse {
	resp := HashResponse{
		Recipe: name,
		Digest: input,
		Layers: make([]LayerResponse, 0, len(trace)),
	}
	for _, step := range trace {
		resp.Layers = append(resp.Layers, LayerResponse{
			Index:     step.Index,
			Algorithm: step.Algorithm.String(),
			Output:    step.Output,
		})
		resp.Digest = step.Output
	}
	return resp
}
