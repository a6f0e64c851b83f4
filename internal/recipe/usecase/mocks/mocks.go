// Package mocks provides mock implementations of the recipe use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// MockRecipeRepository is a mock implementation of RecipeRepository for testing.
type MockRecipeRepository struct {
	mock.Mock
}

// Create mocks the Create method of RecipeRepository.
func (m *MockRecipeRepository) Create(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// Update mocks the Update method of RecipeRepository.
func (m *MockRecipeRepository) Update(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// Get mocks the Get method of RecipeRepository.
func (m *MockRecipeRepository) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipeDomain.NamedRecipe), args.Error(1)
}

// List mocks the List method of RecipeRepository.
func (m *MockRecipeRepository) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipeDomain.NamedRecipe), args.Error(1)
}

// Delete mocks the Delete method of RecipeRepository.
func (m *MockRecipeRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockRecipeUseCase is a mock implementation of RecipeUseCase for testing.
type MockRecipeUseCase struct {
	mock.Mock
}

// Create mocks the Create method of RecipeUseCase.
func (m *MockRecipeUseCase) Create(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx, name, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipeDomain.NamedRecipe), args.Error(1)
}

// Replace mocks the Replace method of RecipeUseCase.
func (m *MockRecipeUseCase) Replace(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx, name, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipeDomain.NamedRecipe), args.Error(1)
}

// Get mocks the Get method of RecipeUseCase.
func (m *MockRecipeUseCase) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipeDomain.NamedRecipe), args.Error(1)
}

// List mocks the List method of RecipeUseCase.
func (m *MockRecipeUseCase) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipeDomain.NamedRecipe), args.Error(1)
}

// Delete mocks the Delete method of RecipeUseCase.
func (m *MockRecipeUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Hash mocks the Hash method of RecipeUseCase.
func (m *MockRecipeUseCase) Hash(ctx context.Context, name, input string) (string, error) {
	args := m.Called(ctx, name, input)
	return args.String(0), args.Error(1)
}

// Trace mocks the Trace method of RecipeUseCase.
func (m *MockRecipeUseCase) Trace(
	ctx context.Context,
	name, input string,
) ([]recipeDomain.LayerResult, error) {
	args := m.Called(ctx, name, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipeDomain.LayerResult), args.Error(1)
}
