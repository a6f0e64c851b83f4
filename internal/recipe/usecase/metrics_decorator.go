package usecase

import (
	"context"
	"time"

	"github.com/allisson/shepatra/internal/metrics"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

const metricsDomain = "recipes"

// recipeUseCaseWithMetrics decorates RecipeUseCase with metrics instrumentation.
type recipeUseCaseWithMetrics struct {
	next    RecipeUseCase
	metrics metrics.BusinessMetrics
}

// NewRecipeUseCaseWithMetrics wraps a RecipeUseCase with metrics recording.
func NewRecipeUseCaseWithMetrics(useCase RecipeUseCase, m metrics.BusinessMetrics) RecipeUseCase {
	return &recipeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *recipeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	r.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Create records metrics for recipe creation operations.
func (r *recipeUseCaseWithMetrics) Create(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	start := time.Now()
	named, err := r.next.Create(ctx, name, recipe)
	r.record(ctx, "recipe_create", start, err)
	return named, err
}

// Replace records metrics for recipe replace operations.
func (r *recipeUseCaseWithMetrics) Replace(
	ctx context.Context,
	name string,
	recipe recipeDomain.Recipe,
) (*recipeDomain.NamedRecipe, error) {
	start := time.Now()
	named, err := r.next.Replace(ctx, name, recipe)
	r.record(ctx, "recipe_replace", start, err)
	return named, err
}

// Get records metrics for recipe retrieval operations.
func (r *recipeUseCaseWithMetrics) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	start := time.Now()
	named, err := r.next.Get(ctx, name)
	r.record(ctx, "recipe_get", start, err)
	return named, err
}

// List records metrics for recipe listing operations.
func (r *recipeUseCaseWithMetrics) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	start := time.Now()
	recipes, err := r.next.List(ctx)
	r.record(ctx, "recipe_list", start, err)
	return recipes, err
}

// Delete records metrics for recipe deletion operations.
func (r *recipeUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := r.next.Delete(ctx, name)
	r.record(ctx, "recipe_delete", start, err)
	return err
}

// Hash records metrics for hashing operations.
func (r *recipeUseCaseWithMetrics) Hash(ctx context.Context, name, input string) (string, error) {
	start := time.Now()
	r.metrics.RecordInputSize(ctx, metricsDomain, "recipe_hash", len(input))
	out, err := r.next.Hash(ctx, name, input)
	r.record(ctx, "recipe_hash", start, err)
	return out, err
}

// Trace records metrics for traced hashing operations.
func (r *recipeUseCaseWithMetrics) Trace(
	ctx context.Context,
	name, input string,
) ([]recipeDomain.LayerResult, error) {
	start := time.Now()
	r.metrics.RecordInputSize(ctx, metricsDomain, "recipe_trace", len(input))
	results, err := r.next.Trace(ctx, name, input)
	r.record(ctx, "recipe_trace", start, err)
	return results, err
}
