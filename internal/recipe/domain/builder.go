package domain

import "slices"

// Builder assembles a recipe one layer at a time, the way the interactive menu does.
//
// Cancel discards everything appended so far and no partial recipe is ever handed
// to persistence. Submit produces an immutable NamedRecipe.
type Builder struct {
	layers    []Algorithm
	cancelled bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{layers: []Algorithm{}}
}

// Add appends a layer.
func (b *Builder) Add(alg Algorithm) error {
	if b.cancelled {
		return ErrRecipeCancelled
	}
	if !alg.Valid() {
		return &UnknownAlgorithmError{Name: alg.String()}
	}
	b.layers = append(b.layers, alg)
	return nil
}

// AddName resolves a display name and appends it.
func (b *Builder) AddName(name string) error {
	alg, err := ResolveAlgorithm(name)
	if err != nil {
		return err
	}
	return b.Add(alg)
}

// Recipe returns a snapshot of the layers appended so far.
func (b *Builder) Recipe() Recipe {
	return Recipe{Layers: slices.Clone(b.layers)}
}

// Cancel drops the in-progress recipe. The builder refuses further use.
func (b *Builder) Cancel() {
	b.layers = nil
	b.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (b *Builder) Cancelled() bool {
	return b.cancelled
}

// Submit finalizes the recipe under name.
func (b *Builder) Submit(name string) (NamedRecipe, error) {
	if b.cancelled {
		return NamedRecipe{}, ErrRecipeCancelled
	}
	if err := ValidateRecipeName(name); err != nil {
		return NamedRecipe{}, err
	}
	return NamedRecipe{Name: name, Recipe: b.Recipe()}, nil
}
