// Package service implements the hash chain engine: the digest registry that maps each
// algorithm to a fresh digest computation, and the executor that folds a recipe over
// an input string.
package service

import (
	"io"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

// Digest is a single-use digest computation for one layer.
// Write never returns an error.
type Digest interface {
	io.Writer

	// Sum finalizes the computation. A Digest must not be written to after Sum.
	Sum() Sum
}

// Sum is the finalized output of a Digest.
type Sum interface {
	// Hex returns the digest as lowercase hexadecimal, two digits per byte.
	Hex() string
}

// ChainExecutor applies recipes to text.
//
// Implementations are pure: no shared mutable state, safe for concurrent use.
type ChainExecutor interface {
	// Execute applies every layer of recipe to input in order and returns the final
	// running value. An empty recipe returns input unchanged.
	Execute(recipe recipeDomain.Recipe, input string) string

	// Trace is like Execute but returns the running value after every layer.
	Trace(recipe recipeDomain.Recipe, input string) []recipeDomain.LayerResult
}
