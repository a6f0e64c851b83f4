package service

import (
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

type chainExecutor struct{}

// NewChainExecutor creates the hash chain executor.
func NewChainExecutor() ChainExecutor {
	return &chainExecutor{}
}

// Execute implements ChainExecutor.
func (e *chainExecutor) Execute(recipe recipeDomain.Recipe, input string) string {
	running := input
	for _, alg := range recipe.Layers {
		running = applyLayer(alg, running)
	}
	return running
}

// Trace implements ChainExecutor.
func (e *chainExecutor) Trace(recipe recipeDomain.Recipe, input string) []recipeDomain.LayerResult {
	results := make([]recipeDomain.LayerResult, 0, len(recipe.Layers))
	running := input
	for i, alg := range recipe.Layers {
		running = applyLayer(alg, running)
		results = append(results, recipeDomain.LayerResult{
			Index:     i,
			Algorithm: alg,
			Output:    running,
		})
	}
	return results
}

// applyLayer hashes the UTF-8 bytes of value with a fresh digest and returns the hex
// text that the next layer consumes.
func applyLayer(alg recipeDomain.Algorithm, value string) string {
	d := NewDigest(alg)
	_, _ = d.Write([]byte(value))
	return d.Sum().Hex()
}
