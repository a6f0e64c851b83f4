// Package domain defines the recipe domain model: the closed set of supported digest
// algorithms, their stable display names, and the ordered recipes built from them.
package domain

import (
	"fmt"
	"slices"
)

// Algorithm identifies one supported digest function.
//
// The set is closed. Every value has exactly one canonical display name which is used
// both in persisted recipes and in selection menus; the mapping is bijective and must
// never change meaning between releases. Renamed spellings live in the alias table.
type Algorithm uint8

const (
	// SHA256 is SHA-256 (FIPS 180-4), 32-byte digest.
	SHA256 Algorithm = iota + 1
	// SHA512 is SHA-512 (FIPS 180-4), 64-byte digest.
	SHA512
	// SHA3_256 is SHA3-256 (FIPS 202), 32-byte digest.
	SHA3_256
	// SHA3_512 is SHA3-512 (FIPS 202), 64-byte digest.
	SHA3_512
	// BLAKE2b_512 is unkeyed BLAKE2b with a 64-byte digest (RFC 7693).
	BLAKE2b_512
	// BLAKE2s_256 is unkeyed BLAKE2s with a 32-byte digest (RFC 7693).
	BLAKE2s_256
	// BLAKE3 is BLAKE3 with its default 32-byte output.
	BLAKE3

	algorithmCount
)

type algorithmInfo struct {
	name string
	size int
}

// algorithms is indexed by Algorithm. A variant added above without an entry here
// leaves a zero entry behind, which init rejects.
var algorithms = [algorithmCount]algorithmInfo{
	SHA256:      {name: "SHA-256", size: 32},
	SHA512:      {name: "SHA-512", size: 64},
	SHA3_256:    {name: "SHA3-256", size: 32},
	SHA3_512:    {name: "SHA3-512", size: 64},
	BLAKE2b_512: {name: "Blake2b-512", size: 64},
	BLAKE2s_256: {name: "Blake2s-256", size: 32},
	BLAKE3:      {name: "Blake3", size: 32},
}

// legacyNames maps earlier spellings of display names to their algorithm. Entries may be
// added but never removed or repointed, so old recipes keep resolving.
var legacyNames = map[string]Algorithm{
	"SHA256":     SHA256,
	"SHA512":     SHA512,
	"SHA3_256":   SHA3_256,
	"SHA3_512":   SHA3_512,
	"Blake2b512": BLAKE2b_512,
	"BLAKE2b":    BLAKE2b_512,
	"Blake2s256": BLAKE2s_256,
	"BLAKE2s":    BLAKE2s_256,
	"BLAKE3":     BLAKE3,
}

var canonicalNames map[string]Algorithm

func init() {
	canonicalNames = make(map[string]Algorithm, len(algorithms))
	for _, alg := range Algorithms() {
		info := algorithms[alg]
		if info.name == "" || info.size == 0 {
			panic(fmt.Sprintf("recipe: algorithm %d has no registry entry", alg))
		}
		if _, dup := canonicalNames[info.name]; dup {
			panic(fmt.Sprintf("recipe: duplicate algorithm name %q", info.name))
		}
		canonicalNames[info.name] = alg
	}
	for alias := range legacyNames {
		if _, clash := canonicalNames[alias]; clash {
			panic(fmt.Sprintf("recipe: alias %q shadows a canonical name", alias))
		}
	}
}

// Algorithms returns every supported algorithm in enumeration order.
// The returned slice is a fresh copy on every call.
func Algorithms() []Algorithm {
	all := make([]Algorithm, 0, algorithmCount-1)
	for alg := SHA256; alg < algorithmCount; alg++ {
		all = append(all, alg)
	}
	return all
}

// AlgorithmNames returns the canonical display names in enumeration order.
func AlgorithmNames() []string {
	all := Algorithms()
	names := make([]string, len(all))
	for i, alg := range all {
		names[i] = alg.String()
	}
	return names
}

// ResolveAlgorithm maps a canonical or legacy display name to its algorithm.
// Matching is exact and case-sensitive; anything else yields *UnknownAlgorithmError.
func ResolveAlgorithm(name string) (Algorithm, error) {
	if alg, ok := canonicalNames[name]; ok {
		return alg, nil
	}
	if alg, ok := legacyNames[name]; ok {
		return alg, nil
	}
	return 0, &UnknownAlgorithmError{Name: name}
}

// ParseLayers resolves a list of display names into recipe layers. Resolution stops at
// the first unknown name, and the error names both that entry and the recipe.
func ParseLayers(recipeName string, names []string) ([]Algorithm, error) {
	layers := make([]Algorithm, 0, len(names))
	for _, name := range names {
		alg, err := ResolveAlgorithm(name)
		if err != nil {
			return nil, &UnknownAlgorithmError{Name: name, Recipe: recipeName}
		}
		layers = append(layers, alg)
	}
	return layers, nil
}

// Valid reports whether a is one of the enumerated algorithms.
func (a Algorithm) Valid() bool {
	return a > 0 && a < algorithmCount
}

// String returns the canonical display name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithms[a].name
}

// Size returns the native digest length in bytes, or 0 for an invalid value.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

// MarshalText encodes the algorithm as its canonical display name.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &UnknownAlgorithmError{Name: a.String()}
	}
	return []byte(a.String()), nil
}

// UnmarshalText resolves a canonical or legacy display name.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ResolveAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// validateLayers rejects the first layer outside the enumeration.
func validateLayers(layers []Algorithm) error {
	if i := slices.IndexFunc(layers, func(a Algorithm) bool { return !a.Valid() }); i >= 0 {
		return &UnknownAlgorithmError{Name: layers[i].String()}
	}
	return nil
}
