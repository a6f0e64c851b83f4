package domain

import (
	_ "crypto/sha256" // registers SHA-256 for go-digest fingerprints
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/opencontainers/go-digest"
)

const (
	// MaxRecipeNameLength is the maximum length of a recipe name, in characters.
	MaxRecipeNameLength = 255

	// MaxInputSize is the maximum size of a text to hash, in bytes (64 KB).
	MaxInputSize = 65536
)

// Recipe is an ordered list of digest layers.
//
// An empty recipe is valid and hashing with it returns the input unchanged. Order is
// significant and duplicates are allowed. A recipe has no identity of its own; it is
// named only when stored (see NamedRecipe).
type Recipe struct {
	Layers []Algorithm
}

// NewRecipe builds a recipe from the given layers, copying the slice.
func NewRecipe(layers ...Algorithm) (Recipe, error) {
	if err := validateLayers(layers); err != nil {
		return Recipe{}, err
	}
	return Recipe{Layers: slices.Clone(layers)}, nil
}

// Len returns the number of layers.
func (r Recipe) Len() int {
	return len(r.Layers)
}

// IsEmpty reports whether the recipe has no layers.
func (r Recipe) IsEmpty() bool {
	return len(r.Layers) == 0
}

// Names returns the canonical display names of the layers, in order.
func (r Recipe) Names() []string {
	names := make([]string, 0, len(r.Layers))
	for _, alg := range r.Layers {
		names = append(names, alg.String())
	}
	return names
}

// String renders the layers the way the interactive menu shows them ("SHA-256,Blake3").
func (r Recipe) String() string {
	return strings.Join(r.Names(), ",")
}

// Fingerprint returns the content digest of the recipe's canonical JSON form, so two
// recipes with identical layers share a fingerprint regardless of their names.
func (r Recipe) Fingerprint() digest.Digest {
	data, err := json.Marshal(r)
	if err != nil {
		// Layers that cannot be encoded have no stable identity.
		return ""
	}
	return digest.FromBytes(data)
}

type recipeJSON struct {
	Layers []string `json:"layers"`
}

// MarshalJSON encodes the recipe as {"layers": [<display names>]}.
func (r Recipe) MarshalJSON() ([]byte, error) {
	if err := validateLayers(r.Layers); err != nil {
		return nil, err
	}
	return json.Marshal(recipeJSON{Layers: r.Names()})
}

// UnmarshalJSON decodes {"layers": [...]}, resolving every name. An unknown name fails
// the whole recipe; nothing is skipped or substituted. The decoder does not know the
// recipe name, so UnknownAlgorithmError.Recipe is empty; use DecodeRecipe when it is known.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	recipe, err := DecodeRecipe("", data)
	if err != nil {
		return err
	}
	*r = recipe
	return nil
}

// DecodeRecipe decodes one {"layers": [...]} entry stored under name. Unknown algorithm
// names are reported against name.
func DecodeRecipe(name string, data []byte) (Recipe, error) {
	var raw recipeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		if name == "" {
			return Recipe{}, err
		}
		return Recipe{}, fmt.Errorf("recipe %q: %w", name, err)
	}
	layers, err := ParseLayers(name, raw.Layers)
	if err != nil {
		return Recipe{}, err
	}
	return Recipe{Layers: layers}, nil
}

// NamedRecipe is a recipe stored under a unique name.
type NamedRecipe struct {
	Name   string
	Recipe Recipe
}

// ValidateRecipeName checks that name is usable as a recipe key.
func ValidateRecipeName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name must not be blank", ErrInvalidRecipeName)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w: name must not have leading or trailing whitespace", ErrInvalidRecipeName)
	case utf8.RuneCountInString(name) > MaxRecipeNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidRecipeName, MaxRecipeNameLength)
	}
	return nil
}

// RecipeBook is the persisted collection of named recipes. Its JSON form is the
// interchange document: {"<name>": {"layers": ["SHA-256", ...]}, ...}.
type RecipeBook map[string]Recipe

// Names returns the recipe names in ascending order.
func (b RecipeBook) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipes returns the book as named recipes sorted by name.
func (b RecipeBook) Recipes() []NamedRecipe {
	out := make([]NamedRecipe, 0, len(b))
	for _, name := range b.Names() {
		out = append(out, NamedRecipe{Name: name, Recipe: b[name]})
	}
	return out
}

// UnmarshalJSON decodes the interchange document. A stored name that does not resolve
// is reported with the recipe it belongs to; recipes are checked in name order so the
// reported recipe is deterministic.
func (b *RecipeBook) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	book := make(RecipeBook, len(raw))
	for _, name := range names {
		recipe, err := DecodeRecipe(name, raw[name])
		if err != nil {
			return err
		}
		book[name] = recipe
	}

	*b = book
	return nil
}
