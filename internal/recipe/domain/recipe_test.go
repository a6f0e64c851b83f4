package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("copies layers", func(t *testing.T) {
		layers := []Algorithm{SHA256, BLAKE3}
		recipe, err := NewRecipe(layers...)
		require.NoError(t, err)

		layers[0] = SHA512
		assert.Equal(t, []Algorithm{SHA256, BLAKE3}, recipe.Layers)
		assert.Equal(t, 2, recipe.Len())
		assert.False(t, recipe.IsEmpty())
	})

	t.Run("empty recipe", func(t *testing.T) {
		recipe, err := NewRecipe()
		require.NoError(t, err)
		assert.True(t, recipe.IsEmpty())
		assert.Equal(t, "", recipe.String())
	})

	t.Run("rejects invalid layers", func(t *testing.T) {
		_, err := NewRecipe(SHA256, Algorithm(0))
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})
}

func TestRecipe_String(t *testing.T) {
	recipe := Recipe{Layers: []Algorithm{SHA256, BLAKE3, SHA512}}
	assert.Equal(t, "SHA-256,Blake3,SHA-512", recipe.String())
	assert.Equal(t, []string{"SHA-256", "Blake3", "SHA-512"}, recipe.Names())
}

func TestRecipe_JSON(t *testing.T) {
	t.Run("interchange shape", func(t *testing.T) {
		recipe := Recipe{Layers: []Algorithm{SHA256, BLAKE3, SHA512}}

		data, err := json.Marshal(recipe)
		require.NoError(t, err)
		assert.JSONEq(t, `{"layers":["SHA-256","Blake3","SHA-512"]}`, string(data))

		var decoded Recipe
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, recipe, decoded)
	})

	t.Run("empty recipe encodes an empty list", func(t *testing.T) {
		data, err := json.Marshal(Recipe{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"layers":[]}`, string(data))
	})

	t.Run("unknown layer fails the recipe", func(t *testing.T) {
		var decoded Recipe
		err := json.Unmarshal([]byte(`{"layers":["SHA-256","MD5"]}`), &decoded)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
		assert.Nil(t, decoded.Layers)
	})
}

func TestDecodeRecipe(t *testing.T) {
	t.Run("resolves layers", func(t *testing.T) {
		recipe, err := DecodeRecipe("web", []byte(`{"layers":["SHA256","Blake3"]}`))
		require.NoError(t, err)
		assert.Equal(t, []Algorithm{SHA256, BLAKE3}, recipe.Layers)
	})

	t.Run("unknown name carries the recipe", func(t *testing.T) {
		_, err := DecodeRecipe("web", []byte(`{"layers":["MD5"]}`))

		var unknown *UnknownAlgorithmError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "web", unknown.Recipe)
		assert.Equal(t, `unknown algorithm "MD5" in recipe "web"`, err.Error())
	})

	t.Run("unnamed recipe reports the algorithm only", func(t *testing.T) {
		var decoded Recipe
		err := json.Unmarshal([]byte(`{"layers":["MD5"]}`), &decoded)

		var unknown *UnknownAlgorithmError
		require.ErrorAs(t, err, &unknown)
		assert.Empty(t, unknown.Recipe)
		assert.Equal(t, `unknown algorithm "MD5"`, err.Error())
	})

	t.Run("malformed entry names the recipe", func(t *testing.T) {
		_, err := DecodeRecipe("web", []byte(`{"layers":"SHA-256"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `recipe "web"`)
	})
}

func TestRecipe_Fingerprint(t *testing.T) {
	recipe := Recipe{Layers: []Algorithm{SHA256, BLAKE3}}

	expected := digest.FromString(`{"layers":["SHA-256","Blake3"]}`)
	assert.Equal(t, expected, recipe.Fingerprint())
	assert.NoError(t, recipe.Fingerprint().Validate())

	reordered := Recipe{Layers: []Algorithm{BLAKE3, SHA256}}
	assert.NotEqual(t, recipe.Fingerprint(), reordered.Fingerprint())

	assert.Empty(t, Recipe{Layers: []Algorithm{Algorithm(0)}}.Fingerprint())
}

func TestValidateRecipeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "daily"},
		{name: "unicode", input: "毎日のレシピ"},
		{name: "max length", input: strings.Repeat("a", MaxRecipeNameLength)},
		{name: "blank", input: "   ", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "padded", input: " daily", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxRecipeNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipeName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecipeName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecipeBook_JSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		book := RecipeBook{
			"daily": {Layers: []Algorithm{SHA256, BLAKE3, SHA512}},
			"empty": {Layers: []Algorithm{}},
		}

		data, err := json.MarshalIndent(book, "", "  ")
		require.NoError(t, err)
		assert.JSONEq(t, `{"daily":{"layers":["SHA-256","Blake3","SHA-512"]},"empty":{"layers":[]}}`, string(data))

		var decoded RecipeBook
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, []string{"daily", "empty"}, decoded.Names())
		assert.Equal(t, book["daily"], decoded["daily"])
		assert.True(t, decoded["empty"].IsEmpty())
	})

	t.Run("legacy names resolve to canonical layers", func(t *testing.T) {
		var decoded RecipeBook
		require.NoError(t, json.Unmarshal([]byte(`{"old":{"layers":["SHA256","BLAKE3"]}}`), &decoded))
		assert.Equal(t, []Algorithm{SHA256, BLAKE3}, decoded["old"].Layers)
	})

	t.Run("unknown name carries the recipe", func(t *testing.T) {
		var decoded RecipeBook
		err := json.Unmarshal([]byte(`{"good":{"layers":["SHA-256"]},"bad":{"layers":["Blake3","MD5"]}}`), &decoded)

		var unknown *UnknownAlgorithmError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "MD5", unknown.Name)
		assert.Equal(t, "bad", unknown.Recipe)
		assert.Nil(t, decoded)
	})

	t.Run("malformed recipe", func(t *testing.T) {
		var decoded RecipeBook
		err := json.Unmarshal([]byte(`{"bad":{"layers":"SHA-256"}}`), &decoded)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `recipe "bad"`)
	})
}

func TestRecipeBook_Recipes(t *testing.T) {
	book := RecipeBook{
		"zeta":  {Layers: []Algorithm{SHA256}},
		"alpha": {Layers: []Algorithm{BLAKE3}},
	}

	recipes := book.Recipes()
	require.Len(t, recipes, 2)
	assert.Equal(t, "alpha", recipes[0].Name)
	assert.Equal(t, "zeta", recipes[1].Name)
	assert.Equal(t, []Algorithm{SHA256}, recipes[1].Recipe.Layers)
}
