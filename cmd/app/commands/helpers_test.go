package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
)

func TestParseLayersFlag(t *testing.T) {
	t.Run("canonical-and-legacy-names", func(t *testing.T) {
		recipe, err := parseLayersFlag("SHA-256, BLAKE2b ,Blake3")
		require.NoError(t, err)
		assert.Equal(t, []recipeDomain.Algorithm{
			recipeDomain.SHA256, recipeDomain.BLAKE2b_512, recipeDomain.BLAKE3,
		}, recipe.Layers)
	})

	t.Run("duplicates-are-kept", func(t *testing.T) {
		recipe, err := parseLayersFlag("SHA-256,SHA-256")
		require.NoError(t, err)
		assert.Equal(t, 2, recipe.Len())
	})

	t.Run("blank-is-identity", func(t *testing.T) {
		recipe, err := parseLayersFlag(" , ")
		require.NoError(t, err)
		assert.True(t, recipe.IsEmpty())
	})

	t.Run("unknown-name", func(t *testing.T) {
		_, err := parseLayersFlag("SHA-256,md5")
		require.ErrorIs(t, err, recipeDomain.ErrUnknownAlgorithm)
		assert.Contains(t, err.Error(), "md5")
	})
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, validateFormat(FormatJSON, FormatText, FormatJSON))

	err := validateFormat("xml", FormatJSON, FormatYAML)
	require.Error(t, err)
	assert.Equal(t, "invalid format: xml (valid options: json, yaml)", err.Error())
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())

	err := writeJSON(&bytes.Buffer{}, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal JSON")
}
