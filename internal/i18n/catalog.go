// Package i18n holds the localized texts of the interactive shell.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	apperrors "github.com/allisson/shepatra/internal/errors"
)

// Text keys.
const (
	Welcome            = "welcome"
	GoToRecipeMaking   = "go_to_recipe_making"
	MakeHashedPassword = "make_hashed_password"
	Exit               = "exit"
	HelpSelect         = "help_msg_Select"
	Cancel             = "cancel"
	Submit             = "submit"
	MakeNameForRecipe  = "make_name_for_recipe"
	RecipesEmpty       = "recipes_is_empty_plz_make"
	WhichRecipe        = "which_recipe_would_you_like"
	InputPassword      = "input_password"
	InvalidChoice      = "invalid_choice"
	RecipeSaved        = "recipe_saved"
)

// DefaultLanguage is used when LANGUAGE is not set.
const DefaultLanguage = "en"

const localesDir = "locales"

var requiredKeys = []string{
	Welcome,
	GoToRecipeMaking,
	MakeHashedPassword,
	Exit,
	HelpSelect,
	Cancel,
	Submit,
	MakeNameForRecipe,
	RecipesEmpty,
	WhichRecipe,
	InputPassword,
	InvalidChoice,
	RecipeSaved,
}

//go:embed locales/*.json
var locales embed.FS

// ErrUnsupportedLanguage is returned for a language without an embedded catalog.
var ErrUnsupportedLanguage = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported language")

// Catalog maps text keys to the texts of one language.
type Catalog struct {
	language string
	printer  *message.Printer
}

// Load returns the catalog of language ("en" or "ja").
func Load(lang string) (*Catalog, error) {
	data, err := locales.ReadFile(fmt.Sprintf("%s/%s.json", localesDir, lang))
	if err != nil {
		return nil, apperrors.Wrapf(ErrUnsupportedLanguage, "%q", lang)
	}
	return parse(lang, data)
}

func parse(lang string, data []byte) (*Catalog, error) {
	var texts map[string]string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("invalid %s catalog: %w", lang, err)
	}

	for _, key := range requiredKeys {
		if texts[key] == "" {
			return nil, fmt.Errorf("%s catalog is missing %q", lang, key)
		}
	}

	tag := language.Make(lang)
	builder := catalog.NewBuilder()
	for key, text := range texts {
		if err := builder.SetString(tag, key, text); err != nil {
			return nil, fmt.Errorf("invalid %s text %q: %w", lang, key, err)
		}
	}
	return &Catalog{language: lang, printer: message.NewPrinter(tag, message.Catalog(builder))}, nil
}

// Languages lists the embedded languages, sorted.
func Languages() []string {
	entries, _ := locales.ReadDir(localesDir)
	languages := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		languages = append(languages, name[:len(name)-len(".json")])
	}
	slices.Sort(languages)
	return languages
}

// Language returns the catalog language.
func (c *Catalog) Language() string {
	return c.language
}

// T returns the text for key, or the key itself when it has no text. Keys are plain
// identifiers, so a missing key prints unchanged.
func (c *Catalog) T(key string) string {
	return c.printer.Sprintf(key)
}
