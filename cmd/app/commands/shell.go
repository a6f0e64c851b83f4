package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/allisson/shepatra/internal/i18n"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// shell is the interactive menu: make a recipe, make a hashed password, or exit.
type shell struct {
	useCase recipeUseCase.RecipeUseCase
	texts   *i18n.Catalog
	reader  *bufio.Reader
	writer  io.Writer
}

// RunShell runs the interactive menu until the user exits or the input ends.
func RunShell(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	texts *i18n.Catalog,
	io IOTuple,
) error {
	s := &shell{
		useCase: useCase,
		texts:   texts,
		reader:  bufio.NewReader(io.Reader),
		writer:  io.Writer,
	}

	err := s.run(ctx)
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

var errEndOfInput = errors.New("end of input")

func (s *shell) run(ctx context.Context) error {
	s.println(s.texts.T(i18n.Welcome))

	menu := []string{
		s.texts.T(i18n.GoToRecipeMaking),
		s.texts.T(i18n.MakeHashedPassword),
		s.texts.T(i18n.Exit),
	}
	for {
		choice, err := s.choose("", menu)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			err = s.makeRecipe(ctx)
		case 1:
			err = s.makeHashedPassword(ctx)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// makeRecipe appends layers until the user cancels or submits a name.
func (s *shell) makeRecipe(ctx context.Context) error {
	builder := recipeDomain.NewBuilder()
	options := append([]string{s.texts.T(i18n.Cancel), s.texts.T(i18n.Submit)}, recipeDomain.AlgorithmNames()...)

	for {
		choice, err := s.choose(strings.Join(builder.Recipe().Names(), ","), options)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			builder.Cancel()
			return nil
		case 1:
			return s.submit(ctx, builder)
		default:
			if err := builder.AddName(options[choice]); err != nil {
				return err
			}
		}
	}
}

// submit asks for a name until the recipe is stored. An existing recipe with the same
// name is overwritten.
func (s *shell) submit(ctx context.Context, builder *recipeDomain.Builder) error {
	for {
		name, err := s.prompt(s.texts.T(i18n.MakeNameForRecipe))
		if err != nil {
			return err
		}

		named, err := builder.Submit(name)
		if err != nil {
			s.println(err.Error())
			continue
		}

		if _, err := s.useCase.Replace(ctx, named.Name, named.Recipe); err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		s.println(s.texts.T(i18n.RecipeSaved))
		return nil
	}
}

// makeHashedPassword hashes one input with a stored recipe picked by the user.
func (s *shell) makeHashedPassword(ctx context.Context) error {
	recipes, err := s.useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}
	if len(recipes) == 0 {
		s.println(s.texts.T(i18n.RecipesEmpty))
		return nil
	}

	options := []string{s.texts.T(i18n.Cancel)}
	for _, named := range recipes {
		options = append(options, named.Name)
	}

	choice, err := s.choose(s.texts.T(i18n.WhichRecipe), options)
	if err != nil || choice == 0 {
		return err
	}

	input, err := s.prompt(s.texts.T(i18n.InputPassword))
	if err != nil {
		return err
	}

	digest, err := s.useCase.Hash(ctx, options[choice], input)
	if err != nil {
		s.println(err.Error())
		return nil
	}
	s.println(digest)
	return nil
}

// choose prints a numbered menu and returns the index of the picked option. The user may
// type the option number or its exact label.
func (s *shell) choose(title string, options []string) (int, error) {
	for {
		if title != "" {
			s.println(title)
		}
		for i, option := range options {
			s.println(fmt.Sprintf("  %d) %s", i+1, option))
		}

		answer, err := s.prompt("[" + s.texts.T(i18n.HelpSelect) + "]")
		if err != nil {
			return 0, err
		}

		if index, ok := parseChoice(answer, options); ok {
			return index, nil
		}
		s.println(s.texts.T(i18n.InvalidChoice))
	}
}

func parseChoice(answer string, options []string) (int, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	if index := slices.Index(options, answer); index >= 0 {
		return index, true
	}
	return 0, false
}

// prompt prints label and reads one line.
func (s *shell) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(s.writer, label+" ")
	line, err := readLine(s.reader)
	if errors.Is(err, io.EOF) {
		s.println("")
		return "", errEndOfInput
	}
	return line, err
}

func (s *shell) println(text string) {
	_, _ = fmt.Fprintln(s.writer, text)
}
