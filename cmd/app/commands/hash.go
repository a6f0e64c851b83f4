package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/allisson/shepatra/internal/recipe/http/dto"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
)

// HashOptions holds the flags of the hash command.
type HashOptions struct {
	Recipe string
	// Input is hashed when InputSet is true. Otherwise one line is read from the reader.
	Input    string
	InputSet bool
	Trace    bool
	Format   string
}

// RunHash applies a stored recipe to the input and prints the digest. With Trace every
// intermediate layer output is printed too.
func RunHash(
	ctx context.Context,
	useCase recipeUseCase.RecipeUseCase,
	io IOTuple,
	opts HashOptions,
) error {
	if err := validateFormat(opts.Format, FormatText, FormatJSON); err != nil {
		return err
	}

	input := opts.Input
	if !opts.InputSet {
		line, err := readLine(bufio.NewReader(io.Reader))
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		input = line
	}

	var resp dto.HashResponse
	if opts.Trace {
		trace, err := useCase.Trace(ctx, opts.Recipe, input)
		if err != nil {
			return fmt.Errorf("failed to hash input: %w", err)
		}
		resp = dto.MapTraceToHashResponse(opts.Recipe, input, trace)
	} else {
		digest, err := useCase.Hash(ctx, opts.Recipe, input)
		if err != nil {
			return fmt.Errorf("failed to hash input: %w", err)
		}
		resp = dto.HashResponse{Recipe: opts.Recipe, Digest: digest}
	}

	if opts.Format == FormatJSON {
		return writeJSON(io.Writer, resp)
	}

	for _, layer := range resp.Layers {
		if _, err := fmt.Fprintf(io.Writer, "%d. %-11s %s\n", layer.Index+1, layer.Algorithm, layer.Output); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(io.Writer, resp.Digest)
	return err
}

// readLine reads one line without its line ending. A final line without a newline is
// accepted; an empty stream is io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
