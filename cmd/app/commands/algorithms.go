package commands

import (
	"fmt"
	"io"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	"github.com/allisson/shepatra/internal/recipe/http/dto"
)

// RunAlgorithms prints the registered algorithms in menu order with their digest size.
func RunAlgorithms(writer io.Writer, format string) error {
	if err := validateFormat(format, FormatText, FormatJSON); err != nil {
		return err
	}

	algorithms := recipeDomain.Algorithms()
	if format == FormatJSON {
		return writeJSON(writer, dto.MapAlgorithmsToListResponse(algorithms))
	}

	for _, alg := range algorithms {
		if _, err := fmt.Fprintf(writer, "%-11s %d bytes\n", alg, alg.Size()); err != nil {
			return err
		}
	}
	return nil
}
