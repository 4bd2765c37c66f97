package pipeline

import (
	"fmt"
	"os"

	"github.com/legenda-dev/legenda/pkg/chartfile"
	"github.com/legenda-dev/legenda/pkg/errors"
)

// readSource returns the raw document bytes and their format. Inline
// source bytes win over a path; a path's format follows its extension
// unless SourceFormat overrides it.
func readSource(opts Options) ([]byte, chartfile.Format, error) {
	if len(opts.Source) > 0 {
		format := opts.SourceFormat
		if format == "" {
			format = chartfile.FormatTOML
		}
		return opts.Source, format, nil
	}

	if err := errors.ValidatePath(opts.Path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, "", fmt.Errorf("read chart document: %w", err)
	}
	format := opts.SourceFormat
	if format == "" {
		format = chartfile.DetectFormat(opts.Path)
	}
	return data, format, nil
}
