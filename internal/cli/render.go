package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/legenda-dev/legenda/pkg/pipeline"
	"github.com/legenda-dev/legenda/pkg/text"
)

// renderCommand creates the render command for generating legend artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		fontDir string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [chart file]",
		Short: "Render a chart document's legend to SVG, PNG, or JSON",
		Long: `Render a chart document's legend to SVG, PNG, or JSON.

The render command reads a chart document (TOML or JSON), collects the
legend entries its series declare, solves the arrangement that fits the
offered box, and writes one file per requested format.

The offered box only bounds the layout search; the rendered artifact
shrinks to the solved legend size. Results are cached locally for
faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Formats = parseFormats(formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if fontDir != "" {
				opts.Measurer = text.NewFaceMeasurer(text.NewFontCache(fontDir))
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Legend, "legend", "l", opts.Legend, "legend to render")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "offered box width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "offered box height")

	// Render flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "raster scale factor (png)")
	cmd.Flags().StringVar(&opts.Canvas, "canvas", opts.Canvas, "canvas background color (png)")
	cmd.Flags().StringVar(&fontDir, "font-dir", "", "extra font directory for text measurement")

	return cmd
}

// runRender executes the full pipeline for opts.Path and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Solving legend layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", opts.Path, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, basePath(output, opts.Path), output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.SeriesCount, result.Stats.EntryCount, result.CacheInfo.RenderHit)
	if !result.Layout.Fits {
		printWarning("Legend does not fit the offered box")
	} else if result.Layout.Truncated {
		printWarning("Showing %d of %d entries", result.Layout.Items, result.Stats.EntryCount)
	}
	printNewline()
	printNextStep("Inspect", appName+" inspect "+opts.Path)

	return nil
}

// writeArtifacts writes one file per rendered format and returns the paths
// in format order. A single format with an explicit output path is written
// there verbatim; otherwise names derive from base.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that
// extension so multiple formats do not stack suffixes.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
