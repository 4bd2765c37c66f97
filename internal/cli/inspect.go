package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/pipeline"
)

// inspectCommand creates the inspect command for examining solved layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "inspect [chart file]",
		Short: "Print the solved legend layout without rendering",
		Long: `Print the solved legend layout without rendering.

The inspect command solves the legend arrangement exactly as render
would and prints the result: the chosen policy, the solved size, the
per-column split, and the entry grid. Useful for understanding why a
legend ends up with a particular shape before generating artifacts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return c.runInspect(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVarP(&opts.Legend, "legend", "l", opts.Legend, "legend to inspect")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "offered box width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "offered box height")

	return cmd
}

// runInspect solves the layout for opts.Path and prints it.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Path, err)
	}

	prog := newProgress(logger)
	cfg, cacheHit, err := runner.ResolveWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("resolve layout: %w", err)
	}
	prog.done(fmt.Sprintf("Resolved %d entries in %d columns", cfg.Items, cfg.Columns))

	// Rebuilding the legend is cheap and gives access to the entries
	// behind the cached configuration.
	lg, err := pipeline.BuildLegend(doc, opts.Legend)
	if err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = opts.Path
	}
	fmt.Println(StyleTitle.Render(title))
	printNewline()

	printKeyValue("Legend", lg.Name)
	printKeyValue("Offered", fmt.Sprintf("%gx%g", opts.Width, opts.Height))

	if cfg.IsEmpty() {
		printKeyValue("Entries", "0")
		printNewline()
		printInfo("Legend lays out nothing at this size")
		return nil
	}

	printKeyValue("Policy", string(cfg.Policy))
	printKeyValue("Size", fmt.Sprintf("%.0fx%.0f", cfg.Size.W, cfg.Size.H))
	printKeyValue("Font", fontLine(lg, cfg))
	printKeyValue("Entries", entriesLine(lg, cfg))
	printKeyValue("Fits", fitsLine(cfg))
	printNewline()

	fmt.Println(columnsTable(cfg).Render())
	printNewline()

	placement := lg.Arrange(opts.Measurer, cfg, geom.NewRect(0, 0, cfg.Size.W, cfg.Size.H))
	fmt.Println(entriesTable(cfg, placement).Render())

	if cfg.Truncated {
		printDetail("truncated after %d entries", cfg.Items)
	}
	printStats(len(doc.Series), cfg.Items, cacheHit)

	return nil
}

// fontLine formats the effective entry font, noting any auto-fit shrink.
func fontLine(lg *legend.Legend, cfg legend.Configuration) string {
	line := fmt.Sprintf("%.0fpt", lg.Font.SizePt-float64(cfg.FontDelta))
	if lg.Font.Family != "" {
		line += " " + lg.Font.Family
	}
	if cfg.FontDelta > 0 {
		line += fmt.Sprintf(" (auto-fit -%dpt)", cfg.FontDelta)
	}
	return line
}

// entriesLine formats the shown entry count against the collected total.
func entriesLine(lg *legend.Legend, cfg legend.Configuration) string {
	if cfg.Truncated {
		return fmt.Sprintf("%d of %d", cfg.Items, len(lg.Entries()))
	}
	return fmt.Sprintf("%d", cfg.Items)
}

func fitsLine(cfg legend.Configuration) string {
	if cfg.Fits {
		return fmt.Sprintf("yes (slack %.0fx%.0f)", cfg.HSlack, cfg.VSlack)
	}
	return "no"
}

// columnsTable summarizes each layout column: row count, subcolumn
// count, and content width/height.
func columnsTable(cfg legend.Configuration) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, cfg.Columns)
	for col := 0; col < cfg.Columns; col++ {
		var width, height float64
		for _, w := range cfg.SubColumnWidths[col] {
			width += w
		}
		for _, h := range cfg.CellHeights[col] {
			height += h
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", col+1),
			fmt.Sprintf("%d", cfg.RowsPerColumn[col]),
			fmt.Sprintf("%d", len(cfg.SubColumnWidths[col])),
			fmt.Sprintf("%.0f", width),
			fmt.Sprintf("%.0f", height),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Column", "Rows", "Subcols", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleNumber
		})
}

// entriesTable lays the entry labels out in the solved grid, one table
// column per layout column.
func entriesTable(cfg legend.Configuration, p *legend.Placement) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	maxRows := 0
	for _, rows := range cfg.RowsPerColumn {
		if rows > maxRows {
			maxRows = rows
		}
	}

	grid := make([][]string, maxRows)
	for r := range grid {
		grid[r] = make([]string, cfg.Columns)
	}
	for _, cb := range p.Cells {
		if cb.Row < maxRows && cb.Col < cfg.Columns && grid[cb.Row][cb.Col] == "" {
			grid[cb.Row][cb.Col] = cb.Entry.Label()
		}
	}

	headers := make([]string, cfg.Columns)
	for col := range headers {
		headers[col] = fmt.Sprintf("Col %d", col+1)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(grid...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})
}
