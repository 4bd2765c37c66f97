package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/pipeline"
	"github.com/legenda-dev/legenda/pkg/text"
)

// previewCommand creates the preview command for interactive layout exploration.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "preview [chart file]",
		Short: "Explore the legend layout interactively",
		Long: `Explore the legend layout interactively.

The preview command opens a terminal UI where the arrow keys resize the
offered box and the legend re-solves live: watch the arrangement flip
between wide and tall, the font shrink, and entries drop behind the
truncation mark as the box tightens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return c.runPreview(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Legend, "legend", "l", opts.Legend, "legend to preview")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "initial offered box width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "initial offered box height")

	return cmd
}

// runPreview loads the document and runs the interactive preview.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Path, err)
	}

	lg, err := pipeline.BuildLegend(doc, opts.Legend)
	if err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = opts.Path
	}

	m := NewPreviewModel(lg, opts.Measurer, title, geom.Size{W: opts.Width, H: opts.Height})
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(PreviewModel); ok {
		printSuccess("Preview closed at %gx%g", fm.Box.W, fm.Box.H)
		printNextStep("Render at this size", fmt.Sprintf("%s render %s --width %g --height %g",
			appName, opts.Path, fm.Box.W, fm.Box.H))
	}
	return nil
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// minBoxSide keeps the offered box from collapsing entirely.
const minBoxSide = 20.0

// PreviewModel is the bubbletea model for the interactive layout preview.
type PreviewModel struct {
	Legend   *legend.Legend
	Measurer text.Measurer
	Title    string

	Box     geom.Size // offered box the layout is solved against
	Initial geom.Size
	Step    float64

	Config legend.Configuration
}

// NewPreviewModel creates a preview model solved at the initial box.
func NewPreviewModel(lg *legend.Legend, m text.Measurer, title string, box geom.Size) PreviewModel {
	pm := PreviewModel{
		Legend:   lg,
		Measurer: m,
		Title:    title,
		Box:      box,
		Initial:  box,
		Step:     20,
	}
	pm.Config = pm.Legend.Resolve(pm.Measurer, pm.Box)
	return pm
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Box.W -= m.Step
			if m.Box.W < minBoxSide {
				m.Box.W = minBoxSide
			}
		case "right", "l":
			m.Box.W += m.Step
		case "up", "k":
			m.Box.H -= m.Step
			if m.Box.H < minBoxSide {
				m.Box.H = minBoxSide
			}
		case "down", "j":
			m.Box.H += m.Step
		case "+", "=":
			if m.Step < 160 {
				m.Step *= 2
			}
		case "-":
			if m.Step > 5 {
				m.Step /= 2
			}
		case "r":
			m.Box = m.Initial
		default:
			return m, nil
		}
		m.Config = m.Legend.Resolve(m.Measurer, m.Box)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ height  +/- step  r reset  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.Config.IsEmpty() {
		b.WriteString(StyleDim.Render("  nothing fits at this size"))
		b.WriteString("\n")
		return b.String()
	}

	placement := m.Legend.Arrange(m.Measurer, m.Config, geom.NewRect(0, 0, m.Config.Size.W, m.Config.Size.H))
	b.WriteString(entriesTable(m.Config, placement).Render())
	b.WriteString("\n")

	if m.Config.Truncated {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %d of %d entries shown",
			m.Config.Items, len(m.Legend.Entries()))))
		b.WriteString("\n")
	}
	return b.String()
}

// statusLine summarizes the current solve on one line.
func (m PreviewModel) statusLine() string {
	parts := []string{
		"offered " + StyleHighlight.Render(fmt.Sprintf("%gx%g", m.Box.W, m.Box.H)),
		"step " + StyleHighlight.Render(fmt.Sprintf("%g", m.Step)),
	}
	if !m.Config.IsEmpty() {
		parts = append(parts,
			"solved "+StyleHighlight.Render(fmt.Sprintf("%.0fx%.0f", m.Config.Size.W, m.Config.Size.H)),
			string(m.Config.Policy),
		)
		if m.Config.FontDelta > 0 {
			parts = append(parts, fmt.Sprintf("-%dpt", m.Config.FontDelta))
		}
	}
	if m.Config.Fits {
		parts = append(parts, StyleSuccess.Render("fits"))
	} else {
		parts = append(parts, StyleWarning.Render("overflows"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
