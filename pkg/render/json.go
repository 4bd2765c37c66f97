package render

import (
	"encoding/json"

	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/text"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact  bool
	resolved *legend.Configuration
}

// WithCompact emits the JSON without indentation, for HTTP responses.
func WithCompact() JSONOption {
	return func(r *jsonRenderer) { r.compact = true }
}

// WithJSONResolved reuses an already solved configuration instead of
// resolving again. The configuration must come from Resolve on the
// same legend, measurer and box.
func WithJSONResolved(cfg legend.Configuration) JSONOption {
	return func(r *jsonRenderer) { r.resolved = &cfg }
}

type jsonOutput struct {
	Width         float64    `json:"width"`
	Height        float64    `json:"height"`
	Fits          bool       `json:"fits"`
	Policy        string     `json:"policy"`
	Columns       int        `json:"columns"`
	RowsPerColumn []int      `json:"rows_per_column,omitempty"`
	FontPt        float64    `json:"font_pt"`
	FontDelta     int        `json:"font_delta,omitempty"`
	Items         int        `json:"items"`
	Truncated     bool       `json:"truncated,omitempty"`
	HSlack        float64    `json:"h_slack"`
	VSlack        float64    `json:"v_slack"`
	Title         *jsonText  `json:"title,omitempty"`
	Headers       []jsonText `json:"headers,omitempty"`
	Cells         []jsonCell `json:"cells"`
	Separators    []jsonRect `json:"separators,omitempty"`
	Indicator     *jsonText  `json:"indicator,omitempty"`
}

type jsonRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type jsonText struct {
	Text  string   `json:"text"`
	Align string   `json:"align,omitempty"`
	Rect  jsonRect `json:"rect"`
}

type jsonCell struct {
	Entry    int      `json:"entry"`
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Marker   string   `json:"marker,omitempty"`
	Color    string   `json:"color,omitempty"`
	Span     int      `json:"span,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
	Rect     jsonRect `json:"rect"`
}

// RenderJSON resolves and arranges the legend into bounds and exports the
// placement as a JSON document: the solved configuration plus absolute
// rectangles for every element. The export carries everything an
// embedding UI needs for hit testing and re-painting. Identical inputs
// produce identical bytes.
func RenderJSON(l *legend.Legend, m text.Measurer, bounds geom.Rect, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	pl := &legend.Placement{}
	if l.Visible {
		var cfg legend.Configuration
		if r.resolved != nil {
			cfg = *r.resolved
		} else {
			cfg = l.Resolve(m, bounds.Size())
		}
		pl = l.Arrange(m, cfg, bounds)
	}

	out := jsonOutput{
		Width:         pl.Bounds.W,
		Height:        pl.Bounds.H,
		Fits:          pl.Config.Fits,
		Policy:        string(pl.Config.Policy),
		Columns:       pl.Config.Columns,
		RowsPerColumn: pl.Config.RowsPerColumn,
		FontPt:        pl.Font.SizePt,
		FontDelta:     pl.Config.FontDelta,
		Items:         pl.Config.Items,
		Truncated:     pl.Config.Truncated,
		HSlack:        pl.Config.HSlack,
		VSlack:        pl.Config.VSlack,
		Cells:         buildJSONCells(pl),
	}
	if pl.Title != nil {
		out.Title = newJSONText(*pl.Title)
	}
	for _, h := range pl.Headers {
		out.Headers = append(out.Headers, *newJSONText(h))
	}
	for _, s := range pl.Separators {
		out.Separators = append(out.Separators, newJSONRect(s.Rect))
	}
	if pl.Indicator != nil {
		out.Indicator = newJSONText(*pl.Indicator)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCells(pl *legend.Placement) []jsonCell {
	cells := make([]jsonCell, 0, len(pl.Cells))
	entryIdx := -1
	var lastEntry *legend.Entry
	for _, cb := range pl.Cells {
		if cb.Entry != lastEntry {
			lastEntry = cb.Entry
			entryIdx++
		}
		jc := jsonCell{
			Entry:    entryIdx,
			Kind:     string(cb.Cell.Kind),
			Text:     cb.Cell.Text,
			Color:    string(cb.Cell.Color),
			Disabled: !cb.Entry.Enabled,
			Rect:     newJSONRect(cb.Rect),
		}
		if cb.Cell.Kind == legend.CellSymbol {
			jc.Marker = string(cb.Cell.Marker)
		}
		if cb.Cell.Span > 1 {
			jc.Span = cb.Cell.Span
		}
		cells = append(cells, jc)
	}
	return cells
}

func newJSONText(tb legend.TextBox) *jsonText {
	return &jsonText{Text: tb.Text, Align: string(tb.Align), Rect: newJSONRect(tb.Rect)}
}

func newJSONRect(r geom.Rect) jsonRect {
	return jsonRect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
