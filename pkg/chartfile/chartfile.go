// Package chartfile defines the on-disk chart document format: the chart
// title, its series and points, optional axis labels, and the legends the
// chart renders with. Documents are written in TOML (the CLI's native
// format) or JSON (the HTTP API's), decoded into the same schema, and
// turned into model types with Build.
package chartfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/legenda-dev/legenda/pkg/errors"
)

// Format identifies a document encoding.
type Format string

// Supported document encodings.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Document is the root of a chart file.
type Document struct {
	Title      string      `toml:"title" json:"title,omitempty"`
	Series     []Series    `toml:"series" json:"series"`
	AxisLabels []AxisLabel `toml:"axis-labels" json:"axis_labels,omitempty"`
	Legends    []Legend    `toml:"legends" json:"legends,omitempty"`
}

// Series describes one plotted series. Visibility flags are inverted so
// the zero value means "shown"; a series is listed in legends unless
// skip-legend is set.
type Series struct {
	Name       string  `toml:"name" json:"name"`
	Kind       string  `toml:"kind" json:"kind"`
	Legend     string  `toml:"legend" json:"legend,omitempty"`
	LegendText string  `toml:"legend-text" json:"legend_text,omitempty"`
	Color      string  `toml:"color" json:"color,omitempty"`
	Hidden     bool    `toml:"hidden" json:"hidden,omitempty"`
	SkipLegend bool    `toml:"skip-legend" json:"skip_legend,omitempty"`
	Points     []Point `toml:"points" json:"points"`
}

// Point is one argument/value tuple.
type Point struct {
	X          float64   `toml:"x" json:"x"`
	Values     []float64 `toml:"values" json:"values"`
	Label      string    `toml:"label" json:"label,omitempty"`
	LegendText string    `toml:"legend-text" json:"legend_text,omitempty"`
	Color      string    `toml:"color" json:"color,omitempty"`
	Hidden     bool      `toml:"hidden" json:"hidden,omitempty"`
	SkipLegend bool      `toml:"skip-legend" json:"skip_legend,omitempty"`
}

// AxisLabel names an argument-axis position.
type AxisLabel struct {
	X     float64 `toml:"x" json:"x"`
	Label string  `toml:"label" json:"label"`
}

// Legend configures one named legend. Fields where zero is a legal
// explicit value and differs from the default are pointers so an absent
// key keeps the default.
type Legend struct {
	Name        string `toml:"name" json:"name"`
	Hidden      bool   `toml:"hidden" json:"hidden,omitempty"`
	Dock        string `toml:"dock" json:"dock,omitempty"`
	Arrangement string `toml:"arrangement" json:"arrangement,omitempty"`
	Order       string `toml:"order" json:"order,omitempty"`

	Title      string `toml:"title" json:"title,omitempty"`
	TitleAlign string `toml:"title-align" json:"title_align,omitempty"`
	Font       Font   `toml:"font" json:"font,omitempty"`
	TitleFont  Font   `toml:"title-font" json:"title_font,omitempty"`

	AutoFit     *bool   `toml:"auto-fit" json:"auto_fit,omitempty"`
	MinFontSize float64 `toml:"min-font-size" json:"min_font_size,omitempty"`
	MaxColumns  int     `toml:"max-columns" json:"max_columns,omitempty"`

	ColumnSpacing *int `toml:"column-spacing" json:"column_spacing,omitempty"`
	RowSpacing    *int `toml:"row-spacing" json:"row_spacing,omitempty"`

	Background  string `toml:"background" json:"background,omitempty"`
	NoBorder    bool   `toml:"no-border" json:"no_border,omitempty"`
	BorderColor string `toml:"border-color" json:"border_color,omitempty"`
	TextColor   string `toml:"text-color" json:"text_color,omitempty"`
	Separators  bool   `toml:"separators" json:"separators,omitempty"`

	Columns []Column `toml:"columns" json:"columns,omitempty"`
}

// Column is a cell-column template.
type Column struct {
	Kind          string  `toml:"kind" json:"kind"`
	Header        string  `toml:"header" json:"header,omitempty"`
	Align         string  `toml:"align" json:"align,omitempty"`
	MinWidthPct   float64 `toml:"min-width-pct" json:"min_width_pct,omitempty"`
	MaxWidthPct   float64 `toml:"max-width-pct" json:"max_width_pct,omitempty"`
	EquallySpaced bool    `toml:"equally-spaced" json:"equally_spaced,omitempty"`
}

// Font selects a typeface. A zero Size keeps the engine default.
type Font struct {
	Family string  `toml:"family" json:"family,omitempty"`
	Size   float64 `toml:"size" json:"size,omitempty"`
	Bold   bool    `toml:"bold" json:"bold,omitempty"`
	Italic bool    `toml:"italic" json:"italic,omitempty"`
}

// DetectFormat maps a file path to its document format by extension.
// Unknown extensions default to TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Load reads and decodes the chart document at path. The format follows
// the file extension.
func Load(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read chart document %s", path)
	}
	return Decode(data, DetectFormat(path))
}

// Decode parses a chart document and validates it.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON chart document")
		}
	case FormatTOML, "":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse TOML chart document")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes the document, primarily for the HTTP API and tests.
// TOML output keeps a stable field order; JSON is indented.
func (d *Document) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatTOML, "":
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "encode TOML chart document")
		}
		return []byte(b.String()), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
}
