package pipeline

import (
	"github.com/legenda-dev/legenda/pkg/chartfile"
	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/geom"
	"github.com/legenda-dev/legenda/pkg/legend"
)

// BuildLegend builds the chart model from a document and returns the
// named legend with its entries collected. An empty name selects the
// default legend.
func BuildLegend(doc *chartfile.Document, name string) (*legend.Legend, error) {
	ch, set, err := doc.Build()
	if err != nil {
		return nil, err
	}
	if err := set.Collect(ch); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultLegend
	}
	lg := set.Get(name)
	if lg == nil {
		return nil, errors.New(errors.ErrCodeUnknownLegend, "unknown legend: %q", name)
	}
	return lg, nil
}

// ResolveLayout solves the layout for the target legend against the
// offered box. The result is deterministic for identical inputs.
func ResolveLayout(doc *chartfile.Document, opts Options) (legend.Configuration, error) {
	opts.SetLayoutDefaults()

	lg, err := BuildLegend(doc, opts.Legend)
	if err != nil {
		return legend.Configuration{}, err
	}
	return lg.Resolve(opts.Measurer, geom.Size{W: opts.Width, H: opts.Height}), nil
}
