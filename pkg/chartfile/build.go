package chartfile

import (
	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/legend"
	"github.com/legenda-dev/legenda/pkg/text"
)

// Validate checks the document against the model's configuration rules.
// Decode runs it on every parse; Build refuses invalid documents.
func (d *Document) Validate() error {
	if len(d.Series) == 0 {
		return errors.New(errors.ErrCodeInvalidChart, "chart document defines no series")
	}
	for i, s := range d.Series {
		if s.Name == "" {
			return errors.New(errors.ErrCodeInvalidChart, "series %d has no name", i)
		}
		if !chart.KnownKind(chart.SeriesKind(s.Kind)) {
			return errors.New(errors.ErrCodeUnknownKind, "series %q has unknown kind %q", s.Name, s.Kind)
		}
		if err := validColor(s.Color); err != nil {
			return err
		}
		for _, p := range s.Points {
			if err := validColor(p.Color); err != nil {
				return err
			}
		}
	}
	seen := map[string]bool{}
	for _, lg := range d.Legends {
		name := lg.legendName()
		if err := errors.ValidateLegendName(name); err != nil {
			return err
		}
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidInput, "legend %q defined twice", name)
		}
		seen[name] = true
		if err := lg.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Build turns the document into the chart model and its legend set. The
// returned set has not collected entries yet; callers run Set.Collect so
// unknown legend references surface where rendering starts.
func (d *Document) Build() (*chart.Chart, *legend.Set, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	ch := &chart.Chart{Title: d.Title}
	for _, s := range d.Series {
		sr := &chart.Series{
			Name:         s.Name,
			Kind:         chart.SeriesKind(s.Kind),
			Legend:       s.Legend,
			LegendText:   s.LegendText,
			Color:        chart.Color(s.Color),
			Visible:      !s.Hidden,
			ShowInLegend: !s.SkipLegend,
		}
		for _, p := range s.Points {
			sr.Points = append(sr.Points, chart.DataPoint{
				X:            p.X,
				Label:        p.Label,
				LegendText:   p.LegendText,
				Color:        chart.Color(p.Color),
				Values:       p.Values,
				Visible:      !p.Hidden,
				ShowInLegend: !p.SkipLegend,
			})
		}
		ch.Series = append(ch.Series, sr)
	}
	if len(d.AxisLabels) > 0 {
		ch.AxisLabels = make(map[float64]string, len(d.AxisLabels))
		for _, al := range d.AxisLabels {
			ch.AxisLabels[al.X] = al.Label
		}
	}

	set := legend.NewSet()
	for _, lg := range d.Legends {
		name := lg.legendName()
		target := set.Get(name)
		if target == nil {
			target = legend.New(name)
			if err := set.Add(target); err != nil {
				return nil, nil, err
			}
		}
		lg.apply(target)
	}
	return ch, set, nil
}

// legendName resolves the legend a block configures; an unnamed block
// configures the default legend.
func (lg *Legend) legendName() string {
	if lg.Name == "" {
		return legend.DefaultName
	}
	return lg.Name
}

func (lg *Legend) validate() error {
	switch legend.Dock(lg.Dock) {
	case legend.DockLeft, legend.DockRight, legend.DockTop, legend.DockBottom, legend.DockFloat, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "legend %q has unknown dock %q", lg.legendName(), lg.Dock)
	}
	switch legend.Arrangement(lg.Arrangement) {
	case legend.ArrangeAuto, legend.ArrangeTall, legend.ArrangeWide, legend.ArrangeColumn, legend.ArrangeRow, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "legend %q has unknown arrangement %q", lg.legendName(), lg.Arrangement)
	}
	switch legend.Order(lg.Order) {
	case legend.OrderSeries, legend.OrderReversed, legend.OrderAuto, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "legend %q has unknown order %q", lg.legendName(), lg.Order)
	}
	if err := validAlign(lg.TitleAlign); err != nil {
		return err
	}
	if lg.ColumnSpacing != nil {
		if err := errors.ValidateSpacingPercent("column", *lg.ColumnSpacing); err != nil {
			return err
		}
	}
	if lg.RowSpacing != nil {
		if err := errors.ValidateSpacingPercent("row", *lg.RowSpacing); err != nil {
			return err
		}
	}
	for _, c := range []string{lg.Background, lg.BorderColor, lg.TextColor} {
		if err := validColor(c); err != nil {
			return err
		}
	}
	for i, col := range lg.Columns {
		switch legend.CellKind(col.Kind) {
		case legend.CellSymbol, legend.CellText, legend.CellImage, "":
		default:
			return errors.New(errors.ErrCodeInvalidColumn, "legend %q column %d has unknown kind %q", lg.legendName(), i, col.Kind)
		}
		if err := validAlign(col.Align); err != nil {
			return err
		}
	}
	return nil
}

// apply copies the block's explicit settings onto a legend that already
// carries the defaults.
func (lg *Legend) apply(dst *legend.Legend) {
	if lg.Hidden {
		dst.Visible = false
	}
	if lg.Dock != "" {
		dst.Dock = legend.Dock(lg.Dock)
	}
	if lg.Arrangement != "" {
		dst.Arrangement = legend.Arrangement(lg.Arrangement)
	}
	if lg.Order != "" {
		dst.Order = legend.Order(lg.Order)
	}
	dst.Title = lg.Title
	if lg.TitleAlign != "" {
		dst.TitleAlign = legend.Align(lg.TitleAlign)
	}
	dst.Font = lg.Font.apply(dst.Font)
	if !lg.TitleFont.isZero() {
		dst.TitleFont = lg.TitleFont.apply(dst.Font.Bolded())
	}
	if lg.AutoFit != nil {
		dst.AutoFitText = *lg.AutoFit
	}
	if lg.MinFontSize > 0 {
		dst.MinFontSize = lg.MinFontSize
	}
	if lg.MaxColumns > 0 {
		dst.MaxColumns = lg.MaxColumns
	}
	if lg.ColumnSpacing != nil {
		dst.ColumnSpacing = *lg.ColumnSpacing
	}
	if lg.RowSpacing != nil {
		dst.RowSpacing = *lg.RowSpacing
	}
	if lg.Background != "" {
		dst.Background = chart.Color(lg.Background)
	}
	if lg.NoBorder {
		dst.Border = false
	}
	if lg.BorderColor != "" {
		dst.BorderColor = chart.Color(lg.BorderColor)
	}
	if lg.TextColor != "" {
		dst.TextColor = chart.Color(lg.TextColor)
	}
	dst.Separators = lg.Separators
	for _, col := range lg.Columns {
		dst.Columns = append(dst.Columns, &legend.Column{
			Kind:          legend.CellKind(col.Kind),
			Header:        col.Header,
			Align:         legend.Align(col.Align),
			MinWidthPct:   col.MinWidthPct,
			MaxWidthPct:   col.MaxWidthPct,
			EquallySpaced: col.EquallySpaced,
		})
	}
}

func (f Font) isZero() bool {
	return f.Family == "" && f.Size == 0 && !f.Bold && !f.Italic
}

// apply merges the document font over base, keeping base values for
// fields the document leaves unset.
func (f Font) apply(base text.Font) text.Font {
	if f.Family != "" {
		base.Family = f.Family
	}
	if f.Size > 0 {
		base.SizePt = f.Size
	}
	if f.Bold {
		base.Bold = true
	}
	if f.Italic {
		base.Italic = true
	}
	return base
}

func validColor(c string) error {
	if c == "" {
		return nil
	}
	return errors.ValidateColor(c)
}

func validAlign(a string) error {
	switch legend.Align(a) {
	case legend.AlignLeft, legend.AlignCenter, legend.AlignRight, "":
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown alignment %q", a)
	}
}
