package legend

import (
	"github.com/legenda-dev/legenda/pkg/chart"
	"github.com/legenda-dev/legenda/pkg/errors"
)

// Set is the named collection of legends a chart renders with. Charts
// usually carry one default legend; financial-style charts add more and
// route series to them by name.
type Set struct {
	legends []*Legend
}

// NewSet returns a set holding a single default legend.
func NewSet() *Set {
	s := &Set{}
	s.legends = append(s.legends, New(DefaultName))
	return s
}

// Add registers a legend. Names are unique within a set.
func (s *Set) Add(l *Legend) error {
	for _, existing := range s.legends {
		if existing.Name == l.Name {
			return errors.New(errors.ErrCodeInvalidInput, "legend %q already defined", l.Name)
		}
	}
	s.legends = append(s.legends, l)
	return nil
}

// Get returns the legend with the given name, or nil.
func (s *Set) Get(name string) *Legend {
	for _, l := range s.legends {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Default returns the default legend, or nil if the set holds none.
func (s *Set) Default() *Legend { return s.Get(DefaultName) }

// Legends returns the legends in registration order.
func (s *Set) Legends() []*Legend { return s.legends }

// Collect rebuilds every legend's entries from the chart. A series
// naming a legend the set does not hold fails collection even when the
// series is invisible, so configuration mistakes surface before
// rendering instead of silently dropping entries.
func (s *Set) Collect(ch *chart.Chart) error {
	for _, sr := range ch.Series {
		if sr.Legend == "" {
			continue
		}
		if s.Get(sr.Legend) == nil {
			return errors.New(errors.ErrCodeUnknownLegend, "series %q references unknown legend %q", sr.Name, sr.Legend)
		}
	}
	for _, l := range s.legends {
		if err := l.Collect(ch); err != nil {
			return err
		}
	}
	return nil
}
