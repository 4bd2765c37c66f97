// Package legend implements the chart legend auto-layout engine.
//
// # Overview
//
// A legend arranges an arbitrary number of entries (one per data series,
// data point, or custom item) into a bounded rectangle. Layout is a
// constrained-packing search: candidate row/column arrangements are scored
// against live text measurements, and when content does not fit the engine
// shrinks the font and then truncates entries, deterministically and
// pixel-exact.
//
// # Pipeline
//
// One layout pass runs through four stages:
//
//   - Collect: [Legend.Collect] (or [Set.Collect]) rebuilds the entry list
//     from the chart's series and points, applying ordering and inclusion
//     rules.
//   - Resolve: [Legend.Resolve] converges on a [Configuration] via the
//     layout solver and fit evaluator, shrinking and truncating as needed.
//   - Arrange: [Legend.Arrange] turns a Configuration into absolute
//     rectangles for every cell, title, header, separator, and the
//     truncation indicator.
//   - Paint: [Legend.Paint] issues draw calls against a [Painter] and
//     registers hot regions with a [RegionRegistry].
//
// [Legend.Render] runs the full pass. [Legend.OptimalSize] exposes the
// resolve stage alone so surrounding chart layout can negotiate space.
//
// # Determinism
//
// A pass is single-threaded, re-entrant per legend, and terminates in
// bounded iterations (column count capped at 50, font reduction bounded by
// the minimum font size, truncation bounded by the entry count). Repeat
// calls with unchanged inputs reproduce identical geometry.
package legend
