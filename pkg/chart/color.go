package chart

// Color is a hex color literal (#RRGGBB or #RGB). The empty color means
// "use the palette default for the series' position".
type Color string

// DefaultPalette is the series color cycle used when a series or point
// defines no explicit color.
var DefaultPalette = []Color{
	"#4C9AFF", "#F66D44", "#2EC4B6", "#FFBE0B", "#9B5DE5",
	"#00B4D8", "#EF476F", "#8AC926", "#FF9770", "#5F6C7B",
}

// PaletteColor returns the i-th palette color, cycling past the end.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return DefaultPalette[i%len(DefaultPalette)]
}
