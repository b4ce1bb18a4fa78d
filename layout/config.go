package layout

// Config holds the layout tunables. Zero values are not defaulted;
// start from DefaultConfig and adjust.
type Config struct {
	// LineSpacing scales a font size into the vertical advance per line.
	LineSpacing float64

	// BodySize is the font size for unstyled text.
	BodySize float64

	// HeadingSize is the font size for heading runs that carry no
	// sized paragraph style, such as slide titles.
	HeadingSize float64

	// StyleSizes maps paragraph style names to font sizes. A style
	// missing from the map falls back to BodySize.
	StyleSizes map[string]float64

	// TableFontSize is the font size inside table cells.
	TableFontSize float64

	// RowHeight is the fixed height reserved per table row.
	RowHeight float64

	// MinColWidth and MaxColWidth clamp content-sized column widths.
	MinColWidth float64
	MaxColWidth float64

	// SampleRows bounds how many rows are measured when sizing
	// columns to content.
	SampleRows int

	// CellPadding insets cell text from the cell rectangle.
	CellPadding float64
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		LineSpacing: 1.45,
		BodySize:    11,
		HeadingSize: 20,
		StyleSizes: map[string]float64{
			"Title":    26,
			"Heading1": 20,
			"Heading2": 16,
			"Heading3": 14,
		},
		TableFontSize: 10,
		RowHeight:     22,
		MinColWidth:   40,
		MaxColWidth:   200,
		SampleRows:    50,
		CellPadding:   3,
	}
}
