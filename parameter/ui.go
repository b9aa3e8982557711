package parameter

// Terminal layout
const (
	// HUDRows is the number of status lines at the bottom of the screen
	HUDRows = 1

	// CellsPerUnitX is the horizontal cells drawn for the distance one row covers vertically
	// Terminal cells are about twice as tall as wide
	CellsPerUnitX = 2
)

// Glyphs for content without a registered definition
const (
	GlyphPlayer    = '@'
	GlyphWall      = '│'
	GlyphUnknown   = '?'
	GlyphSeamLine  = '·'
	GlyphThreshold = '-'
)
