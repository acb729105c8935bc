// Package assets holds the static display data for the observatory demo:
// the glyph set terrain and viewers are drawn with.
package assets

// Glyph constants for the observatory's terrain and actors.
const (
	GlyphPlayer   = "🧙"
	GlyphOtherEye = "👁️"
	GlyphWall     = "🧱"
	GlyphHaze     = "🌫️"
	GlyphDoor     = "🚪"
	GlyphDimWall  = "⬛" // wall lit at residual visibility 0: the last cell light reaches
	GlyphDimHaze  = "▒" // haze lit at residual visibility 0
	GlyphDimFloor = "·" // floor lit at residual visibility 0
	GlyphUnseen   = " " // in-bounds map cell the current sweep didn't reach
)

// FloorGlyphsByBrightness maps a quantized visibility bucket (0 = dimmest
// lit floor, last = full initial visibility) to the glyph drawn for open
// floor at that brightness.
var FloorGlyphsByBrightness = []string{GlyphDimFloor, "∴", "░", "▒", "▓", "█"}
