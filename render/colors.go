package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/run-or-die/content"
)

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(120, 120, 140) // Muted steel
	RgbSeam       = tcell.NewRGBColor(60, 62, 80)    // Faint seam between segments
	RgbThreshold  = tcell.NewRGBColor(90, 40, 40)    // Dim red recycle line
	RgbPlayer     = tcell.NewRGBColor(255, 255, 255) // White
	RgbObstacle   = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbPlatform   = tcell.NewRGBColor(100, 150, 255) // Blue
	RgbHazard     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbCoin       = tcell.NewRGBColor(255, 255, 0)   // Yellow
	RgbUnknown    = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbPaused     = tcell.NewRGBColor(255, 165, 0)   // Orange
)

// ClassColor returns the foreground for a content class
func ClassColor(c content.Class) tcell.Color {
	switch c {
	case content.ClassWall:
		return RgbWall
	case content.ClassPlatform:
		return RgbPlatform
	case content.ClassHazard:
		return RgbHazard
	case content.ClassCoin:
		return RgbCoin
	case content.ClassObstacle:
		return RgbObstacle
	default:
		return RgbUnknown
	}
}

func style(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(RgbBackground)
}
