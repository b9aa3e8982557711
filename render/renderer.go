package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/engine"
	"github.com/lixenwraith/run-or-die/parameter"
	"github.com/lixenwraith/run-or-die/status"
)

// Scene is one frame's worth of drawable state
// Band objects are in band space; World objects are shifted by Offset into band space
type Scene struct {
	Viewport      camera.Viewport
	Thresholds    camera.Thresholds
	Anchors       []float64
	SegmentHeight float64
	Band          []content.Object
	World         []content.Object
	Offset        float64 // world height minus band height

	PlayerBandY float64
	HavePlayer  bool
	Meters      int
	Best        int
	Coins       int
	Speed       float64
	NextHeight  float64
	Frame       int64
	Paused      bool
}

// SceneFromRun snapshots r; the player is drawn at its start height in band space
func SceneFromRun(r *engine.Run) Scene {
	tel, ok := r.Telemetry()
	bandY := r.Options().Mover.StartHeight
	return Scene{
		Viewport:      r.Viewport(),
		Thresholds:    r.Viewport().Thresholds(),
		Anchors:       r.Ring().Anchors(),
		SegmentHeight: r.Ring().Height(),
		Band:          r.BandObjects(),
		World:         r.WorldObjects(),
		Offset:        tel.Height - bandY,
		PlayerBandY:   bandY,
		HavePlayer:    ok,
		Meters:        r.Score().Meters(),
		Best:          int(r.Score().Best()),
		Coins:         r.Score().Coins(),
		Speed:         r.Metrics().Float(status.RingSpeed),
		NextHeight:    r.Cursor().NextHeight(),
		Frame:         r.Frame(),
		Paused:        !r.Running(),
	}
}

// Renderer draws scenes onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw clears the screen, draws s, and shows the result
func (r *Renderer) Draw(s Scene) {
	w, h := r.screen.Size()
	l := NewLayout(w, h, s.Viewport)

	r.screen.SetStyle(style(RgbStatusBar))
	r.screen.Clear()

	r.drawThresholds(l, s.Thresholds)
	r.drawSegments(l, s)
	for _, o := range s.Band {
		if o.Def.Class == content.ClassWall {
			continue
		}
		r.drawObject(l, o, o.World.X(), o.World.Y())
	}
	for _, o := range s.World {
		r.drawObject(l, o, o.World.X(), o.World.Y()-s.Offset)
	}
	if s.HavePlayer {
		if col, row, ok := l.Cell(s.Viewport.CenterX, s.PlayerBandY); ok {
			r.screen.SetContent(col, row, parameter.GlyphPlayer, nil, style(RgbPlayer).Bold(true))
		}
	}
	r.drawHUD(w, h, s)
	r.screen.Show()
}

func (r *Renderer) drawThresholds(l Layout, th camera.Thresholds) {
	st := style(RgbThreshold)
	for _, y := range []float64{th.Top, th.Bottom} {
		row, ok := l.Row(y)
		if !ok {
			continue
		}
		for col := 0; col < l.Cols; col++ {
			r.screen.SetContent(col, row, parameter.GlyphThreshold, nil, st)
		}
	}
}

// drawSegments draws a seam at each anchor and the side walls across each segment
func (r *Renderer) drawSegments(l Layout, s Scene) {
	left, okl := l.Col(s.Viewport.Left())
	right, okr := l.Col(s.Viewport.Right())
	seam := style(RgbSeam)
	wall := style(RgbWall)

	for _, a := range s.Anchors {
		if row, ok := l.Row(a); ok {
			for col := left; col <= right; col++ {
				if col >= 0 && col < l.Cols {
					r.screen.SetContent(col, row, parameter.GlyphSeamLine, nil, seam)
				}
			}
		}
		top, _ := l.Row(a + s.SegmentHeight)
		bottom, _ := l.Row(a)
		for row := max(top, 0); row <= min(bottom, l.Rows-1); row++ {
			if okl {
				r.screen.SetContent(left, row, parameter.GlyphWall, nil, wall)
			}
			if okr {
				r.screen.SetContent(right, row, parameter.GlyphWall, nil, wall)
			}
		}
	}
}

// drawObject draws o centered at (x, y), spanning its registered width
func (r *Renderer) drawObject(l Layout, o content.Object, x, y float64) {
	row, ok := l.Row(y)
	if !ok {
		return
	}
	glyph := parameter.GlyphUnknown
	fg := RgbUnknown
	if o.Known {
		glyph = o.Def.Glyph
		fg = ClassColor(o.Def.Class)
	}

	span := l.Span(o.Def.Size.X())
	center, _ := l.Col(x)
	start := center - span/2
	st := style(fg)
	for col := start; col < start+span; col++ {
		if col >= 0 && col < l.Cols {
			r.screen.SetContent(col, row, glyph, nil, st)
		}
	}
}

// HUDLine formats the status line
// State markers lead so a narrow screen truncates the numbers instead
func HUDLine(s Scene) string {
	var line string
	if s.Paused {
		line += " PAUSED"
	}
	if !s.HavePlayer {
		line += " NO PLAYER"
	}
	return line + fmt.Sprintf(" %4dm  coins %d  best %4dm  speed %+5.1f  next %6.1f  frame %d",
		s.Meters, s.Coins, s.Best, s.Speed, s.NextHeight, s.Frame)
}

func (r *Renderer) drawHUD(w, h int, s Scene) {
	row := h - parameter.HUDRows
	if row < 0 {
		return
	}
	st := style(RgbStatusBar)
	if s.Paused {
		st = style(RgbPaused)
	}
	col := 0
	for _, ch := range HUDLine(s) {
		if col >= w {
			break
		}
		r.screen.SetContent(col, row, ch, nil, st)
		col++
	}
}
