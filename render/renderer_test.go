package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/parameter"
)

// testViewport maps one unit to one row and two columns on a 20x21 screen
var testViewport = camera.Viewport{CenterY: 10, Width: 4, Height: 20, VerticalMargin: 30}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 20+parameter.HUDRows)
	return screen
}

func glyphAt(screen tcell.Screen, col, row int) rune {
	r, _, _, _ := screen.GetContent(col, row)
	return r
}

func rowText(screen tcell.Screen, row int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for col := 0; col < w; col++ {
		b.WriteRune(glyphAt(screen, col, row))
	}
	return b.String()
}

func TestLayout(t *testing.T) {
	l := NewLayout(20, 21, testViewport)
	if l.Rows != 20 {
		t.Fatalf("Rows = %d, want 20", l.Rows)
	}

	tests := []struct {
		name     string
		x, y     float64
		col, row int
		ok       bool
	}{
		{"center", 0, 10, 10, 10, true},
		{"top edge", 0, 20, 10, 0, true},
		{"above view", 0, 20.5, 10, -1, false},
		{"bottom row", 0, 0.5, 10, 19, true},
		{"below view", 0, 0, 10, 20, false},
		{"right", 1.5, 10, 13, 10, true},
		{"left off screen", -6, 10, -2, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := l.Cell(tt.x, tt.y)
			if col != tt.col || row != tt.row || ok != tt.ok {
				t.Errorf("Cell(%f, %f) = (%d, %d, %v), want (%d, %d, %v)", tt.x, tt.y, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}

	if got := l.Span(1.5); got != 3 {
		t.Errorf("Span(1.5) = %d, want 3", got)
	}
	if got := l.Span(0.1); got != 1 {
		t.Errorf("Span(0.1) = %d, want at least 1", got)
	}
}

func TestRendererDrawsScene(t *testing.T) {
	screen := newTestScreen(t)
	blade := content.Def{Ref: "blade", Size: mgl64.Vec2{0.5, 0.5}, Glyph: 'x', Class: content.ClassHazard}
	ledge := content.Def{Ref: "ledge", Size: mgl64.Vec2{1.5, 0.3}, Glyph: '=', Class: content.ClassPlatform}
	spike := content.Def{Ref: "spike", Size: mgl64.Vec2{0.5, 0.5}, Glyph: '^', Class: content.ClassObstacle}

	s := Scene{
		Viewport:      testViewport,
		Thresholds:    testViewport.Thresholds(),
		Anchors:       []float64{0, 10},
		SegmentHeight: 10,
		Band: []content.Object{
			{Ref: "blade", World: mgl64.Vec3{1, 12.5, 0}, Def: blade, Known: true},
			{Ref: "ledge", World: mgl64.Vec3{-1, 4.5, 0}, Def: ledge, Known: true},
			{Ref: "mystery", World: mgl64.Vec3{0, 17.5, 0}},
		},
		World:       []content.Object{{Ref: "spike", World: mgl64.Vec3{0, 25.5, 0}, Def: spike, Known: true}},
		Offset:      20,
		PlayerBandY: 1.5,
		HavePlayer:  true,
		Meters:      20,
		Paused:      true,
	}
	NewRenderer(screen).Draw(s)

	checks := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"blade", 12, 7, 'x'},
		{"ledge left", 7, 15, '='},
		{"ledge right", 9, 15, '='},
		{"unknown content", 10, 2, parameter.GlyphUnknown},
		{"world obstacle shifted by offset", 10, 14, '^'},
		{"player", 10, 18, parameter.GlyphPlayer},
		{"seam", 10, 10, parameter.GlyphSeamLine},
		{"left wall", 6, 5, parameter.GlyphWall},
		{"right wall", 14, 5, parameter.GlyphWall},
	}
	for _, c := range checks {
		if got := glyphAt(screen, c.col, c.row); got != c.want {
			t.Errorf("%s at (%d, %d) = %q, want %q", c.name, c.col, c.row, got, c.want)
		}
	}

	hud := rowText(screen, 20)
	if !strings.Contains(hud, "20m") || !strings.Contains(hud, "PAUSED") {
		t.Errorf("HUD = %q", hud)
	}
}

func TestRendererThresholdLines(t *testing.T) {
	screen := newTestScreen(t)
	vp := testViewport
	vp.VerticalMargin = -5
	NewRenderer(screen).Draw(Scene{Viewport: vp, Thresholds: vp.Thresholds()})

	// Top 15 maps to row 5, bottom 5 to row 15
	for _, row := range []int{5, 15} {
		if got := glyphAt(screen, 0, row); got != parameter.GlyphThreshold {
			t.Errorf("row %d starts with %q, want threshold line", row, got)
		}
	}
}

func TestHUDLine(t *testing.T) {
	line := HUDLine(Scene{Meters: 12, Best: 30, Coins: 7, HavePlayer: false})
	if !strings.Contains(line, "12m") || !strings.Contains(line, "best   30m") {
		t.Errorf("HUDLine = %q", line)
	}
	if !strings.Contains(line, "coins 7") {
		t.Errorf("HUDLine = %q, want coin count", line)
	}
	if !strings.Contains(line, "NO PLAYER") {
		t.Errorf("HUDLine = %q, want missing player flag", line)
	}
}

func TestHUDKeepsMarkersOnNarrowScreen(t *testing.T) {
	screen := newTestScreen(t)
	screen.SetSize(12, 20+parameter.HUDRows)
	NewRenderer(screen).Draw(Scene{Viewport: testViewport, Meters: 4000, Paused: true})

	hud := rowText(screen, 20)
	if !strings.HasPrefix(hud, " PAUSED NO P") {
		t.Errorf("HUD = %q, want state markers ahead of the stats", hud)
	}
}
