// Package renderer draws landscape snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/landscape/components"
	"github.com/pthm-cable/landscape/game"
)

// Palette maps markers to cell colors.
type Palette struct {
	Background rl.Color
	GridLine   rl.Color
	Plant      rl.Color
	Herbivore  rl.Color
	Carnivore  rl.Color
	Dead       rl.Color
	Killed     rl.Color
	Notch      rl.Color
}

// DefaultPalette returns the default cell colors.
func DefaultPalette() Palette {
	return Palette{
		Background: rl.Color{R: 18, G: 22, B: 20, A: 255},
		GridLine:   rl.Color{R: 30, G: 36, B: 33, A: 255},
		Plant:      rl.Color{R: 70, G: 160, B: 70, A: 255},
		Herbivore:  rl.Color{R: 220, G: 200, B: 90, A: 255},
		Carnivore:  rl.Color{R: 210, G: 70, B: 60, A: 255},
		Dead:       rl.Color{R: 90, G: 90, B: 90, A: 255},
		Killed:     rl.Color{R: 120, G: 30, B: 40, A: 255},
		Notch:      rl.Color{R: 20, G: 20, B: 20, A: 255},
	}
}

// Color returns the fill for a marker.
func (p Palette) Color(m game.Marker) rl.Color {
	switch {
	case m == game.MarkerPlant:
		return p.Plant
	case m == game.MarkerDeadAnimal:
		return p.Dead
	case m == game.MarkerKilledAnimal:
		return p.Killed
	case m >= game.MarkerCarnLeft && m <= game.MarkerCarnBack:
		return p.Carnivore
	case m.IsAnimal():
		return p.Herbivore
	default:
		return p.Background
	}
}

// GridRenderer draws a snapshot as a grid of colored cells with the origin
// at the top-left corner of the window.
type GridRenderer struct {
	Palette Palette

	width, height int32
	cellSize      int32
	showLines     bool
}

// NewGridRenderer creates a renderer for a width x height grid.
func NewGridRenderer(width, height, cellSize int32) *GridRenderer {
	return &GridRenderer{
		Palette:   DefaultPalette(),
		width:     width,
		height:    height,
		cellSize:  cellSize,
		showLines: cellSize >= 6,
	}
}

// Draw renders the snapshot. Must be called between BeginDrawing and
// EndDrawing.
func (g *GridRenderer) Draw(s game.Snapshot) {
	cs := g.cellSize
	rl.DrawRectangle(0, 0, g.width*cs, g.height*cs, g.Palette.Background)

	if g.showLines {
		for x := int32(0); x <= g.width; x++ {
			rl.DrawLine(x*cs, 0, x*cs, g.height*cs, g.Palette.GridLine)
		}
		for y := int32(0); y <= g.height; y++ {
			rl.DrawLine(0, y*cs, g.width*cs, y*cs, g.Palette.GridLine)
		}
	}

	for _, p := range s {
		px, py := int32(p.X)*cs, int32(p.Y)*cs
		rl.DrawRectangle(px+1, py+1, cs-1, cs-1, g.Palette.Color(p.Marker))

		if p.Marker.IsAnimal() && cs >= 6 {
			x, y, w, h := notch(px, py, cs, p.Marker.Facing())
			rl.DrawRectangle(x, y, w, h, g.Palette.Notch)
		}
	}
}

// notch returns a small bar on the side of the cell the animal faces.
func notch(px, py, cs int32, d components.Direction) (x, y, w, h int32) {
	t := max(cs/5, 1)
	switch d {
	case components.North:
		return px + cs/4, py + 1, cs / 2, t
	case components.South:
		return px + cs/4, py + cs - t, cs / 2, t
	case components.West:
		return px + 1, py + cs/4, t, cs / 2
	default:
		return px + cs - t, py + cs/4, t, cs / 2
	}
}
