package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/landscape/game"
)

// MaxTickDelayMS is the upper end of the tick delay slider.
const MaxTickDelayMS = 500

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Tick        int32
	TargetTicks int
	Census      game.Census
	Ceilings    [3]int // Plants, herbivores, carnivores; 0 is unlimited
	FPS         int32
	Paused      bool
	DelayMS     float32
	Finished    bool
}

// HUDInput is what the user changed this frame.
type HUDInput struct {
	TogglePause bool
	DelayMS     float32
}

// HUD renders a strip below the grid with population bars and run
// controls.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewHUD creates a HUD occupying the given screen rectangle.
func NewHUD(x, y, width, height int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// Draw renders the HUD and returns the user's input.
func (h *HUD) Draw(data HUDData) HUDInput {
	r := h.renderer
	pad := r.Theme.Padding
	r.DrawPanel(h.x, h.y, h.width, h.height)

	col := h.width / 3

	// Run status
	x, y := h.x+pad, h.y+pad/2
	rl.DrawText("Landscape", x, y, 20, rl.White)
	y += 24
	rl.DrawText(fmt.Sprintf("Tick: %d/%d | FPS: %d", data.Tick, data.TargetTicks, data.FPS), x, y, 14, rl.LightGray)
	y += 18
	status, statusColor := "Running", rl.Green
	switch {
	case data.Finished:
		status, statusColor = "Finished", rl.SkyBlue
	case data.Paused:
		status, statusColor = "PAUSED", rl.Yellow
	}
	rl.DrawText(status, x, y, 14, statusColor)
	if data.Census.Dead > 0 {
		rl.DrawText(fmt.Sprintf("died this tick: %d", data.Census.Dead), x+80, y, 12, rl.Gray)
	}

	// Populations
	x, y = h.x+col, h.y+pad/2
	y = r.DrawFillBar(x, y, "Plants", data.Census.Plants, data.Ceilings[0], col-pad)
	y = r.DrawFillBar(x, y, "Herbivores", data.Census.Herbivores, data.Ceilings[1], col-pad)
	r.DrawFillBar(x, y, "Carnivores", data.Census.Carnivores, data.Ceilings[2], col-pad)

	// Controls
	x, y = h.x+2*col, h.y+pad/2
	in := HUDInput{DelayMS: data.DelayMS}
	label := "Pause"
	if data.Paused {
		label = "Resume"
	}
	in.TogglePause = gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 100, Height: 24}, label) ||
		rl.IsKeyPressed(rl.KeySpace)
	y += 32

	rl.DrawText("Tick delay", x, y+4, r.Theme.FontSize, r.Theme.LabelColor)
	sliderX := float32(x + 70)
	sliderW := float32(col - 70 - 3*pad - 40)
	in.DelayMS = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 20},
		"", "",
		data.DelayMS, 0, MaxTickDelayMS,
	)
	rl.DrawText(fmt.Sprintf("%.0fms", in.DelayMS), int32(sliderX+sliderW)+6, y+4, r.Theme.FontSize, r.Theme.ValueColor)

	return in
}
