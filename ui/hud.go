package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sky/systems"
)

// HUDData holds the values shown in the status panel.
type HUDData struct {
	Frame       uint64
	FPS         int32
	SunSet      bool
	CycleAmount float64
	Darken      float64
	Speedup     bool
}

// HUD renders the status panel and the speedup toggle.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Visible reports whether the panel is drawn.
func (h *HUD) Visible() bool { return h.visible }

// Draw renders the panel and returns the speedup toggle state, which may have
// been flipped by a click this frame.
func (h *HUD) Draw(data HUDData) bool {
	if !h.visible {
		return data.Speedup
	}

	r := h.renderer
	pad := r.Theme.Padding
	height := int32(6*r.Theme.LineHeight + 40)
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + pad
	y := r.DrawSectionHeader(x, h.y+pad, "Sky")

	phase := "day"
	if data.SunSet {
		phase = "night"
	}
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Phase", phase)
	y = r.DrawBar(x, y, "Cycle", float32(data.CycleAmount), 1, h.width-2*pad)
	y = r.DrawBar(x, y, "Darken", float32(data.Darken), 0.4, h.width-2*pad)

	return gui.Toggle(
		rl.Rectangle{X: float32(x), Y: float32(y + 4), Width: float32(h.width - 2*pad), Height: 20},
		"Fast forward",
		data.Speedup,
	)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders per-system update timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the panel, one line per registered system in update order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("Update timings", x, y, 12, rl.White)
	y += 16
	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 10, rl.Yellow)
	y += 14

	if data.Registry == nil {
		return
	}
	for _, id := range data.Registry.IDs() {
		avg := data.PhaseTimes[id]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", data.Registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 10, color,
		)
		y += 12
	}
}
