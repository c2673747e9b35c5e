package tower

import (
	"fmt"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// DefaultUsername is shown when the platform did not supply a name.
const DefaultUsername = "player"

// HUD is the text overlay drawn over the scene. It receives session text
// from the state machine and paints it after the tower.
type HUD struct {
	demo         bool
	username     string
	prompted     string
	score        int
	level        int
	instructions bool
	results      bool
}

// NewHUD creates an overlay. The prompted name is what PromptUsername
// answers; an empty name falls back to DefaultUsername.
func NewHUD(prompted string, demo bool) *HUD {
	return &HUD{prompted: prompted, demo: demo, level: 1}
}

// SetScoreText sets the score shown top left.
func (h *HUD) SetScoreText(score int) { h.score = score }

// SetLevelText sets the level shown top right.
func (h *HUD) SetLevelText(level int) { h.level = level }

// ShowInstructions toggles the start instructions.
func (h *HUD) ShowInstructions(show bool) { h.instructions = show }

// ShowResults toggles the game over box.
func (h *HUD) ShowResults(show bool) { h.results = show }

// SetUsername sets the name shown bottom left.
func (h *HUD) SetUsername(name string) { h.username = name }

// PromptUsername returns the name entered before the game started. The
// terminal platform asks for it before the first frame.
func (h *HUD) PromptUsername() string {
	if h.prompted == "" {
		return DefaultUsername
	}
	return h.prompted
}

// Username returns the name set by the state machine.
func (h *HUD) Username() string {
	return h.username
}

// Draw paints the overlay onto dst.
func (h *HUD) Draw(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", h.score), core.ColorBrightWhite)

	level := fmt.Sprintf("Level %d", h.level)
	dst.DrawTextColor(dst.Width()-len(level)-1, 0, level, core.ColorYellow)

	if h.username != "" {
		dst.DrawTextColor(1, dst.Height()-1, h.username, core.ColorGray)
	}

	switch {
	case h.demo:
		dst.DrawTextCentered(1, "DEMO", core.ColorCyan)
	case h.instructions:
		mid := dst.Height() / 3
		dst.DrawTextCentered(mid, "STACK THE BLOCKS", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+2, "Press SPACE or click to start", core.ColorWhite)
		dst.DrawTextCentered(mid+3, "Press R to restart, Q to quit", core.ColorGray)
	}

	if h.results {
		h.drawResults(dst)
	}
}

// drawResults renders the game over box.
func (h *HUD) drawResults(dst *core.Screen) {
	title := "GAME OVER"
	subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", h.score)

	boxW := len(subtitle) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(boxY+1, title, core.ColorRed)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
