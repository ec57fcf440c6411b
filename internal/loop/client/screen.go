package client

import (
	"fmt"

	"github.com/tomz197/strafe/internal/draw"
)

// drawFrame renders the current screen.
func (c *Client) drawFrame() error {
	// Full clears only on transitions; the canvas skips empty cells.
	if c.state.forceClear || c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.ClearScreen()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
		c.state.forceClear = false
	}

	cols, rows := c.canvas.Cells()
	centerX, centerY := cols/2, rows/2

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawCentered(centerX, centerY, "server shutting down")
		c.drawCentered(centerX, centerY+1, fmt.Sprintf("disconnecting in %.0fs", max(0, c.state.shutdownTimer)))
	case c.state.isInactive:
		c.drawCentered(centerX, centerY, "still there? press any key")
	case c.state.GameState == GameStateStart:
		c.drawCentered(centerX, centerY-1, "S T R A F E")
		c.drawCentered(centerX, centerY+1, "press space to start")
	default:
		c.drawPlaying(cols, rows)
	}

	return c.chunkWriter.Flush()
}

func (c *Client) drawPlaying(cols, rows int) {
	snap := c.session.Snapshot()
	if snap == nil {
		return
	}

	// Erase the previous frame's pixels, then draw the new ones.
	c.chunkWriter.ClearScreen()
	c.canvas.Clear()
	c.radar.Draw(c.canvas, snap)
	c.canvas.Render(c.chunkWriter)
	draw.HUD(c.chunkWriter, snap, cols, rows)

	if c.state.banner != "" {
		c.drawCentered(cols/2, rows/2+2, c.state.banner)
	}
	c.chunkWriter.WriteAt(max(1, cols-12), 1, fmt.Sprintf("kills %d", c.state.Kills))
}

func (c *Client) drawCentered(cx, row int, s string) {
	col := max(1, cx-len([]rune(s))/2)
	c.chunkWriter.WriteAt(col, max(1, row), s)
}
