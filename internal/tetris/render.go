package tetris

import (
	"fmt"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
)

const (
	cellWidth    = 2 // each board cell is drawn two runes wide
	hudHeight    = 2
	sidebarWidth = 18
	sidebarGap   = 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	frameW := Width*cellWidth + 2
	frameH := Height + 2
	totalW := frameW + sidebarGap + sidebarWidth

	originX := (dst.Width() - totalW) / 2
	if originX < 0 {
		originX = 0
	}
	frame := core.NewRect(originX, hudHeight, frameW, frameH)

	g.renderBoard(dst, frame)
	g.renderSidebar(dst, frame.Right()+sidebarGap, frame.Y)
	g.renderOverlays(dst, frame)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Tetris — Score: %d  Level: %d  Lines: %d", g.score, g.level, g.lines)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the well, the locked cells, the active piece, and
// the line-clear flash.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBox(frame)

	ox := frame.X + 1
	oy := frame.Y + 1

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := g.board[y][x]
			if c == core.ColorDefault {
				continue
			}
			g.drawCell(dst, ox, oy, x, y, '█', c)
		}
	}

	if g.phase != PhaseNotStarted {
		g.renderPiece(dst, ox, oy, g.active)
	}

	for _, row := range g.flashRows {
		for x := 0; x < Width; x++ {
			g.drawCell(dst, ox, oy, x, row, '▓', core.ColorWhite)
		}
	}
}

// renderPiece overlays the active piece on the well.
func (g *Game) renderPiece(dst *core.Screen, ox, oy int, p Piece) {
	for i, row := range p.Shape {
		for j, v := range row {
			if v == 0 {
				continue
			}
			g.drawCell(dst, ox, oy, p.X+j, p.Y+i, '█', p.Color)
		}
	}
}

// drawCell paints one board cell at its doubled screen position.
func (g *Game) drawCell(dst *core.Screen, ox, oy, x, y int, r rune, c core.Color) {
	px := ox + x*cellWidth
	py := oy + y
	dst.SetCell(px, py, r, c)
	dst.SetCell(px+1, py, r, c)
}

// renderSidebar draws the next-piece preview, counters, the level-up
// signal, and the session best list.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "NEXT")
	for i, row := range g.next.Shape {
		for j, v := range row {
			if v == 0 {
				continue
			}
			px := x + j*cellWidth
			dst.SetCell(px, y+1+i, '█', g.next.Color)
			dst.SetCell(px+1, y+1+i, '█', g.next.Color)
		}
	}

	dst.DrawText(x, y+4, fmt.Sprintf("Score  %d", g.score))
	dst.DrawText(x, y+5, fmt.Sprintf("Level  %d", g.level))
	dst.DrawText(x, y+6, fmt.Sprintf("Lines  %d", g.lines))

	if g.levelUpTicks > 0 {
		dst.DrawTextColored(x, y+8, fmt.Sprintf("LEVEL %d!", g.level), core.ColorYellow)
	}

	if len(g.highScores) > 0 {
		dst.DrawText(x, y+10, "BEST")
		for i, hs := range g.highScores {
			line := fmt.Sprintf("%d) %-6d %s", i+1, hs.Score, hs.Date.Format("Jan 02"))
			dst.DrawText(x, y+11+i, line)
		}
	}
}

// renderOverlays draws the phase overlays on top of the well.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX, centerY := frame.Center()

	switch g.phase {
	case PhaseNotStarted:
		g.drawOverlay(dst, centerX, centerY, "TETRIS", "Press Enter to start")
	case PhaseGameOver:
		scoreStr := fmt.Sprintf("Score: %d", g.score)
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the footer.
func (g *Game) Controls() string {
	return "A/D: Move | W/X: Rotate | S: Soft drop | Space: Hard drop | R: Restart | Q: Quit"
}
