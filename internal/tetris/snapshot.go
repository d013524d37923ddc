package tetris

import "time"

// Snapshot captures the observable game state for rendering and
// determinism testing. The board and flash rows are copies; shape
// matrices are shared and must be treated as read-only.
type Snapshot struct {
	Tick         uint64
	Phase        Phase
	Board        Board
	Active       Piece
	Next         Tetromino
	Score        int
	Level        int
	Lines        int
	DropInterval time.Duration
	FlashRows    []int
	LevelUpFlash bool
	HighScores   []HighScore
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	flash := make([]int, len(g.flashRows))
	copy(flash, g.flashRows)

	return Snapshot{
		Tick:         g.tick,
		Phase:        g.phase,
		Board:        g.board,
		Active:       g.active,
		Next:         g.next,
		Score:        g.score,
		Level:        g.level,
		Lines:        g.lines,
		DropInterval: g.dropInterval,
		FlashRows:    flash,
		LevelUpFlash: g.levelUpTicks > 0,
		HighScores:   g.HighScores(),
	}
}
