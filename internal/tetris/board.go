package tetris

import "github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"

// Board dimensions, fixed for the lifetime of a game.
const (
	Width  = 10
	Height = 20
)

// Board is the grid of locked cells. A cell holds the color of the piece
// that locked there; core.ColorDefault marks an empty cell. The active
// piece is never written into the board until it locks.
type Board [Height][Width]core.Color

// Occupied reports whether the cell at (x, y) holds a locked block.
func (b Board) Occupied(x, y int) bool {
	return b[y][x] != core.ColorDefault
}

// Fits reports whether the shape may be placed with its top-left corner
// at (x, y). Every filled shape cell must map inside the grid and onto
// an empty board cell; walls, floor, and ceiling are all enforced by
// the explicit bounds checks.
func Fits(board Board, shape Shape, x, y int) bool {
	for i, row := range shape {
		for j, v := range row {
			if v == 0 {
				continue
			}
			cx := x + j
			cy := y + i
			if cx < 0 || cx >= Width || cy < 0 || cy >= Height {
				return false
			}
			if board.Occupied(cx, cy) {
				return false
			}
		}
	}
	return true
}

// Merge returns a copy of the board with the shape's filled cells
// written in the given color at (x, y). Cells that would land outside
// the grid are ignored; Fits should have validated the placement.
func Merge(board Board, shape Shape, x, y int, color core.Color) Board {
	for i, row := range shape {
		for j, v := range row {
			if v == 0 {
				continue
			}
			cx := x + j
			cy := y + i
			if cx < 0 || cx >= Width || cy < 0 || cy >= Height {
				continue
			}
			board[cy][cx] = color
		}
	}
	return board
}

// fullRow reports whether every cell in the row is occupied.
func fullRow(row [Width]core.Color) bool {
	for _, c := range row {
		if c == core.ColorDefault {
			return false
		}
	}
	return true
}

// ClearFullRows removes every fully occupied row, inserts an equal
// number of empty rows at the top, and returns the compacted board
// together with the removed row indices in top-to-bottom order. The
// relative order of surviving rows is preserved.
func ClearFullRows(board Board) (Board, []int) {
	var cleared []int
	var result Board

	write := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if fullRow(board[y]) {
			cleared = append(cleared, y)
			continue
		}
		result[write] = board[y]
		write--
	}

	// Removed rows were collected bottom-up; report them top-down.
	for i, j := 0, len(cleared)-1; i < j; i, j = i+1, j-1 {
		cleared[i], cleared[j] = cleared[j], cleared[i]
	}
	return result, cleared
}
