package tetris

import (
	"math/rand"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/core"
)

// Kind identifies one of the seven tetromino silhouettes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of tetromino definitions in the catalog.
const KindCount = 7

// String returns the conventional one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Shape is a rectangular 0/1 matrix describing a piece silhouette,
// row-major with the origin at the top-left.
type Shape [][]int

// Tetromino is an immutable (shape, color) pair from the catalog.
// The shape matrix is shared; rotation always produces a new matrix,
// so callers must never write into it.
type Tetromino struct {
	Kind  Kind
	Shape Shape
	Color core.Color
}

// catalog holds the seven tetromino definitions in their spawn
// orientation, each trimmed to its minimal bounding matrix.
var catalog = [KindCount]Tetromino{
	{Kind: KindI, Color: core.ColorCyan, Shape: Shape{
		{1, 1, 1, 1},
	}},
	{Kind: KindO, Color: core.ColorYellow, Shape: Shape{
		{1, 1},
		{1, 1},
	}},
	{Kind: KindT, Color: core.ColorMagenta, Shape: Shape{
		{1, 1, 1},
		{0, 1, 0},
	}},
	{Kind: KindS, Color: core.ColorGreen, Shape: Shape{
		{0, 1, 1},
		{1, 1, 0},
	}},
	{Kind: KindZ, Color: core.ColorRed, Shape: Shape{
		{1, 1, 0},
		{0, 1, 1},
	}},
	{Kind: KindJ, Color: core.ColorBlue, Shape: Shape{
		{1, 0, 0},
		{1, 1, 1},
	}},
	{Kind: KindL, Color: core.ColorOrange, Shape: Shape{
		{0, 0, 1},
		{1, 1, 1},
	}},
}

// Definition returns the catalog entry for the given kind.
func Definition(k Kind) Tetromino {
	return catalog[k]
}

// Rotate returns the shape rotated 90 degrees clockwise: new row i,
// column j equals old row (rows-1-j), column i. Dimensions swap for
// non-square shapes. Four rotations return the original shape.
func Rotate(s Shape) Shape {
	rows := len(s)
	if rows == 0 {
		return s
	}
	cols := len(s[0])

	rotated := make(Shape, cols)
	for i := range rotated {
		rotated[i] = make([]int, rows)
		for j := range rotated[i] {
			rotated[i][j] = s[rows-1-j][i]
		}
	}
	return rotated
}

// Picker chooses which tetromino spawns next. Injecting it keeps piece
// selection replaceable for deterministic tests.
type Picker interface {
	Next() Kind
}

// RandomPicker selects kinds uniformly at random.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a picker seeded for reproducible sequences.
func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly random kind.
func (p *RandomPicker) Next() Kind {
	return Kind(p.rng.Intn(KindCount))
}
