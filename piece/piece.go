package piece

import (
	"math/rand"

	"github.com/mvane/iceburger/cell"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
	KindCount = 7
)

var kindNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// Mask is a 4x4 occupancy grid. Pieces always carry a full 4x4 mask, even
// when their natural bounding box is smaller; unused cells stay false.
type Mask [4][4]bool

// shapes holds the spawn orientation of each kind.
var shapes = [KindCount]Mask{
	I: mask(
		"....",
		"####",
		"....",
		"....",
	),
	O: mask(
		"##..",
		"##..",
		"....",
		"....",
	),
	T: mask(
		".#..",
		"###.",
		"....",
		"....",
	),
	S: mask(
		".##.",
		"##..",
		"....",
		"....",
	),
	Z: mask(
		"##..",
		".##.",
		"....",
		"....",
	),
	J: mask(
		"#...",
		"###.",
		"....",
		"....",
	),
	L: mask(
		"..#.",
		"###.",
		"....",
		"....",
	),
}

func mask(rows ...string) Mask {
	var m Mask
	for r, row := range rows {
		for c, ch := range row {
			m[r][c] = ch == '#'
		}
	}
	return m
}

// RotateCW returns the mask rotated a quarter turn clockwise. The rotation
// is purely geometric over the full 4x4 grid.
func (m Mask) RotateCW() Mask {
	var out Mask
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c][3-r] = m[r][c]
		}
	}
	return out
}

// RotateCCW returns the mask rotated a quarter turn counter-clockwise.
func (m Mask) RotateCCW() Mask {
	var out Mask
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[3-c][r] = m[r][c]
		}
	}
	return out
}

// Count reports the number of occupied cells.
func (m Mask) Count() int {
	n := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

// Piece is a movable shape instance. X and Y are the board-relative offset
// of the mask's top-left corner and may be transiently invalid; validity is
// only established by collision checks before a move commits.
type Piece struct {
	Kind Kind
	Mask Mask
	X, Y int
	Type cell.Type
	Tint cell.Tint
}

// New returns a piece of the given kind in spawn orientation at the origin.
func New(k Kind, typ cell.Type) Piece {
	return Piece{
		Kind: k,
		Mask: shapes[k],
		Type: typ,
		Tint: cell.Tint(k),
	}
}

// Bounds returns the inclusive extents of the occupied mask cells,
// used to center previews. ok is false for an empty mask.
func (p Piece) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	minX, minY, maxX, maxY = 4, 4, -1, -1
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !p.Mask[r][c] {
				continue
			}
			minX = min(minX, c)
			minY = min(minY, r)
			maxX = max(maxX, c)
			maxY = max(maxY, r)
		}
	}
	return minX, minY, maxX, maxY, maxX >= 0
}

// Source supplies randomness for piece generation. Tests substitute a
// deterministic sequence to pin down exact spawn orders.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source backed by math/rand with the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Rand draws a piece of a uniformly random kind with a random visual type.
func Rand(src Source) Piece {
	return New(Kind(src.Intn(KindCount)), cell.Type(src.Intn(2)))
}
