package cell

import "image/color"

// Type is the visual theme of a tile. Every piece is randomly themed as
// either ice cream or burger on creation; the theme rides along into the
// board when the piece locks.
type Type int

const (
	Ice Type = iota
	Burger
)

// Tint is an index into the per-piece color table.
type Tint int

const (
	Teal   Tint = iota // I
	Yellow             // O
	Purple             // T
	Green              // S
	Rose               // Z
	Blue               // J
	Amber              // L
)

var tints = [...]color.NRGBA{
	Teal:   {R: 45, G: 212, B: 191, A: 255},
	Yellow: {R: 250, G: 204, B: 21, A: 255},
	Purple: {R: 192, G: 132, B: 252, A: 255},
	Green:  {R: 74, G: 222, B: 128, A: 255},
	Rose:   {R: 251, G: 113, B: 133, A: 255},
	Blue:   {R: 96, G: 165, B: 250, A: 255},
	Amber:  {R: 245, G: 158, B: 11, A: 255},
}

func (t Tint) NRGBA() color.NRGBA {
	if t < 0 || int(t) >= len(tints) {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return tints[t]
}

// Cell is a single board square. Type and Tint are undefined while
// Filled is false.
type Cell struct {
	Filled bool
	Type   Type
	Tint   Tint
}
