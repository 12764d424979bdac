package board

import (
	"github.com/mvane/iceburger/cell"
	"github.com/mvane/iceburger/piece"
)

// Board dimensions. Fixed; row 0 is the top.
const (
	Rows = 20
	Cols = 10
)

// Board is the playfield grid, falling piece excluded.
type Board [Rows][Cols]cell.Cell

// Reset empties every cell.
func (b *Board) Reset() {
	*b = Board{}
}

// Collides reports whether the piece, placed with its top-left corner at
// (nx, ny), would land outside the playfield or overlap a filled cell.
// It is pure and called speculatively before every move, rotation and
// gravity step.
func (b *Board) Collides(p piece.Piece, nx, ny int) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !p.Mask[r][c] {
				continue
			}
			x, y := nx+c, ny+r
			if x < 0 || x >= Cols || y < 0 || y >= Rows {
				return true
			}
			if b[y][x].Filled {
				return true
			}
		}
	}
	return false
}

// Lock commits the piece's occupied cells into the grid at its current
// position. Cells at out-of-range rows are dropped silently; overflow is
// only detected when the next spawn collides.
func (b *Board) Lock(p piece.Piece) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !p.Mask[r][c] {
				continue
			}
			x, y := p.X+c, p.Y+r
			if y >= 0 && y < Rows && x >= 0 && x < Cols {
				b[y][x] = cell.Cell{Filled: true, Type: p.Type, Tint: p.Tint}
			}
		}
	}
}

// ClearFull removes every full row, scanning from the bottom up. After a
// row is pulled down the same index is examined again, since the row that
// slid into it may itself be full; this makes cascades of stacked full
// rows clear in a single pass. onClear, if non-nil, is invoked with each
// full row's index before it is removed. Returns the number of rows
// cleared.
func (b *Board) ClearFull(onClear func(row int)) int {
	cleared := 0
	for r := Rows - 1; r >= 0; {
		if !b.rowFull(r) {
			r--
			continue
		}
		if onClear != nil {
			onClear(r)
		}
		b.removeRow(r)
		cleared++
	}
	return cleared
}

func (b *Board) rowFull(r int) bool {
	for c := 0; c < Cols; c++ {
		if !b[r][c].Filled {
			return false
		}
	}
	return true
}

// removeRow pulls every row above r down one step and empties row 0.
func (b *Board) removeRow(r int) {
	for y := r; y > 0; y-- {
		b[y] = b[y-1]
	}
	b[0] = [Cols]cell.Cell{}
}

// FilledCount reports the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b[r][c].Filled {
				n++
			}
		}
	}
	return n
}
