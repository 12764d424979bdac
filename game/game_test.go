package game_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvane/iceburger/board"
	"github.com/mvane/iceburger/cell"
	"github.com/mvane/iceburger/config"
	"github.com/mvane/iceburger/game"
	"github.com/mvane/iceburger/particle"
	"github.com/mvane/iceburger/piece"
)

// seqSource replays kind/type pairs so spawn order is exact.
type seqSource struct {
	seq []int
	i   int
}

func (s *seqSource) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)]
	s.i++
	return v % n
}

func onlyKind(k piece.Kind) *seqSource {
	return &seqSource{seq: []int{int(k), 0}}
}

func newTestGame(src piece.Source) *game.Game {
	pool := particle.NewPool(rand.New(rand.NewSource(1)))
	return game.New(config.Default(), src, pool, nil)
}

func fillRow(g *game.Game, r int, except ...int) {
	for c := 0; c < board.Cols; c++ {
		skip := false
		for _, e := range except {
			if c == e {
				skip = true
			}
		}
		if !skip {
			g.Board[r][c] = cell.Cell{Filled: true}
		}
	}
}

func TestHardDropOnEmptyBoard(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))

	g.Apply(game.HardDrop)

	// The O locks flush with the floor at the spawn columns.
	assert.Equal(t, 4, g.Board.FilledCount())
	for _, c := range []int{3, 4} {
		assert.True(t, g.Board[board.Rows-1][c].Filled)
		assert.True(t, g.Board[board.Rows-2][c].Filled)
	}
	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 0, g.Lines)
	assert.False(t, g.Over)
	// The lookahead was promoted to a fresh spawn position.
	assert.Equal(t, piece.O, g.Cur.Kind)
	assert.Equal(t, 0, g.Cur.Y)
}

func TestSingleLineClearScoresAndExplodes(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	fillRow(g, board.Rows-1, 3, 4)

	g.Apply(game.HardDrop)

	assert.Equal(t, 1, g.Lines)
	assert.Equal(t, 40, g.Score)
	assert.Equal(t, 0, g.Level)
	assert.Positive(t, g.Particles.Count(), "clearing a row fires an explosion")
	// Only the O's top half survives, slid down to the floor.
	assert.Equal(t, 2, g.Board.FilledCount())
	assert.True(t, g.Board[board.Rows-1][3].Filled)
	assert.True(t, g.Board[board.Rows-1][4].Filled)
}

func TestScoreScalesWithLevel(t *testing.T) {
	tests := []struct {
		level, rows, want int
	}{
		{0, 1, 40}, {0, 2, 100},
		{2, 1, 120}, {2, 2, 300},
	}
	for _, test := range tests {
		g := newTestGame(onlyKind(piece.O))
		g.Level = test.level
		for r := board.Rows - test.rows; r < board.Rows; r++ {
			fillRow(g, r, 3, 4)
		}

		g.Apply(game.HardDrop)

		assert.Equal(t, test.want, g.Score, "level %d, %d rows", test.level, test.rows)
	}
}

func TestQuadClearScoresTetris(t *testing.T) {
	g := newTestGame(onlyKind(piece.I))
	for r := board.Rows - 4; r < board.Rows; r++ {
		fillRow(g, r, 9)
	}

	// Stand the I upright and walk it to the right wall.
	g.Apply(game.RotateCW)
	for i := 0; i < 6; i++ {
		g.Apply(game.MoveRight)
	}
	g.Apply(game.HardDrop)

	assert.Equal(t, 4, g.Lines)
	assert.Equal(t, 1200, g.Score)
	assert.Equal(t, 0, g.Board.FilledCount())
}

func TestLevelAndSpeedProgression(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	start := g.FallInterval
	g.Lines = 9
	fillRow(g, board.Rows-1, 3, 4)

	g.Apply(game.HardDrop)

	assert.Equal(t, 10, g.Lines)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, start-70*time.Millisecond, g.FallInterval)
}

func TestSpeedFloor(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	g.Lines = 999 // far past the point where the curve bottoms out
	fillRow(g, board.Rows-1, 3, 4)

	g.Apply(game.HardDrop)

	assert.Equal(t, 100, g.Level)
	assert.Equal(t, 90*time.Millisecond, g.FallInterval)
}

func TestGravityAccumulator(t *testing.T) {
	g := newTestGame(onlyKind(piece.I))
	y := g.Cur.Y

	g.Advance(g.FallInterval - time.Millisecond)
	assert.Equal(t, y, g.Cur.Y, "no step before a full interval")

	g.Advance(time.Millisecond)
	assert.Equal(t, y+1, g.Cur.Y, "one step at the interval boundary")

	g.Advance(3 * g.FallInterval)
	assert.Equal(t, y+4, g.Cur.Y, "catches up one step per elapsed interval")
}

func TestPauseGatesEverythingButToggleRestartQuit(t *testing.T) {
	g := newTestGame(onlyKind(piece.I))
	x, y := g.Cur.X, g.Cur.Y

	g.Apply(game.TogglePause)
	require.True(t, g.Paused)

	g.Apply(game.MoveLeft)
	g.Apply(game.RotateCW)
	g.Apply(game.SoftDrop)
	g.Apply(game.Hold)
	g.Advance(10 * g.FallInterval)

	assert.Equal(t, x, g.Cur.X)
	assert.Equal(t, y, g.Cur.Y)
	assert.False(t, g.HasHold)

	g.Apply(game.TogglePause)
	assert.False(t, g.Paused)
	g.Apply(game.MoveLeft)
	assert.Equal(t, x-1, g.Cur.X)
}

func TestHoldOncePerSpawn(t *testing.T) {
	g := newTestGame(&seqSource{seq: []int{int(piece.I), 0, int(piece.O), 0, int(piece.T), 1}})
	require.Equal(t, piece.I, g.Cur.Kind)
	require.Equal(t, piece.O, g.Next.Kind)

	g.Apply(game.Hold)

	assert.True(t, g.HasHold)
	assert.False(t, g.CanHold)
	assert.Equal(t, piece.I, g.HoldPiece.Kind)
	assert.Equal(t, piece.O, g.Cur.Kind, "hold on an empty slot spawns from the queue")
	assert.Equal(t, piece.T, g.Next.Kind)

	// A second hold before the next spawn is a no-op.
	g.Apply(game.Hold)
	assert.Equal(t, piece.O, g.Cur.Kind)
	assert.Equal(t, piece.I, g.HoldPiece.Kind)

	// Locking spawns, which re-arms the hold.
	g.Apply(game.HardDrop)
	assert.True(t, g.CanHold)

	// Now holding swaps with the stored piece and resets its position.
	g.Apply(game.Hold)
	assert.Equal(t, piece.I, g.Cur.Kind)
	assert.Equal(t, piece.T, g.HoldPiece.Kind)
	assert.Equal(t, board.Cols/2-2, g.Cur.X)
	assert.Equal(t, 0, g.Cur.Y)
	assert.False(t, g.CanHold)
}

func TestRotationKickOffWall(t *testing.T) {
	g := newTestGame(onlyKind(piece.I))

	// Upright I in board column 1 (mask column 2 at X = -1).
	g.Apply(game.RotateCW)
	for i := 0; i < 4; i++ {
		g.Apply(game.MoveLeft)
	}
	require.Equal(t, -1, g.Cur.X)

	// Rotating flat would poke through the wall; the (+1,0) kick fits.
	g.Apply(game.RotateCCW)
	assert.Equal(t, 0, g.Cur.X)
	occupied := 0
	for c := 0; c < 4; c++ {
		if g.Cur.Mask[1][c] {
			occupied++
		}
	}
	assert.Equal(t, 4, occupied, "back to the flat orientation")
}

func TestRotationRejectedWhenNoKickFits(t *testing.T) {
	g := newTestGame(onlyKind(piece.I))

	// Upright I flush against the left wall (mask column 2 at X = -2).
	g.Apply(game.RotateCW)
	for i := 0; i < 5; i++ {
		g.Apply(game.MoveLeft)
	}
	require.Equal(t, -2, g.Cur.X)
	before := g.Cur

	g.Apply(game.RotateCCW)
	assert.Equal(t, before, g.Cur, "no kick offset fits, piece unchanged")
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	for r := 0; r < board.Rows; r++ {
		fillRow(g, r, 0)
	}

	g.Apply(game.HardDrop)

	assert.True(t, g.Over)
	// Terminal state rejects movement and gravity.
	cur := g.Cur
	g.Apply(game.MoveLeft)
	g.Advance(10 * g.FallInterval)
	assert.Equal(t, cur, g.Cur)
}

func TestRestartResets(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	fillRow(g, board.Rows-1, 3, 4)
	g.Apply(game.HardDrop)
	require.Positive(t, g.Score)
	require.Positive(t, g.Particles.Count())

	g.Apply(game.Restart)

	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 0, g.Lines)
	assert.Equal(t, 0, g.Level)
	assert.Equal(t, 0, g.Board.FilledCount())
	assert.Equal(t, 0, g.Particles.Count())
	assert.False(t, g.Over)
	assert.True(t, g.CanHold)
	assert.False(t, g.HasHold)
}

func TestQuit(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	g.Apply(game.Quit)
	assert.True(t, g.Done)
}

func TestGhostLandsOnStack(t *testing.T) {
	g := newTestGame(onlyKind(piece.O))
	fillRow(g, board.Rows-1)

	ghost := g.Ghost()

	assert.Equal(t, g.Cur.X, ghost.X)
	assert.Equal(t, board.Rows-3, ghost.Y, "rests on top of the filled floor row")
	assert.Equal(t, 0, g.Cur.Y, "ghost never moves the live piece")
}
