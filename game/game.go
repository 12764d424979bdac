// Package game is the deterministic engine: board, falling piece, hold
// slot, scoring and the fixed-timestep gravity loop. It knows nothing
// about windows, keys or pixels beyond the tile size used to place
// explosion centers for the particle effect.
package game

import (
	"image/color"
	"time"

	"github.com/mvane/iceburger/board"
	"github.com/mvane/iceburger/config"
	"github.com/mvane/iceburger/particle"
	"github.com/mvane/iceburger/piece"
)

// scoreTable maps rows cleared in one lock to the base score, scaled by
// (level+1). A piece spans at most 4 rows, so the table ends at 4.
var scoreTable = [5]int{0, 40, 100, 300, 1200}

// explosionBase is the color particles are jittered around.
var explosionBase = color.NRGBA{R: 255, G: 200, B: 120, A: 255}

// kicks is the offset probe order for rotations: in place, right, left,
// up, down. First non-colliding offset wins.
var kicks = [5][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, -1}, {0, 1}}

// spawnX horizontally centers the 4-wide mask.
const spawnX = board.Cols/2 - 2

// Sounds receives game events worth a cue. Implementations must not
// block; a nil Sounds is replaced by a no-op.
type Sounds interface {
	LineClear(rows int)
	Lock()
	GameOver()
}

type nopSounds struct{}

func (nopSounds) LineClear(int) {}
func (nopSounds) Lock()         {}
func (nopSounds) GameOver()     {}

// Game is the root state. Fields are exported for the render layer to
// read; all mutation goes through Apply and Advance on the owning
// goroutine.
type Game struct {
	Board     board.Board
	Cur, Next piece.Piece
	HoldPiece piece.Piece
	HasHold   bool
	CanHold   bool

	Paused bool
	Over   bool
	Done   bool

	Score, Lines, Level int
	FallInterval        time.Duration

	Particles *particle.Pool

	fallAccum time.Duration
	src       piece.Source
	snd       Sounds
	cfg       config.Config
}

// New builds a fresh game. src drives piece generation and pool owns the
// explosion particles; both are injected so tests can pin the sequences.
func New(cfg config.Config, src piece.Source, pool *particle.Pool, snd Sounds) *Game {
	if snd == nil {
		snd = nopSounds{}
	}
	g := &Game{
		Particles: pool,
		src:       src,
		snd:       snd,
		cfg:       cfg,
	}
	g.Reset()
	return g
}

// Reset returns the game to its initial state: empty board, fresh pieces,
// zero score, level 0 speed, no particles.
func (g *Game) Reset() {
	g.Board.Reset()
	g.Cur = piece.Rand(g.src)
	g.Cur.X, g.Cur.Y = spawnX, 0
	g.Next = piece.Rand(g.src)
	g.HoldPiece = piece.Piece{}
	g.HasHold = false
	g.CanHold = true
	g.Paused = false
	g.Over = false
	g.Score = 0
	g.Lines = 0
	g.Level = 0
	g.FallInterval = g.fallInterval(0)
	g.fallAccum = 0
	g.Particles.Reset()
}

func (g *Game) fallInterval(level int) time.Duration {
	ms := g.cfg.StartSpeedMs - level*g.cfg.SpeedStepMs
	if ms < g.cfg.MinSpeedMs {
		ms = g.cfg.MinSpeedMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Apply executes one command. Movement commands are no-ops while paused
// or after game over; Restart, Quit and TogglePause always work.
func (g *Game) Apply(cmd Command) {
	switch cmd {
	case Quit:
		g.Done = true
		return
	case Restart:
		g.Reset()
		return
	case TogglePause:
		g.Paused = !g.Paused
		return
	}
	if g.Paused || g.Over {
		return
	}
	switch cmd {
	case MoveLeft:
		if !g.Board.Collides(g.Cur, g.Cur.X-1, g.Cur.Y) {
			g.Cur.X--
		}
	case MoveRight:
		if !g.Board.Collides(g.Cur, g.Cur.X+1, g.Cur.Y) {
			g.Cur.X++
		}
	case SoftDrop:
		g.stepDown()
	case HardDrop:
		g.hardDrop()
	case RotateCW:
		g.rotate(true)
	case RotateCCW:
		g.rotate(false)
	case Hold:
		g.hold()
	}
}

// Advance feeds elapsed real time into the gravity accumulator and the
// particle integrator. Gravity runs at one step per FallInterval no
// matter how irregular the frame times are; particles keep animating
// through pause and game over.
func (g *Game) Advance(dt time.Duration) {
	if !g.Paused && !g.Over {
		g.fallAccum += dt
		for g.fallAccum >= g.FallInterval {
			g.fallAccum -= g.FallInterval
			g.stepDown()
			if g.Over {
				break
			}
		}
	}
	g.Particles.Update(dt.Seconds())
}

// stepDown is one gravity step: descend if possible, otherwise lock the
// piece, clear lines and spawn the next.
func (g *Game) stepDown() {
	if !g.Board.Collides(g.Cur, g.Cur.X, g.Cur.Y+1) {
		g.Cur.Y++
		return
	}
	g.lock()
}

func (g *Game) hardDrop() {
	for !g.Board.Collides(g.Cur, g.Cur.X, g.Cur.Y+1) {
		g.Cur.Y++
	}
	g.lock()
}

func (g *Game) lock() {
	g.Board.Lock(g.Cur)
	tile := float64(g.cfg.TileSize)
	cleared := g.Board.ClearFull(func(row int) {
		cx := tile * board.Cols / 2
		cy := tile * (float64(row) + 0.5)
		g.Particles.SpawnExplosion(cx, cy, tile*board.Cols*0.1, tile*2, explosionBase)
	})
	if cleared > 0 {
		g.Score += scoreTable[cleared] * (g.Level + 1)
		g.Lines += cleared
		g.Level = g.Lines / 10
		g.FallInterval = g.fallInterval(g.Level)
		g.snd.LineClear(cleared)
	} else {
		g.snd.Lock()
	}
	g.spawn()
}

// spawn promotes the lookahead piece and refills it. A spawn that
// immediately collides is the terminal condition.
func (g *Game) spawn() {
	g.Cur = g.Next
	g.Next = piece.Rand(g.src)
	g.Cur.X, g.Cur.Y = spawnX, 0
	if g.Board.Collides(g.Cur, g.Cur.X, g.Cur.Y) {
		g.Over = true
		g.snd.GameOver()
	}
	g.CanHold = true
}

// rotate tries the rotated mask at each kick offset in order and keeps
// the first placement that fits. No fit leaves the piece untouched.
func (g *Game) rotate(cw bool) {
	t := g.Cur
	if cw {
		t.Mask = t.Mask.RotateCW()
	} else {
		t.Mask = t.Mask.RotateCCW()
	}
	for _, k := range kicks {
		if !g.Board.Collides(t, t.X+k[0], t.Y+k[1]) {
			t.X += k[0]
			t.Y += k[1]
			g.Cur = t
			return
		}
	}
}

// hold stashes the current piece, or swaps it with the stashed one. The
// swapped-in piece keeps its stored rotation but restarts at the spawn
// position. Usable once per spawn.
func (g *Game) hold() {
	if !g.CanHold {
		return
	}
	if !g.HasHold {
		g.HoldPiece = g.Cur
		g.HasHold = true
		g.spawn()
	} else {
		g.Cur, g.HoldPiece = g.HoldPiece, g.Cur
		g.Cur.X, g.Cur.Y = spawnX, 0
		if g.Board.Collides(g.Cur, g.Cur.X, g.Cur.Y) {
			g.Over = true
			g.snd.GameOver()
		}
	}
	g.CanHold = false
}

// Ghost returns the current piece dropped to its landing row, for the
// translucent landing preview.
func (g *Game) Ghost() piece.Piece {
	p := g.Cur
	for !g.Board.Collides(p, p.X, p.Y+1) {
		p.Y++
	}
	return p
}
