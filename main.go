package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"github.com/mvane/iceburger/audio"
	"github.com/mvane/iceburger/board"
	"github.com/mvane/iceburger/config"
	"github.com/mvane/iceburger/game"
	"github.com/mvane/iceburger/particle"
	"github.com/mvane/iceburger/piece"
	"github.com/mvane/iceburger/sprite"
)

const (
	margin   = 40
	previewW = 6
	previewH = 6
)

var (
	colBg    = color.NRGBA{R: 20, G: 24, B: 28, A: 255}
	colPanel = color.NRGBA{R: 36, G: 42, B: 48, A: 255}
	colSlot  = color.NRGBA{R: 30, G: 35, B: 40, A: 255}
	colText  = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	colPause = color.NRGBA{R: 255, G: 210, B: 60, A: 255}
	colOver  = color.NRGBA{R: 255, G: 120, B: 120, A: 255}
	colGhost = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// App is the ebiten shell around the engine: it maps keys to commands,
// measures real frame time for the accumulator, and draws the state.
type App struct {
	game *game.Game
	cfg  config.Config
	last time.Time
}

func NewApp(cfg config.Config) *App {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := piece.NewSource(seed)
	pool := particle.NewPool(rand.New(rand.NewSource(seed)))
	snd := audio.NewPlayer(cfg.Audio)
	return &App{
		game: game.New(cfg, src, pool, snd),
		cfg:  cfg,
		last: time.Now(),
	}
}

func (a *App) Update() error {
	for _, cmd := range a.pollCommands() {
		a.game.Apply(cmd)
	}
	if a.game.Done {
		return ebiten.Termination
	}

	now := time.Now()
	dt := now.Sub(a.last)
	a.last = now
	// A dragged window or suspended process must not replay as a gravity
	// avalanche.
	if dt > 250*time.Millisecond {
		dt = 250 * time.Millisecond
	}
	a.game.Advance(dt)
	return nil
}

func (a *App) pollCommands() []game.Command {
	var cmds []game.Command
	repeat := func(key ebiten.Key) bool {
		return inpututil.IsKeyJustPressed(key) ||
			inpututil.KeyPressDuration(key) > a.cfg.KeyRepeatTicks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cmds = append(cmds, game.Quit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		cmds = append(cmds, game.TogglePause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		cmds = append(cmds, game.Restart)
	}
	if repeat(ebiten.KeyLeft) {
		cmds = append(cmds, game.MoveLeft)
	}
	if repeat(ebiten.KeyRight) {
		cmds = append(cmds, game.MoveRight)
	}
	if repeat(ebiten.KeyDown) {
		cmds = append(cmds, game.SoftDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		cmds = append(cmds, game.HardDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		cmds = append(cmds, game.RotateCW)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		cmds = append(cmds, game.RotateCCW)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		cmds = append(cmds, game.Hold)
	}
	return cmds
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	tile := a.cfg.TileSize
	ox, oy := margin, margin

	a.drawBoard(screen, ox, oy)
	if !a.game.Over {
		a.drawPiece(screen, a.game.Ghost(), sprite.Ghost, colGhost, ox, oy, 1)
		tint := a.game.Cur.Tint.NRGBA()
		a.drawPiece(screen, a.game.Cur, sprite.Tile(int(a.game.Cur.Type)), tint, ox, oy, 1)
	}

	px := ox + board.Cols*tile + margin
	a.drawPreview(screen, "NEXT", a.game.Next, true, px, oy)
	holdY := oy + previewH*tile + 24 + tile
	a.drawPreview(screen, "HOLD", a.game.HoldPiece, a.game.HasHold, px, holdY)

	a.drawParticles(screen, ox, oy)

	status := fmt.Sprintf("Score %d   Lines %d   Level %d", a.game.Score, a.game.Lines, a.game.Level)
	a.drawText(screen, status, ox, oy+board.Rows*tile+28, colText)

	if a.game.Paused {
		a.drawText(screen, "PAUSED (P)", ox+3*tile, oy+9*tile, colPause)
	}
	if a.game.Over {
		a.drawText(screen, "GAME OVER (R to restart)", ox+tile, oy+9*tile, colOver)
	}
}

func (a *App) Layout(_, _ int) (int, int) {
	tile := a.cfg.TileSize
	w := margin + board.Cols*tile + margin + previewW*tile + margin
	h := margin + board.Rows*tile + 2*margin
	return w, h
}

func (a *App) drawBoard(screen *ebiten.Image, ox, oy int) {
	tile := a.cfg.TileSize
	fillRect(screen, ox-8, oy-8, board.Cols*tile+16, board.Rows*tile+16, colPanel)
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			px, py := ox+c*tile, oy+r*tile
			fillRect(screen, px, py, tile-1, tile-1, colSlot)
			bc := a.game.Board[r][c]
			if bc.Filled {
				drawTile(screen, sprite.Tile(int(bc.Type)), px, py, tile, bc.Tint.NRGBA(), 1)
			}
		}
	}
}

func (a *App) drawPiece(screen *ebiten.Image, p piece.Piece, img *ebiten.Image, tint color.NRGBA, ox, oy int, alpha float32) {
	tile := a.cfg.TileSize
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !p.Mask[r][c] {
				continue
			}
			x, y := p.X+c, p.Y+r
			if x < 0 || x >= board.Cols || y < 0 || y >= board.Rows {
				continue
			}
			drawTile(screen, img, ox+x*tile, oy+y*tile, tile, tint, alpha)
		}
	}
}

func (a *App) drawPreview(screen *ebiten.Image, label string, p piece.Piece, show bool, ox, oy int) {
	tile := a.cfg.TileSize
	a.drawText(screen, label, ox, oy-12, colText)
	fillRect(screen, ox-8, oy-8, previewW*tile+16, previewH*tile/2+16, colPanel)
	if !show {
		return
	}
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return
	}
	// Center the occupied cells in the panel at half scale.
	half := tile / 2
	w, h := (maxX-minX+1)*half, (maxY-minY+1)*half
	bx := ox + (previewW*tile-w)/2
	by := oy + (previewH*tile/2-h)/2
	for r := minY; r <= maxY; r++ {
		for c := minX; c <= maxX; c++ {
			if !p.Mask[r][c] {
				continue
			}
			drawTile(screen, sprite.Tile(int(p.Type)), bx+(c-minX)*half, by+(r-minY)*half, half, p.Tint.NRGBA(), 1)
		}
	}
}

func (a *App) drawParticles(screen *ebiten.Image, ox, oy int) {
	a.game.Particles.Each(func(pt particle.Particle) {
		var op ebiten.DrawImageOptions
		op.ColorScale.ScaleWithColor(pt.Color)
		op.ColorScale.ScaleAlpha(float32(pt.Opacity()))
		op.GeoM.Translate(float64(ox)+pt.X, float64(oy)+pt.Y)
		screen.DrawImage(sprite.Pixel, &op)
	})
}

func (a *App) drawText(screen *ebiten.Image, s string, x, y int, c color.NRGBA) {
	if sprite.Face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	text.Draw(screen, s, sprite.Face, x, y, c)
}

func drawTile(screen, img *ebiten.Image, x, y, size int, tint color.NRGBA, alpha float32) {
	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleWithColor(tint)
	op.ColorScale.ScaleAlpha(alpha)
	op.GeoM.Scale(float64(size)/float64(img.Bounds().Dx()), float64(size)/float64(img.Bounds().Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, &op)
}

func fillRect(screen *ebiten.Image, x, y, w, h int, c color.NRGBA) {
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), float64(h), c)
}

func main() {
	log.SetFlags(0)
	configPath := flag.String("config", "iceburger.yml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := sprite.Load(); err != nil {
		log.Fatalf("failed to build sprites: %v", err)
	}

	app := NewApp(cfg)
	w, h := app.Layout(0, 0)
	ebiten.SetWindowTitle("IceBurger")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("failed to run game: %v", err)
	}
}
