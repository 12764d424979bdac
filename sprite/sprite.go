// Package sprite builds the tile images at startup and locates a UI font.
// Tiles are generated in grayscale so the per-piece tint can colorize them
// with a ColorScale at draw time; there are no binary assets in the repo.
package sprite

import (
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const tileSize = 64

var (
	// Ice and Burger are the two tile themes, indexed by cell.Type.
	Ice, Burger *ebiten.Image
	// Ghost is the translucent landing-preview tile.
	Ghost *ebiten.Image
	// Pixel is a small white square used for particles.
	Pixel *ebiten.Image
	// Face is the UI font face. May stay nil when no system font is
	// found; callers fall back to debug text.
	Face font.Face
)

// Tile returns the themed tile image for a visual type index.
func Tile(typ int) *ebiten.Image {
	if typ == 1 {
		return Burger
	}
	return Ice
}

// fontCandidates are common system font paths, tried in order. Missing
// all of them is fine; text rendering degrades instead of failing.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// Load builds the tile images and tries to load a UI font.
func Load() error {
	Ice = ebiten.NewImageFromImage(buildTile(false))
	Burger = ebiten.NewImageFromImage(buildTile(true))
	Ghost = ebiten.NewImageFromImage(buildGhost())
	Pixel = ebiten.NewImage(4, 4)
	Pixel.Fill(color.White)
	Face = loadFace(22)
	return nil
}

func loadFace(size float64) font.Face {
	for _, path := range fontCandidates {
		bs, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(bs)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			continue
		}
		return face
	}
	return nil
}

// buildTile draws a shaded square: dark drop edge at bottom-right, bright
// body, and a theme accent. banded=true gets the burger's horizontal
// bands; otherwise a round ice-cream highlight.
func buildTile(banded bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tileSize, tileSize))
	const edge = 4
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			v := uint8(225)
			switch {
			case x >= tileSize-edge || y >= tileSize-edge:
				v = 110 // shadow edge
			case x < edge || y < edge:
				v = 250 // lit edge
			}
			if banded {
				if y > 20 && y < 26 || y > 38 && y < 44 {
					v = v - 60
				}
			} else {
				dx, dy := x-22, y-22
				if dx*dx+dy*dy < 110 {
					v = 255
				}
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// buildGhost draws a hollow outline with a faint interior.
func buildGhost() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tileSize, tileSize))
	const border = 3
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			onBorder := x < border || y < border || x >= tileSize-border || y >= tileSize-border
			a := uint8(30)
			if onBorder {
				a = 150
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: a})
		}
	}
	return img
}
