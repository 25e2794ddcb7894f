// Command tetricore-demo is a playable single-player driver for package
// engine: it samples the keyboard once per tick, steps the simulation,
// and renders the board and the active piece as flat cells. The ghost
// piece is not drawn.
package main

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/foldedge/tetricore/internal/board"
	"github.com/foldedge/tetricore/internal/engine"
)

const (
	cellSize     = 24
	screenWidth  = board.Width * cellSize
	screenHeight = board.VisibleHeight * cellSize
)

var cellColors = map[board.Color]color.RGBA{
	board.ColorI:       {0, 200, 230, 255},
	board.ColorO:       {240, 220, 0, 255},
	board.ColorT:       {180, 0, 230, 255},
	board.ColorS:       {0, 220, 50, 255},
	board.ColorZ:       {230, 0, 30, 255},
	board.ColorJ:       {0, 50, 230, 255},
	board.ColorL:       {240, 130, 0, 255},
	board.ColorGarbage: {100, 100, 100, 255},
}

var backgroundColor = color.RGBA{20, 20, 26, 255}

// demo implements ebiten.Game, driving an *engine.Game from keyboard
// input sampled once per tick.
type demo struct {
	game       *engine.Game
	pieceRng   *rand.Rand
	garbageRng *rand.Rand
	pixel      *ebiten.Image
}

func newDemo() *demo {
	pieceRng := rand.New(rand.NewPCG(1, 2))
	garbageRng := rand.New(rand.NewPCG(3, 4))
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &demo{
		game:       engine.New(engine.DefaultConfig(), pieceRng),
		pieceRng:   pieceRng,
		garbageRng: garbageRng,
		pixel:      pixel,
	}
}

func (d *demo) sampleController() engine.Controller {
	return engine.Controller{
		Left:      ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:     ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		SoftDrop:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		HardDrop:  ebiten.IsKeyPressed(ebiten.KeySpace),
		RotateCW:  ebiten.IsKeyPressed(ebiten.KeyX),
		RotateCCW: ebiten.IsKeyPressed(ebiten.KeyZ),
		Hold:      ebiten.IsKeyPressed(ebiten.KeyC),
	}
}

func (d *demo) Update() error {
	d.game.Update(d.sampleController(), d.pieceRng, d.garbageRng)
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := d.game.Board()
	for y := 0; y < board.VisibleHeight; y++ {
		for x := 0; x < board.Width; x++ {
			c := b.CellColor(x, y)
			if c == board.ColorNone {
				continue
			}
			d.drawCell(screen, x, y, cellColors[c])
		}
	}

	if piece, ok := d.game.ActivePiece(); ok {
		for _, p := range piece.Cells() {
			d.drawCell(screen, p.X, p.Y, cellColors[piece.Kind.Color()])
		}
	}
}

func (d *demo) drawCell(screen *ebiten.Image, x, y int, c color.RGBA) {
	if y < 0 || y >= board.VisibleHeight {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cellSize-1, cellSize-1)
	op.GeoM.Translate(float64(x*cellSize), float64((board.VisibleHeight-1-y)*cellSize))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(d.pixel, op)
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("tetricore")
	if err := ebiten.RunGame(newDemo()); err != nil {
		log.Fatal(err)
	}
}
