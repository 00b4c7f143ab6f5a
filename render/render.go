// Package render projects game snapshots onto the 1bpp OLED frame.
package render

import (
	"image/color"
	"strconv"

	"picotris/tetris"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Layout of the portrait canvas.
const (
	CellSize = 5

	BoardX = 6
	BoardY = 24

	NextX    = 44
	NextY    = 10
	NextCell = 4
)

var on = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Frame is everything that determines one picture. Equal frames render
// to equal bytes.
type Frame struct {
	Snapshot tetris.Snapshot
	// FlashOn selects the lit phase of rows being cleared.
	FlashOn bool
	// Ghost shows where the active piece would land.
	Ghost bool
}

// Renderer draws frames. It holds no game state.
type Renderer struct {
	small tinyfont.Fonter
	large tinyfont.Fonter
}

func New() *Renderer {
	return &Renderer{small: &tinyfont.TomThumb, large: &proggy.TinySZ8pt7b}
}

// Draw clears buf and renders f into it. buf must hold BufferSize bytes.
func (r *Renderer) Draw(buf []byte, f *Frame) {
	c := NewCanvas(buf)
	c.Clear()

	s := &f.Snapshot
	r.drawHUD(c, s)
	c.StrokeRect(BoardX-1, BoardY-1, tetris.Width*CellSize+2, tetris.Height*CellSize+2)

	if s.State == tetris.StateGameOver {
		r.drawGameOver(c, s)
		return
	}

	for row := 0; row < tetris.Height; row++ {
		if s.Clearing[row] {
			if f.FlashOn {
				c.FillRect(BoardX, BoardY+row*CellSize, tetris.Width*CellSize, CellSize, true)
			}
			continue
		}
		for col := 0; col < tetris.Width; col++ {
			if !s.Board.Cell(col, row).Empty() || s.PieceAt(col, row) {
				drawCell(c, col, row)
			} else if f.Ghost && s.GhostAt(col, row) {
				drawGhost(c, col, row)
			}
		}
	}
}

func drawCell(c *Canvas, col, row int) {
	c.FillRect(BoardX+col*CellSize, BoardY+row*CellSize, CellSize-1, CellSize-1, true)
}

func drawGhost(c *Canvas, col, row int) {
	c.StrokeRect(BoardX+col*CellSize, BoardY+row*CellSize, CellSize-1, CellSize-1)
}

func (r *Renderer) drawHUD(c *Canvas, s *tetris.Snapshot) {
	tinyfont.WriteLine(c, r.small, 1, 6, "SCORE", on)
	tinyfont.WriteLine(c, r.small, 1, 13, strconv.FormatUint(uint64(s.Score), 10), on)
	tinyfont.WriteLine(c, r.small, 1, 20, "LV "+strconv.FormatUint(uint64(s.Level), 10), on)

	tinyfont.WriteLine(c, r.small, NextX, 6, "NEXT", on)
	if s.State == tetris.StateGameOver {
		return
	}
	for _, o := range tetris.ShapeBlocks(s.Next, 0) {
		x := NextX + int(o.X)*NextCell
		y := NextY + int(o.Y)*NextCell
		c.FillRect(x, y, NextCell-1, NextCell-1, true)
	}
}

func (r *Renderer) drawGameOver(c *Canvas, s *tetris.Snapshot) {
	r.centered(c, r.large, 60, "GAME")
	r.centered(c, r.large, 72, "OVER")
	r.centered(c, r.small, 88, strconv.FormatUint(uint64(s.Score), 10))
	r.centered(c, r.small, 104, "DROP:NEW")
}

func (r *Renderer) centered(c *Canvas, font tinyfont.Fonter, y int16, s string) {
	w, _ := tinyfont.LineWidth(font, s)
	x := (int16(Width) - int16(w)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(c, font, x, y, s, on)
}
