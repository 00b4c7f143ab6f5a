package render

import (
	"image/color"

	"picotris/hal"
)

// Logical portrait canvas. The panel is mounted rotated by 270 degrees, so
// the 64-pixel side is the width the game sees.
const (
	Width  = hal.PanelHeight
	Height = hal.PanelWidth

	// BufferSize is the byte size of one 1bpp page-layout frame.
	BufferSize = hal.PanelWidth * hal.PanelHeight / 8
)

// Canvas draws on a PixelFormatMono1Page buffer through portrait
// coordinates. It implements drivers.Displayer so tinyfont can draw on it.
type Canvas struct {
	buf []byte
}

// NewCanvas wraps buf, which must hold at least BufferSize bytes.
func NewCanvas(buf []byte) *Canvas {
	if len(buf) < BufferSize {
		buf = make([]byte, BufferSize)
	}
	return &Canvas{buf: buf[:BufferSize]}
}

// Bytes returns the underlying page buffer.
func (c *Canvas) Bytes() []byte { return c.buf }

// physical maps portrait (x, y) to panel coordinates.
func physical(x, y int) (px, py int) {
	return y, hal.PanelHeight - 1 - x
}

// Logical maps panel coordinates back to portrait (x, y).
func Logical(px, py int) (x, y int) {
	return hal.PanelHeight - 1 - py, px
}

func (c *Canvas) Size() (x, y int16) { return Width, Height }

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.Set(int(x), int(y), col.R|col.G|col.B != 0)
}

func (c *Canvas) Display() error { return nil }

// Set turns the pixel at (x, y) on or off. Out-of-range writes are ignored.
func (c *Canvas) Set(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	px, py := physical(x, y)
	idx := px + (py/8)*hal.PanelWidth
	bit := byte(1) << (py % 8)
	if on {
		c.buf[idx] |= bit
	} else {
		c.buf[idx] &^= bit
	}
}

// Pixel reports whether (x, y) is lit. Out-of-range reads are off.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	px, py := physical(x, y)
	return c.buf[px+(py/8)*hal.PanelWidth]&(1<<(py%8)) != 0
}

// PanelPixel reads the buffer in panel coordinates.
func PanelPixel(buf []byte, px, py int) bool {
	if px < 0 || px >= hal.PanelWidth || py < 0 || py >= hal.PanelHeight {
		return false
	}
	idx := px + (py/8)*hal.PanelWidth
	if idx >= len(buf) {
		return false
	}
	return buf[idx]&(1<<(py%8)) != 0
}

func (c *Canvas) Clear() {
	for i := range c.buf {
		c.buf[i] = 0
	}
}

// FillRect sets a w by h block.
func (c *Canvas) FillRect(x, y, w, h int, on bool) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, on)
		}
	}
}

// StrokeRect draws a one-pixel outline.
func (c *Canvas) StrokeRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for xx := x; xx < x+w; xx++ {
		c.Set(xx, y, true)
		c.Set(xx, y+h-1, true)
	}
	for yy := y; yy < y+h; yy++ {
		c.Set(x, yy, true)
		c.Set(x+w-1, yy, true)
	}
}
