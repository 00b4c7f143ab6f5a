//go:build !tinygo && cgo

package hal

import (
	"image/color"

	"picotris/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	pixelOn  = color.RGBA{R: 0x9c, G: 0xe8, B: 0xff, A: 0xff}
	pixelOff = color.RGBA{R: 0x05, G: 0x08, B: 0x10, A: 0xff}
)

// RunWindow starts a desktop window that shows the panel upright, the way
// it is mounted on the device, and forwards the keyboard as buttons. It
// blocks until the window closes.
func RunWindow(opt HostOptions, newApp func(HAL) func() error, scale int) error {
	if scale <= 0 {
		scale = 4
	}
	h := NewHost(opt)
	step := newApp(h)

	g := &hostGame{h: h, step: step, scratch: make([]byte, PanelWidth*PanelHeight/8)}
	ebiten.SetWindowTitle("picotris (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(PanelHeight*scale, PanelWidth*scale)
	ebiten.SetTPS(120)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *Host
	img     *ebiten.Image
	pix     []byte
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.sync()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(PanelHeight, PanelWidth)
		g.pix = make([]byte, PanelWidth*PanelHeight*4)
	}
	g.h.fb.snapshot(g.scratch)

	// Portrait (x, y) sits at panel (y, PanelHeight-1-x).
	for y := 0; y < PanelWidth; y++ {
		for x := 0; x < PanelHeight; x++ {
			px, py := y, PanelHeight-1-x
			c := pixelOff
			if g.scratch[px+(py/8)*PanelWidth]&(1<<(py%8)) != 0 {
				c = pixelOn
			}
			j := (y*PanelHeight + x) * 4
			g.pix[j+0] = c.R
			g.pix[j+1] = c.G
			g.pix[j+2] = c.B
			g.pix[j+3] = c.A
		}
	}
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return PanelHeight, PanelWidth
}
