package app

import (
	"picotris/hal"
	"picotris/internal/buildinfo"
	"picotris/render"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// bootScreen shows the title until the first game frame replaces it.
func bootScreen(fb hal.Framebuffer) {
	if fb == nil || fb.Format() != hal.PixelFormatMono1Page {
		return
	}
	c := render.NewCanvas(fb.Buffer())
	c.Clear()
	centered(c, &proggy.TinySZ8pt7b, 56, "PICO")
	centered(c, &proggy.TinySZ8pt7b, 68, "TRIS")
	centered(c, &tinyfont.TomThumb, 84, buildinfo.Short())
	_ = fb.Present()
}

func centered(c *render.Canvas, font tinyfont.Fonter, y int16, s string) {
	w, _ := tinyfont.LineWidth(font, s)
	x := (int16(render.Width) - int16(w)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(c, font, x, y, s, panicFG)
}
