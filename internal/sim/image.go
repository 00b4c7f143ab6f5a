package sim

import (
	"image"
	"image/color"

	"picotris/render"
)

// Image converts a panel frame to an upright grayscale picture, scale pixels
// per dot.
func Image(frame []byte, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	img := image.NewGray(image.Rect(0, 0, render.Width*scale, render.Height*scale))
	c := render.NewCanvas(frame)
	for y := 0; y < render.Height; y++ {
		for x := 0; x < render.Width; x++ {
			if !c.Pixel(x, y) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(x*scale+dx, y*scale+dy, color.Gray{Y: 0xFF})
				}
			}
		}
	}
	return img
}
