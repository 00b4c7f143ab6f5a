package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"picotris/hal"
	"picotris/kernel"
	"picotris/render"

	"tinygo.org/x/tinyfont"
)

const (
	panicLineHeight = 7
	panicCols       = render.Width / 4
)

var panicFG = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// installPanicHandler logs the panic with its stack and leaves a panic
// screen on the panel. The kernel stops scheduling afterwards.
func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil || fb.Format() != hal.PixelFormatMono1Page {
			return
		}
		drawPanic(fb, lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"picotris panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	c := render.NewCanvas(fb.Buffer())
	c.Clear()

	font := &tinyfont.TomThumb
	y := int16(panicLineHeight - 1)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		for len(line) > 0 {
			if int(y) >= render.Height {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, panicCols)
			tinyfont.WriteLine(c, font, 0, y, chunk, panicFG)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
