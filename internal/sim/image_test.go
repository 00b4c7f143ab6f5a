package sim

import (
	"testing"

	"picotris/render"
)

func TestImageIsUpright(t *testing.T) {
	frame := make([]byte, render.BufferSize)
	c := render.NewCanvas(frame)
	c.Set(2, 5, true)

	img := Image(frame, 3)
	if b := img.Bounds(); b.Dx() != render.Width*3 || b.Dy() != render.Height*3 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if img.GrayAt(2*3+1, 5*3+2).Y != 0xFF {
		t.Fatal("expected the lit dot scaled in place")
	}
	if img.GrayAt(0, 0).Y != 0 {
		t.Fatal("expected the rest dark")
	}
}
