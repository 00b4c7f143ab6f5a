//go:build !tinygo && cgo

package hal

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyMap lists the keys bound to each button. Arrows plus a WASD-style
// cluster for one-handed play.
var keyMap = [ButtonCount][]ebiten.Key{
	ButtonLeft:      {ebiten.KeyArrowLeft, ebiten.KeyA},
	ButtonRight:     {ebiten.KeyArrowRight, ebiten.KeyD},
	ButtonRotateCW:  {ebiten.KeyArrowUp, ebiten.KeyX, ebiten.KeyW},
	ButtonRotateCCW: {ebiten.KeyZ, ebiten.KeyQ},
	ButtonSoftDrop:  {ebiten.KeyArrowDown, ebiten.KeyS},
	ButtonHardDrop:  {ebiten.KeySpace, ebiten.KeyEnter},
}

// hostKeyboard maps held window keys to buttons. The debouncer sees it as a
// perfectly clean switch.
type hostKeyboard struct {
	state atomic.Uint32
}

func newHostKeyboard() *hostKeyboard { return &hostKeyboard{} }

func (k *hostKeyboard) Read() ButtonState { return ButtonState(k.state.Load()) }

// poll samples the keyboard. It must run on the ebiten update goroutine.
func (k *hostKeyboard) poll() {
	var s ButtonState
	for b, keys := range keyMap {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				s = s.With(Button(b))
				break
			}
		}
	}
	k.state.Store(uint32(s))
}
