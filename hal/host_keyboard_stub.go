//go:build !tinygo && !cgo

package hal

type hostKeyboard struct{}

func newHostKeyboard() *hostKeyboard { return &hostKeyboard{} }

func (k *hostKeyboard) Read() ButtonState { return 0 }

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
