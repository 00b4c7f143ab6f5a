package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Panel geometry of the SSD1306 module.
const (
	PanelWidth  = 128
	PanelHeight = 64
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatMono1Page is 1bpp in SSD1306 GDDRAM order: each byte is a
	// vertical strip of 8 pixels, byte index x + (y/8)*width, bit y%8.
	PixelFormatMono1Page PixelFormat = iota + 1
)

// Framebuffer is a monochrome pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	Buffer() []byte
	Clear()
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Button is one of the fixed control buttons.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonRotateCW
	ButtonRotateCCW
	ButtonSoftDrop
	ButtonHardDrop

	ButtonCount = 6
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonRotateCW:
		return "rotate-cw"
	case ButtonRotateCCW:
		return "rotate-ccw"
	case ButtonSoftDrop:
		return "soft-drop"
	case ButtonHardDrop:
		return "hard-drop"
	default:
		return "unknown"
	}
}

// ButtonState is a bitmask of pressed buttons, bit n for Button n.
type ButtonState uint8

func (s ButtonState) Pressed(b Button) bool { return s&(1<<b) != 0 }

// With returns s with b pressed.
func (s ButtonState) With(b Button) ButtonState { return s | 1<<b }

// Buttons exposes the raw state of the control buttons. It is polled.
type Buttons interface {
	Read() ButtonState
}

// Time provides a base tick stream.
//
// One tick is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
}

// Entropy supplies seed material for the piece generator.
type Entropy interface {
	Uint32() (uint32, error)
}

// Buzzer plays square-wave tones.
type Buzzer interface {
	Tone(hz uint32) error
	Off() error
}

// HAL provides the only contact point between the game and the outside world.
//
// Buzzer may return nil when the board has no speaker.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Buttons() Buttons
	Time() Time
	Entropy() Entropy
	Buzzer() Buzzer
}

// VolumeControl is implemented by buzzers with adjustable loudness.
type VolumeControl interface {
	// SetVolume takes the duty cycle in percent; 50 is the loudest.
	SetVolume(percent uint8)
}
