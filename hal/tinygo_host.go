//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	led     *tinyGoHostLED
	fb      *tinyGoHostFramebuffer
	buttons Buttons
	t       *tinyGoHostTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. Buttons follow the demo script.
func New() HAL {
	l := &tinyGoHostLogger{}
	var buttons Buttons = NewVirtualButtons()
	if b, err := SignalButtons(DemoPulses()); err == nil {
		buttons = b
	}
	return &tinyGoHostHAL{
		logger:  l,
		led:     &tinyGoHostLED{},
		fb:      &tinyGoHostFramebuffer{},
		buttons: buttons,
		t:       newTinyGoHostTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return h.led }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Buttons() Buttons { return h.buttons }
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) Entropy() Entropy { return clockEntropy{} }
func (h *tinyGoHostHAL) Buzzer() Buzzer   { return nil }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

// clockEntropy seeds from the wall clock; good enough where no RNG exists.
type clockEntropy struct{}

func (clockEntropy) Uint32() (uint32, error) {
	n := time.Now().UnixNano()
	return uint32(n) ^ uint32(n>>32), nil
}

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on bool
}

func (l *tinyGoHostLED) High() { l.on = true }
func (l *tinyGoHostLED) Low()  { l.on = false }
