//go:build !tinygo

package hal

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// HostOptions select the host backends.
type HostOptions struct {
	// Demo drives the buttons from fixed signal pins instead of the keyboard.
	Demo bool
	// Audio enables the ebiten buzzer. Volume is the duty cycle percent.
	Audio  bool
	Volume uint8
	// ManualTime makes the tick source advance only by Advance, for
	// simulations that run faster than real time.
	ManualTime bool
	// Buttons replaces the keyboard, for scripted runs.
	Buttons Buttons
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	Quiet     bool
}

// Host is the desktop HAL: an ebiten window or a headless loop.
type Host struct {
	logger  *hostLogger
	led     *hostLED
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	buttons Buttons
	t       *hostTime
	bz      Buzzer
}

// NewHost returns the host HAL implementation.
func NewHost(opt HostOptions) *Host {
	w := opt.LogOutput
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "picotris",
	})
	if opt.Quiet {
		l.SetLevel(log.WarnLevel)
	}
	logger := &hostLogger{l: l}

	h := &Host{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newHostFramebuffer(),
		kbd:    newHostKeyboard(),
		t:      newHostTime(opt.ManualTime),
	}
	h.buttons = h.kbd
	if opt.Buttons != nil {
		h.buttons = opt.Buttons
	} else if opt.Demo {
		if b, err := SignalButtons(DemoPulses()); err == nil {
			h.buttons = b
		} else {
			l.Warn("demo buttons unavailable", "err", err)
		}
	}
	if opt.Audio {
		if bz, err := newHostBuzzer(opt.Volume); err == nil {
			h.bz = bz
		} else {
			l.Warn("audio unavailable", "err", err)
		}
	}
	return h
}

// New returns a host HAL with default options.
func New() HAL { return NewHost(HostOptions{}) }

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) LED() LED         { return h.led }
func (h *Host) Display() Display { return hostDisplay{fb: h.fb} }
func (h *Host) Buttons() Buttons { return h.buttons }
func (h *Host) Time() Time       { return h.t }
func (h *Host) Entropy() Entropy { return hostEntropy{} }

func (h *Host) Buzzer() Buzzer { return h.bz }

// Advance moves a manual clock forward by n milliseconds.
func (h *Host) Advance(n uint64) { h.t.stepN(n) }

// Frame copies the last presented panel contents into dst.
func (h *Host) Frame(dst []byte) { h.fb.snapshot(dst) }

// Presents returns how many frames have been presented.
func (h *Host) Presents() uint64 { return h.fb.presentCount() }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

// hostLogger forwards task log lines to a charmbracelet logger.
type hostLogger struct {
	l *log.Logger
}

func (l *hostLogger) WriteLineString(s string) { l.l.Info(s) }

func (l *hostLogger) WriteLineBytes(b []byte) { l.l.Info(string(b)) }

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.l.Debug("led", "on", true)
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.l.Debug("led", "on", false)
}

type hostEntropy struct{}

func (hostEntropy) Uint32() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
