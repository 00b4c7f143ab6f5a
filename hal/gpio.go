package hal

import (
	"fmt"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the input bias. Buttons are wired to ground, so only a
// pull-up is ever needed.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
)

// GPIOCaps declares what a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
)

// GPIOPin is one digital line behind a button or the stick push.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

func pinError(name, format string, args ...any) error {
	return fmt.Errorf("gpio: pin %s: "+format, append([]any{name}, args...)...)
}

// virtualPin is a line held in memory. In output mode Write drives the
// level that Read returns, which is how VirtualButtons presses keys.
type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{name: name, caps: caps}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	need := GPIOCapInput
	if mode == GPIOModeOutput {
		need = GPIOCapOutput
	}
	if pull == GPIOPullUp {
		need |= GPIOCapPullUp
	}
	if p.caps&need != need {
		return pinError(p.name, "mode %d pull %d unsupported", mode, pull)
	}
	p.mode, p.pull = mode, pull
	// A released button reads high through its pull-up.
	if mode == GPIOModeInput && pull == GPIOPullUp {
		p.level = true
	}
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return pinError(p.name, "not in output mode")
	}
	p.level = level
	return nil
}

// signalPin is an input that presses itself on a schedule: high for the
// first high of every period, shifted by phase. Demo mode uses it to play
// unattended.
type signalPin struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
	phase  time.Duration
}

func newSignalPin(name string, period, high, phase time.Duration) GPIOPin {
	return newSignalPinWithClock(name, period, high, phase, time.Now)
}

func newSignalPinWithClock(name string, period, high, phase time.Duration, now func() time.Time) GPIOPin {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = time.Second
	}
	high = min(max(high, 0), period)
	return &signalPin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		high:   high,
		phase:  phase % period,
	}
}

func (p *signalPin) Name() string   { return p.name }
func (p *signalPin) Caps() GPIOCaps { return GPIOCapInput }

func (p *signalPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput || pull != GPIOPullNone {
		return pinError(p.name, "plain input only")
	}
	return nil
}

func (p *signalPin) Read() (bool, error) {
	at := (p.now().Sub(p.t0) - p.phase) % p.period
	if at < 0 {
		at += p.period
	}
	return at < p.high, nil
}

func (p *signalPin) Write(bool) error {
	return pinError(p.name, "input only")
}
