package hal

import (
	"fmt"
	"sync"
	"time"
)

// PinButtons reads one GPIO pin per button.
//
// Pins that fail to read count as released; the failure count is kept for
// diagnostics.
type PinButtons struct {
	pins      [ButtonCount]GPIOPin
	activeLow bool

	mu   sync.Mutex
	errs int
}

// NewPinButtons configures every non-nil pin as an input and returns the
// button source. activeLow selects pull-ups with pressed reading low.
func NewPinButtons(pins [ButtonCount]GPIOPin, activeLow bool) (*PinButtons, error) {
	pull := GPIOPullNone
	if activeLow {
		pull = GPIOPullUp
	}
	for i, p := range pins {
		if p == nil {
			continue
		}
		want := pull
		if p.Caps()&GPIOCapPullUp == 0 {
			want = GPIOPullNone
		}
		if err := p.Configure(GPIOModeInput, want); err != nil {
			return nil, fmt.Errorf("buttons: %s: %w", Button(i), err)
		}
	}
	return &PinButtons{pins: pins, activeLow: activeLow}, nil
}

func (b *PinButtons) Read() ButtonState {
	var s ButtonState
	for i, p := range b.pins {
		if p == nil {
			continue
		}
		level, err := p.Read()
		if err != nil {
			b.mu.Lock()
			b.errs++
			b.mu.Unlock()
			continue
		}
		if level != b.activeLow {
			s = s.With(Button(i))
		}
	}
	return s
}

// Errors returns how many pin reads have failed.
func (b *PinButtons) Errors() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errs
}

// VirtualButtons is a button source driven from code: scripted demos, the
// simulator and tests.
type VirtualButtons struct {
	*PinButtons
	pins [ButtonCount]*virtualPin
}

func NewVirtualButtons() *VirtualButtons {
	v := &VirtualButtons{}
	var pins [ButtonCount]GPIOPin
	for i := range v.pins {
		p := newVirtualPin(Button(i).String(), GPIOCapInput|GPIOCapOutput)
		// Output mode lets Set drive the level; reads work in both modes.
		_ = p.Configure(GPIOModeOutput, GPIOPullNone)
		v.pins[i] = p
		pins[i] = p
	}
	v.PinButtons = &PinButtons{pins: pins}
	return v
}

// Set replaces the pressed state of every button.
func (v *VirtualButtons) Set(s ButtonState) {
	for i, p := range v.pins {
		_ = p.Write(s.Pressed(Button(i)))
	}
}

// Pulse is a periodic press: held for High at the start of every Period,
// shifted by Phase.
type Pulse struct {
	Period time.Duration
	High   time.Duration
	Phase  time.Duration
}

// SignalButtons returns a button source whose pins pulse on a fixed
// schedule, for unattended headless runs.
func SignalButtons(pulses [ButtonCount]Pulse) (*PinButtons, error) {
	var pins [ButtonCount]GPIOPin
	for i, pl := range pulses {
		if pl.Period <= 0 {
			continue
		}
		pins[i] = newSignalPin(Button(i).String(), pl.Period, pl.High, pl.Phase)
	}
	return NewPinButtons(pins, false)
}

// DemoPulses is the unattended button script used by demo mode: pieces
// wander, turn and get dropped every few seconds.
func DemoPulses() [ButtonCount]Pulse {
	var p [ButtonCount]Pulse
	p[ButtonLeft] = Pulse{Period: 1300 * time.Millisecond, High: 60 * time.Millisecond}
	p[ButtonRight] = Pulse{Period: 1700 * time.Millisecond, High: 60 * time.Millisecond, Phase: 400 * time.Millisecond}
	p[ButtonRotateCW] = Pulse{Period: 900 * time.Millisecond, High: 60 * time.Millisecond, Phase: 200 * time.Millisecond}
	p[ButtonHardDrop] = Pulse{Period: 4100 * time.Millisecond, High: 60 * time.Millisecond, Phase: 3000 * time.Millisecond}
	return p
}

// MergeButtons reports a button pressed when any source reports it.
func MergeButtons(srcs ...Buttons) Buttons { return mergedButtons(srcs) }

type mergedButtons []Buttons

func (m mergedButtons) Read() ButtonState {
	var s ButtonState
	for _, b := range m {
		if b != nil {
			s |= b.Read()
		}
	}
	return s
}
