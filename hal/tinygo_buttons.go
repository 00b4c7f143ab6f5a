//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

// machinePin adapts a machine.Pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	mode GPIOMode
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	var m machine.PinMode
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case pull == GPIOPullUp:
		m = machine.PinInputPullup
	default:
		m = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return errors.New("gpio: pin " + p.name + ": not in output mode")
	}
	p.pin.Set(level)
	return nil
}

type adcPin struct {
	adc machine.ADC
}

func (a adcPin) Get() uint16 { return a.adc.Get() }

// newBoardButtons combines the analog stick with the discrete keys. Keys
// that are not fitted read released through their pull-ups.
func newBoardButtons(log Logger) Buttons {
	var keys [ButtonCount]GPIOPin
	for i, pin := range [ButtonCount]machine.Pin{
		ButtonLeft:      machine.GP10,
		ButtonRight:     machine.GP11,
		ButtonRotateCW:  machine.GP12,
		ButtonRotateCCW: machine.GP13,
		ButtonSoftDrop:  machine.GP14,
		ButtonHardDrop:  machine.GP15,
	} {
		keys[i] = &machinePin{name: Button(i).String(), pin: pin}
	}
	var srcs []Buttons
	if b, err := NewPinButtons(keys, true); err == nil {
		srcs = append(srcs, b)
	} else {
		log.WriteLineString("hal: keys: " + err.Error())
	}

	machine.InitADC()
	x := machine.ADC{Pin: machine.ADC1}
	y := machine.ADC{Pin: machine.ADC0}
	x.Configure(machine.ADCConfig{})
	y.Configure(machine.ADCConfig{})
	push := &machinePin{name: "stick", pin: machine.GP22}
	if j, err := NewJoystick(adcPin{x}, adcPin{y}, push, 0); err == nil {
		srcs = append(srcs, j)
	} else {
		log.WriteLineString("hal: stick: " + err.Error())
	}
	return MergeButtons(srcs...)
}
