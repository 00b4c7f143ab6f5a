//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// pwmBuzzer drives a piezo buzzer with a square wave whose duty cycle sets
// the loudness.
type pwmBuzzer struct {
	pin machine.Pin
	pwm pwmDevice
	ch  uint8

	volume uint8 // duty cycle percent
	hz     uint32
}

func newPWMBuzzer(pin machine.Pin) *pwmBuzzer {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	return &pwmBuzzer{pin: pin, pwm: pwm, volume: 1}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (b *pwmBuzzer) SetVolume(percent uint8) {
	if percent > 50 {
		percent = 50
	}
	b.volume = percent
	b.hz = 0
}

func (b *pwmBuzzer) Tone(hz uint32) error {
	if hz == 0 {
		return b.Off()
	}
	if hz == b.hz {
		return nil
	}
	if err := b.pwm.Configure(machine.PWMConfig{Period: 1e9 / uint64(hz)}); err != nil {
		return err
	}
	ch, err := b.pwm.Channel(b.pin)
	if err != nil {
		return err
	}
	b.ch = ch
	b.pwm.Set(b.ch, b.pwm.Top()/100*uint32(b.volume))
	b.pwm.Enable(true)
	b.hz = hz
	return nil
}

func (b *pwmBuzzer) Off() error {
	b.pwm.Set(b.ch, 0)
	b.pwm.Enable(false)
	b.hz = 0
	return nil
}
