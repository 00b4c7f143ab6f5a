package hal

import "testing"

type fixedAnalog struct{ v uint16 }

func (a *fixedAnalog) Get() uint16 { return a.v }

func TestJoystickDirections(t *testing.T) {
	x := &fixedAnalog{v: 32768}
	y := &fixedAnalog{v: 32768}
	push := newVirtualPin("push", GPIOCapInput|GPIOCapOutput|GPIOCapPullUp)
	j, err := NewJoystick(x, y, push, 0)
	if err != nil {
		t.Fatalf("NewJoystick: %v", err)
	}

	tests := []struct {
		name string
		x, y uint16
		want ButtonState
	}{
		{"centre", 32768, 32768, 0},
		{"inside deadzone", 32768 + 10000, 32768 - 10000, 0},
		{"right", 65535, 40000, ButtonState(0).With(ButtonRight)},
		{"left", 0, 30000, ButtonState(0).With(ButtonLeft)},
		{"down", 30000, 0, ButtonState(0).With(ButtonSoftDrop)},
		{"up left", 20000, 65535, ButtonState(0).With(ButtonRotateCW)},
		{"up right", 45000, 65535, ButtonState(0).With(ButtonRotateCW)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x.v, y.v = tt.x, tt.y
			if got := j.Read(); got != tt.want {
				t.Fatalf("expected %08b, got %08b", tt.want, got)
			}
		})
	}
}

func TestJoystickPushIsActiveLow(t *testing.T) {
	x := &fixedAnalog{v: 100}
	y := &fixedAnalog{v: 100}
	push := newVirtualPin("push", GPIOCapInput|GPIOCapOutput|GPIOCapPullUp)
	j, err := NewJoystick(x, y, push, 0)
	if err != nil {
		t.Fatalf("NewJoystick: %v", err)
	}
	if j.Read().Pressed(ButtonHardDrop) {
		t.Fatal("expected released with the pull-up")
	}
	_ = push.Configure(GPIOModeOutput, GPIOPullNone)
	_ = push.Write(false)
	if !j.Read().Pressed(ButtonHardDrop) {
		t.Fatal("expected pressed when pulled low")
	}
}

func TestMergeButtons(t *testing.T) {
	a := NewVirtualButtons()
	b := NewVirtualButtons()
	a.Set(ButtonState(0).With(ButtonLeft))
	b.Set(ButtonState(0).With(ButtonHardDrop))
	got := MergeButtons(a, nil, b).Read()
	want := ButtonState(0).With(ButtonLeft).With(ButtonHardDrop)
	if got != want {
		t.Fatalf("expected %08b, got %08b", want, got)
	}
}
