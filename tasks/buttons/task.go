// Package buttons polls the button source at a fixed cadence and forwards
// debounced commands to the game.
package buttons

import (
	"picotris/hal"
	"picotris/input"
	"picotris/kernel"
	"picotris/proto"
	"picotris/tetris"
)

type Task struct {
	src     hal.Buttons
	led     hal.LED
	sampler *input.Sampler
	out     kernel.Capability

	period uint64
	next   uint64
	ledOn  bool

	sent uint64
}

// New returns the sampling task. periodMS is the time between samples.
// led may be nil.
func New(src hal.Buttons, led hal.LED, cfg input.Config, periodMS uint64, out kernel.Capability) *Task {
	if periodMS == 0 {
		periodMS = 1
	}
	return &Task{
		src:     src,
		led:     led,
		sampler: input.NewSampler(cfg),
		out:     out,
		period:  periodMS,
	}
}

// Sent returns how many commands were forwarded.
func (t *Task) Sent() uint64 { return t.sent }

func (t *Task) Step(ctx *kernel.Context) {
	now := ctx.Now()

	var state hal.ButtonState
	if t.src != nil {
		state = t.src.Read()
	}
	if cmd := t.sampler.Sample(state); cmd != tetris.CmdNone {
		if ctx.Send(t.out, uint16(proto.MsgCommand), proto.CommandPayload(cmd)) {
			t.sent++
			t.blink()
		}
	}

	t.next += t.period
	if t.next <= now {
		t.next = now + t.period
	}
	ctx.SleepUntil(t.next)
}

func (t *Task) blink() {
	if t.led == nil {
		return
	}
	t.ledOn = !t.ledOn
	if t.ledOn {
		t.led.High()
	} else {
		t.led.Low()
	}
}
