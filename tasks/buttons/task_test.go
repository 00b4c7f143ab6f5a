package buttons

import (
	"testing"

	"picotris/hal"
	"picotris/input"
	"picotris/kernel"
	"picotris/proto"
	"picotris/tetris"
)

type countLED struct{ high, low int }

func (l *countLED) High() { l.high++ }
func (l *countLED) Low()  { l.low++ }

type sink struct {
	ep   kernel.Capability
	cmds []tetris.Command
	at   []uint64
}

func (s *sink) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		if cmd, ok := proto.DecodeCommandPayload(msg.Payload()); ok {
			s.cmds = append(s.cmds, cmd)
			s.at = append(s.at, ctx.Now())
		}
	}
	ctx.BlockOn(s.ep, 0)
}

func setup(t *testing.T, btn hal.Buttons, led hal.LED) (*kernel.Kernel, *Task, *sink) {
	t.Helper()
	k := kernel.New()
	ep, err := k.NewEndpoint(kernel.EndpointLatest, kernel.RightSend|kernel.RightRecv)
	if err != nil {
		t.Fatalf("NewEndpoint: %v", err)
	}
	task := New(btn, led, input.Config{Debounce: 3}, 5, ep.Restrict(kernel.RightSend))
	s := &sink{ep: ep.Restrict(kernel.RightRecv)}
	for _, tk := range []kernel.Task{task, s} {
		if _, err := k.AddTask(tk); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}
	return k, task, s
}

func TestDebouncedPressReachesGame(t *testing.T) {
	btn := hal.NewVirtualButtons()
	led := &countLED{}
	k, task, s := setup(t, btn, led)

	btn.Set(hal.ButtonState(0).With(hal.ButtonRotateCCW))
	for now := uint64(0); now <= 100; now++ {
		k.TickTo(now)
		k.RunUntilIdle(0)
	}

	// Samples at 0, 5, 10: the third one fires.
	if len(s.cmds) != 1 || s.cmds[0] != tetris.CmdRotateCCW || s.at[0] != 10 {
		t.Fatalf("expected one rotate-ccw at 10ms, got %v at %v", s.cmds, s.at)
	}
	if task.Sent() != 1 || led.high != 1 {
		t.Fatalf("expected LED toggled once, got sent=%d high=%d", task.Sent(), led.high)
	}

	btn.Set(0)
	k.TickTo(105)
	k.RunUntilIdle(0)
	btn.Set(hal.ButtonState(0).With(hal.ButtonLeft))
	for now := uint64(106); now <= 130; now++ {
		k.TickTo(now)
		k.RunUntilIdle(0)
	}
	if len(s.cmds) != 2 || s.cmds[1] != tetris.CmdMoveLeft {
		t.Fatalf("expected a second command after release, got %v", s.cmds)
	}
	if led.low != 1 {
		t.Fatalf("expected LED toggled back, got low=%d", led.low)
	}
}

func TestSamplingCadence(t *testing.T) {
	k, task, _ := setup(t, nil, nil)
	for now := uint64(0); now < 50; now++ {
		k.TickTo(now)
		k.RunUntilIdle(0)
	}
	if got := k.Steps(0); got != 10 {
		t.Fatalf("expected 10 samples in 50ms, got %d", got)
	}
	if task.Sent() != 0 {
		t.Fatal("expected no commands without buttons")
	}
}
