// Package game runs the engine: gravity ticks, player commands and the
// line-clear hold.
package game

import (
	"fmt"

	"picotris/kernel"
	"picotris/proto"
	"picotris/tasks/logger"
	"picotris/tetris"
)

// Endpoints used by the game task. Frames and Music may be left invalid.
type Endpoints struct {
	Commands kernel.Capability // recv
	Frames   kernel.Capability // send, display notify
	Music    kernel.Capability // send
	Log      kernel.Capability // send
}

// Task owns the engine. Nothing else mutates it; other tasks see the game
// only through the published snapshots.
type Task struct {
	eng    *tetris.Engine
	ep     Endpoints
	shared *kernel.Shared[tetris.Snapshot]

	flash uint64

	started    bool
	nextFall   uint64
	clearUntil uint64
	holding    bool

	snap   tetris.Snapshot
	events []tetris.Event
}

// New returns the game task. flashMS is how long cleared rows stay on screen
// before they are removed; 0 removes them at once.
func New(eng *tetris.Engine, shared *kernel.Shared[tetris.Snapshot], flashMS uint64, ep Endpoints) *Task {
	return &Task{
		eng:    eng,
		ep:     ep,
		shared: shared,
		flash:  flashMS,
		events: make([]tetris.Event, 0, 16),
	}
}

func (t *Task) Step(ctx *kernel.Context) {
	now := ctx.Now()
	changed := false

	if !t.started {
		t.started = true
		t.advance(now)
		changed = true
	}

	for {
		msg, ok := ctx.TryRecv(t.ep.Commands)
		if !ok {
			break
		}
		if msg.Kind != uint16(proto.MsgCommand) {
			continue
		}
		cmd, ok := proto.DecodeCommandPayload(msg.Payload())
		if !ok {
			continue
		}
		if t.eng.Apply(cmd) {
			changed = true
		}
		t.advance(now)
	}

	for t.eng.State() == tetris.StateFalling && now >= t.nextFall {
		t.eng.Gravity()
		t.nextFall += t.interval()
		changed = true
		t.advance(now)
	}

	if t.holding && now >= t.clearUntil {
		t.advance(now)
		changed = true
	}

	t.report(ctx)
	if changed {
		t.publish(ctx)
	}

	switch {
	case t.holding:
		ctx.BlockOn(t.ep.Commands, t.clearUntil)
	case t.eng.State() == tetris.StateFalling:
		ctx.BlockOn(t.ep.Commands, t.nextFall)
	default:
		ctx.BlockOn(t.ep.Commands, 0)
	}
}

// advance resolves transient states until the engine is falling, over, or
// holding a line clear for the flash.
func (t *Task) advance(now uint64) {
	for {
		switch t.eng.State() {
		case tetris.StateLineClear:
			if t.flash > 0 {
				if !t.holding {
					t.holding = true
					t.clearUntil = now + t.flash
					return
				}
				if now < t.clearUntil {
					return
				}
				t.holding = false
			}
			t.eng.Step()
		case tetris.StateSpawning:
			t.eng.Step()
			if t.eng.State() == tetris.StateFalling {
				t.nextFall = now + t.interval()
			}
		case tetris.StateLocking:
			t.eng.Step()
		default:
			return
		}
	}
}

func (t *Task) interval() uint64 {
	ms := t.eng.GravityInterval().Milliseconds()
	if ms < 1 {
		return 1
	}
	return uint64(ms)
}

func (t *Task) publish(ctx *kernel.Context) {
	if t.shared == nil {
		return
	}
	t.eng.Snapshot(&t.snap)
	seq := t.shared.Publish(&t.snap)
	if t.ep.Frames.Valid() {
		_ = ctx.Send(t.ep.Frames, uint16(proto.MsgFrame), proto.FramePayload(seq))
	}
}

func (t *Task) report(ctx *kernel.Context) {
	t.events = t.eng.DrainEvents(t.events[:0])
	for _, ev := range t.events {
		switch ev.Kind {
		case tetris.EventCleared:
			logger.Log(ctx, t.ep.Log, fmt.Sprintf("game: cleared %d score=%d", ev.Rows, ev.Score))
		case tetris.EventLevelUp:
			logger.Log(ctx, t.ep.Log, fmt.Sprintf("game: level %d", ev.Level))
		case tetris.EventGameOver:
			logger.Log(ctx, t.ep.Log, fmt.Sprintf("game: over score=%d", ev.Score))
			t.music(ctx, false)
		case tetris.EventReset:
			logger.Log(ctx, t.ep.Log, "game: reset")
			t.music(ctx, true)
		}
	}
}

func (t *Task) music(ctx *kernel.Context, play bool) {
	if !t.ep.Music.Valid() {
		return
	}
	_ = ctx.Send(t.ep.Music, uint16(proto.MsgMusic), proto.MusicPayload(play))
}
