// Package display renders published game snapshots to the panel.
package display

import (
	"errors"
	"fmt"

	"picotris/hal"
	"picotris/kernel"
	"picotris/render"
	"picotris/tasks/logger"
	"picotris/tetris"
)

var ErrUnsupportedFramebuffer = errors.New("display: unsupported framebuffer")

// Options tune the refresh.
type Options struct {
	// FrameMS is the minimum time between two presents.
	FrameMS uint64
	// BlinkMS is the half-period of the line-clear flash.
	BlinkMS uint64
	Ghost   bool
}

// Task redraws when the game publishes a new snapshot or the line-clear
// flash changes phase, at most once per frame interval.
//
// Present failures leave the previous picture on the panel; the frame is
// retried on the next interval.
type Task struct {
	fb     hal.Framebuffer
	r      *render.Renderer
	shared *kernel.Shared[tetris.Snapshot]
	notify kernel.Capability
	log    kernel.Capability
	opt    Options

	frame   render.Frame
	last    render.Frame
	drawn   bool
	lastAt  uint64
	started bool

	presents uint64
	failures uint64
}

func New(fb hal.Framebuffer, shared *kernel.Shared[tetris.Snapshot], notify, log kernel.Capability, opt Options) (*Task, error) {
	if fb == nil || fb.Format() != hal.PixelFormatMono1Page || len(fb.Buffer()) < render.BufferSize {
		return nil, ErrUnsupportedFramebuffer
	}
	if opt.FrameMS == 0 {
		opt.FrameMS = 1
	}
	return &Task{
		fb:     fb,
		r:      render.New(),
		shared: shared,
		notify: notify,
		log:    log,
		opt:    opt,
	}, nil
}

// Presents returns how many frames reached the panel.
func (t *Task) Presents() uint64 { return t.presents }

// Failures returns how many presents failed.
func (t *Task) Failures() uint64 { return t.failures }

func (t *Task) Step(ctx *kernel.Context) {
	// Notifications only wake the task; the snapshot slot has the data.
	for {
		if _, ok := ctx.TryRecv(t.notify); !ok {
			break
		}
	}

	now := ctx.Now()
	if t.started && now < t.lastAt+t.opt.FrameMS {
		ctx.SleepUntil(t.lastAt + t.opt.FrameMS)
		return
	}

	if t.shared.Load(&t.frame.Snapshot) == 0 {
		ctx.BlockOn(t.notify, 0)
		return
	}
	t.frame.Ghost = t.opt.Ghost
	t.frame.FlashOn = t.flashPhase(now)

	if !t.drawn || t.frame != t.last {
		t.present(ctx, now)
	}

	if t.frame.Snapshot.State == tetris.StateLineClear || !t.drawn {
		due := t.lastAt + t.opt.FrameMS
		if due <= now {
			due = now + t.opt.FrameMS
		}
		ctx.BlockOn(t.notify, due)
		return
	}
	ctx.BlockOn(t.notify, 0)
}

func (t *Task) flashPhase(now uint64) bool {
	if t.frame.Snapshot.State != tetris.StateLineClear {
		return false
	}
	if t.opt.BlinkMS == 0 {
		return true
	}
	return (now/t.opt.BlinkMS)%2 == 0
}

func (t *Task) present(ctx *kernel.Context, now uint64) {
	t.started = true
	t.lastAt = now
	t.r.Draw(t.fb.Buffer(), &t.frame)
	if err := t.fb.Present(); err != nil {
		t.failures++
		t.drawn = false
		if t.failures == 1 || t.failures%100 == 0 {
			logger.Log(ctx, t.log, fmt.Sprintf("display: present failed (%d): %v", t.failures, err))
		}
		return
	}
	t.presents++
	t.last = t.frame
	t.drawn = true
}
