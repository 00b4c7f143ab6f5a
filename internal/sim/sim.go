//go:build !tinygo

// Package sim runs the full game on the host HAL with a manual clock and
// scripted buttons, far faster than real time.
package sim

import (
	"io"

	"picotris/app"
	"picotris/config"
	"picotris/hal"
	"picotris/render"
	"picotris/tetris"
)

type Options struct {
	Config config.Config
	// Seed of the piece generator. Zero picks one from the host RNG.
	Seed uint32
	// ScriptSeed drives the random button presses.
	ScriptSeed uint64
	// MaxTicks bounds the run in milliseconds of game time.
	MaxTicks uint64
	// UntilGameOver stops at the first game over.
	UntilGameOver bool
	// Idle leaves the buttons alone; gravity alone plays.
	Idle bool
	Log  io.Writer
}

type Result struct {
	Seed     uint32
	Ticks    uint64
	Score    uint32
	Lines    uint32
	Level    uint32
	GameOver bool
	Commands uint64
	Presents uint64
	Presses  int
}

// Run plays one game and returns its outcome and the last presented panel
// frame.
func Run(opt Options) (Result, []byte, error) {
	cfg := opt.Config
	if opt.Seed != 0 {
		cfg.Seed = opt.Seed
	}
	cfg.Music.Enabled = false

	var script *Script
	var gate *overGate
	hopt := hal.HostOptions{ManualTime: true, LogOutput: opt.Log, Quiet: opt.Log == nil}
	if hopt.LogOutput == nil {
		hopt.LogOutput = io.Discard
	}
	if opt.Idle {
		hopt.Buttons = hal.NewVirtualButtons()
	} else {
		script = NewScript(opt.ScriptSeed, 0, 0)
		hopt.Buttons = script.Buttons()
		if opt.UntilGameOver {
			gate = &overGate{src: script.Buttons()}
			hopt.Buttons = gate
		}
	}
	h := hal.NewHost(hopt)

	s, err := app.NewSystem(h, cfg)
	if err != nil {
		return Result{}, nil, err
	}
	if gate != nil {
		gate.sys = s
	}

	res := Result{Seed: s.Seed()}
	var snap tetris.Snapshot
	for now := uint64(0); now <= opt.MaxTicks; now++ {
		if script != nil {
			script.Advance(now)
		}
		if err := s.AdvanceTo(now); err != nil {
			return res, nil, err
		}
		res.Ticks = now
		if opt.UntilGameOver {
			s.Snapshot(&snap)
			if snap.State == tetris.StateGameOver {
				break
			}
		}
	}

	s.Snapshot(&snap)
	res.Score = snap.Score
	res.Lines = snap.Lines
	res.Level = snap.Level
	res.GameOver = snap.State == tetris.StateGameOver
	res.Commands = s.Commands()
	res.Presents = h.Presents()
	if script != nil {
		res.Presses = script.Presses()
	}

	frame := make([]byte, render.BufferSize)
	h.Frame(frame)
	return res, frame, nil
}

// overGate releases every button once the published game is over. A
// HardDrop at game over starts the next game, which would otherwise be
// reported in place of the finished one.
type overGate struct {
	src  hal.Buttons
	sys  *app.System
	snap tetris.Snapshot
}

func (g *overGate) Read() hal.ButtonState {
	if g.sys != nil {
		g.sys.Snapshot(&g.snap)
		if g.snap.State == tetris.StateGameOver {
			return 0
		}
	}
	return g.src.Read()
}
