// Package input turns raw button levels into debounced game commands.
package input

import (
	"picotris/hal"
	"picotris/tetris"
)

// Priority lists the buttons from most to least important. When several
// buttons produce a command in the same sample, the first one wins and the
// others are dropped.
var Priority = [hal.ButtonCount]hal.Button{
	hal.ButtonRotateCW,
	hal.ButtonRotateCCW,
	hal.ButtonLeft,
	hal.ButtonRight,
	hal.ButtonSoftDrop,
	hal.ButtonHardDrop,
}

// CommandFor maps a button to the command it produces.
func CommandFor(b hal.Button) tetris.Command {
	switch b {
	case hal.ButtonLeft:
		return tetris.CmdMoveLeft
	case hal.ButtonRight:
		return tetris.CmdMoveRight
	case hal.ButtonRotateCW:
		return tetris.CmdRotateCW
	case hal.ButtonRotateCCW:
		return tetris.CmdRotateCCW
	case hal.ButtonSoftDrop:
		return tetris.CmdSoftDrop
	case hal.ButtonHardDrop:
		return tetris.CmdHardDrop
	default:
		return tetris.CmdNone
	}
}

func repeatable(b hal.Button) bool {
	return b == hal.ButtonLeft || b == hal.ButtonRight || b == hal.ButtonSoftDrop
}

// Config sets the sampler timing, counted in samples.
//
// RepeatDelay and RepeatRate of zero disable auto-repeat.
type Config struct {
	Debounce    int
	RepeatDelay int
	RepeatRate  int
}

type buttonState struct {
	count int
	fired bool
	held  int
}

// Sampler debounces button levels. A button fires once after Debounce
// consecutive pressed samples and must be released before it fires again,
// apart from the optional auto-repeat of lateral moves and soft drop.
type Sampler struct {
	cfg     Config
	buttons [hal.ButtonCount]buttonState
	dropped int
}

func NewSampler(cfg Config) *Sampler {
	if cfg.Debounce < 1 {
		cfg.Debounce = 1
	}
	if cfg.RepeatDelay < 0 || cfg.RepeatRate <= 0 {
		cfg.RepeatDelay, cfg.RepeatRate = 0, 0
	}
	return &Sampler{cfg: cfg}
}

// Sample consumes one reading and returns at most one command.
func (s *Sampler) Sample(state hal.ButtonState) tetris.Command {
	var fired [hal.ButtonCount]bool
	n := 0
	for i := range s.buttons {
		b := hal.Button(i)
		bs := &s.buttons[i]
		if !state.Pressed(b) {
			*bs = buttonState{}
			continue
		}
		if bs.count < s.cfg.Debounce {
			bs.count++
			if bs.count == s.cfg.Debounce {
				bs.fired = true
				fired[i] = true
				n++
			}
			continue
		}
		if !bs.fired || s.cfg.RepeatRate == 0 || !repeatable(b) {
			continue
		}
		bs.held++
		if bs.held >= s.cfg.RepeatDelay && (bs.held-s.cfg.RepeatDelay)%s.cfg.RepeatRate == 0 {
			fired[i] = true
			n++
		}
	}
	if n == 0 {
		return tetris.CmdNone
	}
	s.dropped += n - 1
	for _, b := range Priority {
		if fired[b] {
			return CommandFor(b)
		}
	}
	return tetris.CmdNone
}

// Dropped returns how many simultaneous commands lost to a higher priority.
func (s *Sampler) Dropped() int { return s.dropped }

// Reset forgets all button history.
func (s *Sampler) Reset() {
	s.buttons = [hal.ButtonCount]buttonState{}
}
