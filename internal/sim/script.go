package sim

import (
	"math/rand/v2"

	"picotris/hal"
)

// Script presses random buttons on a fixed rhythm: a press held for Hold ms,
// then a release for Gap ms. The same seed always produces the same presses.
type Script struct {
	rng  *rand.Rand
	hold uint64
	gap  uint64

	btn   *hal.VirtualButtons
	next  uint64
	down  bool
	press int
}

// weights favours movement over drops so games last a while.
var weights = [hal.ButtonCount]int{
	hal.ButtonLeft:      5,
	hal.ButtonRight:     5,
	hal.ButtonRotateCW:  3,
	hal.ButtonRotateCCW: 2,
	hal.ButtonSoftDrop:  3,
	hal.ButtonHardDrop:  1,
}

func NewScript(seed uint64, hold, gap uint64) *Script {
	if hold == 0 {
		hold = 30
	}
	if gap == 0 {
		gap = 20
	}
	return &Script{
		rng:  rand.New(rand.NewPCG(seed, seed^0x5eed)),
		hold: hold,
		gap:  gap,
		btn:  hal.NewVirtualButtons(),
	}
}

// Buttons is the source to hand to the HAL.
func (s *Script) Buttons() hal.Buttons { return s.btn }

// Presses returns how many presses have started.
func (s *Script) Presses() int { return s.press }

// Advance updates the pressed buttons for time now.
func (s *Script) Advance(now uint64) {
	if now < s.next {
		return
	}
	if s.down {
		s.btn.Set(0)
		s.down = false
		s.next = now + s.gap
		return
	}
	s.btn.Set(hal.ButtonState(0).With(s.pick()))
	s.down = true
	s.press++
	s.next = now + s.hold
}

func (s *Script) pick() hal.Button {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := s.rng.IntN(total)
	for b, w := range weights {
		if n < w {
			return hal.Button(b)
		}
		n -= w
	}
	return hal.ButtonHardDrop
}
