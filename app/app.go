package app

import (
	"errors"
	"fmt"

	"picotris/config"
	"picotris/hal"
	"picotris/internal/buildinfo"
	"picotris/kernel"
	"picotris/music"
	"picotris/tasks/buttons"
	"picotris/tasks/display"
	"picotris/tasks/game"
	"picotris/tasks/logger"
	musictask "picotris/tasks/music"
	"picotris/tetris"
)

// ErrHalted is returned by Step once a task has panicked.
var ErrHalted = errors.New("app: kernel halted")

// System is the wired game: one kernel, its endpoints and tasks.
type System struct {
	k      *kernel.Kernel
	h      hal.HAL
	ticks  <-chan uint64
	seed   uint32
	shared *kernel.Shared[tetris.Snapshot]

	game    *game.Task
	buttons *buttons.Task
	display *display.Task
	music   *musictask.Task
}

// NewSystem builds the kernel and its tasks from cfg.
func NewSystem(h hal.HAL, cfg config.Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k := kernel.New()
	s := &System{k: k, h: h, shared: &kernel.Shared[tetris.Snapshot]{}}
	installPanicHandler(k, h)

	ep := func(p kernel.Policy) (kernel.Capability, error) {
		return k.NewEndpoint(p, kernel.RightSend|kernel.RightRecv)
	}
	logEP, err := ep(kernel.EndpointQueue)
	if err != nil {
		return nil, err
	}
	// A newer command replaces one the game has not consumed yet.
	cmdEP, err := ep(kernel.EndpointLatest)
	if err != nil {
		return nil, err
	}
	frameEP, err := ep(kernel.EndpointLatest)
	if err != nil {
		return nil, err
	}
	musicEP, err := ep(kernel.EndpointQueue)
	if err != nil {
		return nil, err
	}
	logSend := logEP.Restrict(kernel.RightSend)

	s.seed = cfg.Seed
	if s.seed == 0 {
		s.seed = tetris.SeedFrom(h.Entropy())
	}
	eng := tetris.NewEngine(tetris.NewBag(s.seed), cfg.Rules())

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	s.display, err = display.New(fb, s.shared, frameEP.Restrict(kernel.RightRecv), logSend, display.Options{
		FrameMS: uint64(cfg.Display.FrameMS),
		BlinkMS: uint64(cfg.Display.FlashMS) / 3,
		Ghost:   cfg.Display.Ghost,
	})
	if err != nil {
		return nil, err
	}

	bz := h.Buzzer()
	if vc, ok := bz.(hal.VolumeControl); ok {
		vc.SetVolume(cfg.Music.Volume)
	}

	s.game = game.New(eng, s.shared, uint64(cfg.Display.FlashMS), game.Endpoints{
		Commands: cmdEP.Restrict(kernel.RightRecv),
		Frames:   frameEP.Restrict(kernel.RightSend),
		Music:    musicEP.Restrict(kernel.RightSend),
		Log:      logSend,
	})
	s.buttons = buttons.New(h.Buttons(), h.LED(), cfg.Sampler(), uint64(cfg.Input.SampleMS), cmdEP.Restrict(kernel.RightSend))
	s.music = musictask.New(bz, music.Tempo{BPM: cfg.Music.BPM}, cfg.Music.Enabled, musicEP.Restrict(kernel.RightRecv), logSend)

	for _, t := range []kernel.Task{
		logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)),
		s.game,
		s.buttons,
		s.music,
		s.display,
	} {
		if _, err := k.AddTask(t); err != nil {
			return nil, err
		}
	}

	if t := h.Time(); t != nil {
		s.ticks = t.Ticks()
	}

	bootScreen(fb)
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("picotris %s seed=%#08x", buildinfo.String(), s.seed))
	}
	return s, nil
}

// Kernel exposes the scheduler, mostly for tests and tools.
func (s *System) Kernel() *kernel.Kernel { return s.k }

// Seed returns the piece generator seed in use.
func (s *System) Seed() uint32 { return s.seed }

// Snapshot copies the latest published game state.
func (s *System) Snapshot(dst *tetris.Snapshot) uint32 { return s.shared.Load(dst) }

// Presents returns how many frames reached the panel.
func (s *System) Presents() uint64 { return s.display.Presents() }

// Commands returns how many button commands were sent to the game.
func (s *System) Commands() uint64 { return s.buttons.Sent() }

// Step feeds pending ticks to the kernel and runs tasks until idle.
func (s *System) Step() error {
	if s.k.Halted() {
		return ErrHalted
	}
	var now uint64
	var ok bool
	for drained := false; !drained; {
		select {
		case t := <-s.ticks:
			now, ok = t, true
		default:
			drained = true
		}
	}
	if ok {
		s.k.TickTo(now)
	}
	s.k.RunUntilIdle(0)
	if s.k.Halted() {
		return ErrHalted
	}
	return nil
}

// AdvanceTo moves the clock to now and runs tasks until idle, ignoring the
// HAL tick source. Simulations use it to run faster than real time.
func (s *System) AdvanceTo(now uint64) error {
	if s.k.Halted() {
		return ErrHalted
	}
	s.k.TickTo(now)
	s.k.RunUntilIdle(0)
	if s.k.Halted() {
		return ErrHalted
	}
	return nil
}

// New returns the per-frame step function used by the host runners.
func New(h hal.HAL, cfg config.Config) func() error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.Step
}

// Run starts the game and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg config.Config) {
	s, err := NewSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("app: " + err.Error())
		}
		select {}
	}
	for now := range s.ticks {
		s.k.TickTo(now)
		s.k.RunUntilIdle(0)
		if s.k.Halted() {
			select {}
		}
	}
	select {}
}
