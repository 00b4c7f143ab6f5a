package app

import (
	"errors"
	"strings"
	"testing"

	"picotris/config"
	"picotris/hal"
	"picotris/kernel"
	"picotris/render"
	"picotris/tetris"
)

type testLogger struct{ lines []string }

func (l *testLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *testLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *testLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type testLED struct{ toggles int }

func (l *testLED) High() { l.toggles++ }
func (l *testLED) Low()  { l.toggles++ }

type testFB struct {
	buf      []byte
	presents int
}

func (f *testFB) Width() int                   { return hal.PanelWidth }
func (f *testFB) Height() int                  { return hal.PanelHeight }
func (f *testFB) Format() hal.PixelFormat      { return hal.PixelFormatMono1Page }
func (f *testFB) Buffer() []byte               { return f.buf }
func (f *testFB) Clear()                       { clear(f.buf) }
func (f *testFB) Present() error               { f.presents++; return nil }
func (f *testFB) Framebuffer() hal.Framebuffer { return f }

type testTime struct{ ch chan uint64 }

func (t *testTime) Ticks() <-chan uint64 { return t.ch }

type testEntropy struct {
	v   uint32
	err error
}

func (e testEntropy) Uint32() (uint32, error) { return e.v, e.err }

type testHAL struct {
	log     *testLogger
	led     *testLED
	fb      *testFB
	buttons *hal.VirtualButtons
	time    *testTime
	ent     testEntropy
}

func newTestHAL() *testHAL {
	return &testHAL{
		log:     &testLogger{},
		led:     &testLED{},
		fb:      &testFB{buf: make([]byte, render.BufferSize)},
		buttons: hal.NewVirtualButtons(),
		time:    &testTime{ch: make(chan uint64, 64)},
		ent:     testEntropy{v: 42},
	}
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) LED() hal.LED         { return h.led }
func (h *testHAL) Display() hal.Display { return h.fb }
func (h *testHAL) Buttons() hal.Buttons { return h.buttons }
func (h *testHAL) Time() hal.Time       { return h.time }
func (h *testHAL) Entropy() hal.Entropy { return h.ent }
func (h *testHAL) Buzzer() hal.Buzzer   { return nil }

func newTestSystem(t *testing.T, h *testHAL, cfg config.Config) *System {
	t.Helper()
	s, err := NewSystem(h, cfg)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return s
}

func runTo(t *testing.T, s *System, from, to uint64) {
	t.Helper()
	for now := from; now <= to; now++ {
		if err := s.AdvanceTo(now); err != nil {
			t.Fatalf("AdvanceTo(%d): %v", now, err)
		}
	}
}

func TestSystemBoots(t *testing.T) {
	h := newTestHAL()
	cfg := config.Default()
	cfg.Seed = 7
	s := newTestSystem(t, h, cfg)
	runTo(t, s, 0, 10)

	var snap tetris.Snapshot
	if s.Snapshot(&snap) == 0 {
		t.Fatal("expected a published snapshot")
	}
	if snap.State != tetris.StateFalling || !snap.HasPiece {
		t.Fatalf("expected a falling piece, got %s", snap.State)
	}
	if s.Seed() != 7 {
		t.Fatalf("expected seed 7, got %d", s.Seed())
	}
	// Boot screen plus the first game frame.
	if h.fb.presents < 2 || s.Presents() < 1 {
		t.Fatalf("expected boot and game frames, got %d presents", h.fb.presents)
	}
	if !h.log.contains("seed=") {
		t.Fatalf("expected boot log line, got %v", h.log.lines)
	}
}

func TestHardDropThroughButtons(t *testing.T) {
	h := newTestHAL()
	cfg := config.Default()
	cfg.Seed = 7
	s := newTestSystem(t, h, cfg)
	runTo(t, s, 0, 20)

	h.buttons.Set(hal.ButtonState(0).With(hal.ButtonHardDrop))
	runTo(t, s, 21, 60)
	h.buttons.Set(0)
	runTo(t, s, 61, 80)

	var snap tetris.Snapshot
	s.Snapshot(&snap)
	if snap.Board.Occupied() != 4 {
		t.Fatalf("expected one locked piece, got %d cells", snap.Board.Occupied())
	}
	if s.Commands() != 1 {
		t.Fatalf("expected one command, got %d", s.Commands())
	}
	if h.led.toggles != 1 {
		t.Fatalf("expected the LED to toggle once, got %d", h.led.toggles)
	}
}

func TestStepUsesNewestTick(t *testing.T) {
	h := newTestHAL()
	s := newTestSystem(t, h, config.Default())
	for i := uint64(1); i <= 50; i++ {
		h.time.ch <- i
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := s.Kernel().Now(); got != 50 {
		t.Fatalf("expected clock at 50, got %d", got)
	}
}

func TestSeedFromEntropy(t *testing.T) {
	tests := []struct {
		name string
		ent  testEntropy
		want uint32
	}{
		{"entropy", testEntropy{v: 1234}, 1234},
		{"error", testEntropy{v: 1234, err: errors.New("no rng")}, tetris.FallbackSeed},
		{"zero", testEntropy{}, tetris.FallbackSeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHAL()
			h.ent = tt.ent
			s := newTestSystem(t, h, config.Default())
			if s.Seed() != tt.want {
				t.Fatalf("expected seed %#x, got %#x", tt.want, s.Seed())
			}
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Display.FrameMS = 0
	if _, err := NewSystem(newTestHAL(), cfg); err == nil {
		t.Fatal("expected a validation error")
	}
	step := New(newTestHAL(), cfg)
	if err := step(); err == nil {
		t.Fatal("expected the step function to report the error")
	}
}

type panicTask struct{}

func (panicTask) Step(*kernel.Context) { panic("boom") }

func TestPanicScreen(t *testing.T) {
	h := newTestHAL()
	k := kernel.New()
	installPanicHandler(k, h)
	if _, err := k.AddTask(panicTask{}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	k.RunUntilIdle(0)

	if !k.Halted() {
		t.Fatal("expected the kernel to halt")
	}
	if !h.log.contains("panic: boom") {
		t.Fatalf("expected the panic in the log, got %v", h.log.lines)
	}
	if h.fb.presents != 1 {
		t.Fatalf("expected one panic frame, got %d", h.fb.presents)
	}
	lit := false
	for _, b := range h.fb.buf {
		if b != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatal("expected text on the panic screen")
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int
		head, tail string
	}{
		{"hello", 10, "hello", ""},
		{"hello world", 5, "hello", " world"},
		{"héllo", 2, "hé", "llo"},
		{"", 3, "", ""},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.in, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d): expected (%q, %q), got (%q, %q)", tt.in, tt.n, tt.head, tt.tail, head, tail)
		}
	}
}
