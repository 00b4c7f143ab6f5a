package tetris

import (
	"errors"
	"testing"
	"time"
)

type seqSource struct {
	kinds []Kind
	pos   int
}

func (s *seqSource) Next() Kind {
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}

func (s *seqSource) Peek() Kind { return s.kinds[s.pos%len(s.kinds)] }

func newSeqEngine(kinds ...Kind) *Engine {
	return NewEngine(&seqSource{kinds: kinds}, DefaultRules())
}

func TestEngineInitialState(t *testing.T) {
	e := newSeqEngine(KindT)
	if e.State() != StateSpawning {
		t.Fatalf("expected spawning, got %s", e.State())
	}
	if e.Score() != 0 || e.Level() != 0 || e.Lines() != 0 {
		t.Fatal("expected zeroed counters")
	}
	e.Settle()
	if e.State() != StateFalling {
		t.Fatalf("expected falling, got %s", e.State())
	}
	p, ok := e.Piece()
	if !ok || p != NewPiece(KindT) {
		t.Fatalf("expected T at spawn, got %+v ok=%v", p, ok)
	}
}

func TestEngineGravityDropsIToFloor(t *testing.T) {
	e := newSeqEngine(KindI)
	e.Settle()

	moves := 0
	for e.Gravity() {
		moves++
	}
	if moves != 19 {
		t.Fatalf("expected 19 gravity moves, got %d", moves)
	}
	if e.State() != StateLocking {
		t.Fatalf("expected locking, got %s", e.State())
	}
	p, _ := e.Piece()
	if p.Row != Height-1 {
		t.Fatalf("expected piece on row %d, got %d", Height-1, p.Row)
	}

	e.Step()
	if e.State() != StateSpawning {
		t.Fatalf("expected spawning after lock, got %s", e.State())
	}
	b := e.Board()
	for x := 0; x < Width; x++ {
		want := x >= SpawnCol && x < SpawnCol+4
		if got := !b.IsCellFree(x, Height-1); got != want {
			t.Fatalf("col %d: expected occupied=%v", x, want)
		}
	}
}

func TestEngineSingleLineClear(t *testing.T) {
	e := newSeqEngine(KindI, KindO)
	fillRow(&e.board, Height-1, 5)
	occ := e.board.Occupied()
	e.Settle()

	// Vertical I lands in column 5.
	if !e.Apply(CmdRotateCW) {
		t.Fatal("expected rotation")
	}
	e.HardDrop()
	e.Step() // lock

	if e.State() != StateLineClear {
		t.Fatalf("expected line clear, got %s", e.State())
	}
	b := e.Board()
	rows := b.FindFullRows(nil)
	if len(rows) != 1 || rows[0] != Height-1 {
		t.Fatalf("expected full row [%d], got %v", Height-1, rows)
	}
	if got := e.ClearingRows(); len(got) != 1 || got[0] != Height-1 {
		t.Fatalf("expected clearing rows [%d], got %v", Height-1, got)
	}

	e.Step() // clear
	if e.State() != StateSpawning {
		t.Fatalf("expected spawning, got %s", e.State())
	}
	if e.Score() != 100 {
		t.Fatalf("expected score 100, got %d", e.Score())
	}
	if e.Level() != 0 {
		t.Fatalf("expected level 0, got %d", e.Level())
	}
	if e.Lines() != 1 {
		t.Fatalf("expected 1 line, got %d", e.Lines())
	}
	b = e.Board()
	if got := b.Occupied(); got != occ+4-Width {
		t.Fatalf("expected %d occupied cells, got %d", occ+4-Width, got)
	}
	if len(b.FindFullRows(nil)) != 0 {
		t.Fatal("expected no full rows after clear")
	}
}

func TestEngineSpawnBlockedIsGameOver(t *testing.T) {
	e := newSeqEngine(KindT)
	e.board.set(SpawnCol+1, SpawnRow, KindZ.Cell())
	before := e.board

	e.Step()
	if e.State() != StateGameOver {
		t.Fatalf("expected game over, got %s", e.State())
	}
	if e.board != before {
		t.Fatal("expected board unmodified")
	}
	if _, ok := e.Piece(); ok {
		t.Fatal("expected no active piece")
	}
	if e.Step() {
		t.Fatal("expected game over to be terminal")
	}
}

func TestEngineGameOverIgnoresCommandsExceptReset(t *testing.T) {
	e := newSeqEngine(KindT)
	e.board.set(SpawnCol+1, SpawnRow, KindZ.Cell())
	e.Settle()
	before := e.board

	for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdRotateCW, CmdRotateCCW, CmdSoftDrop, CmdNone} {
		if e.Apply(cmd) {
			t.Fatalf("expected %s ignored at game over", cmd)
		}
	}
	if e.Gravity() {
		t.Fatal("expected gravity ignored at game over")
	}
	if e.board != before || e.State() != StateGameOver {
		t.Fatal("expected no mutation at game over")
	}

	if !e.Apply(CmdHardDrop) {
		t.Fatal("expected hard drop to reset")
	}
	if e.State() != StateSpawning {
		t.Fatalf("expected spawning after reset, got %s", e.State())
	}
	b := e.Board()
	if b.Occupied() != 0 || e.Score() != 0 {
		t.Fatal("expected clean game after reset")
	}
}

func TestEngineSoftDropFailureDoesNotLock(t *testing.T) {
	e := newSeqEngine(KindO)
	e.Settle()
	for e.Apply(CmdSoftDrop) {
	}
	if e.State() != StateFalling {
		t.Fatalf("expected falling after failed soft drop, got %s", e.State())
	}
	if e.Gravity() {
		t.Fatal("expected gravity to fail on resting piece")
	}
	if e.State() != StateLocking {
		t.Fatalf("expected locking, got %s", e.State())
	}
}

func TestEngineCommandsIgnoredOutsideFalling(t *testing.T) {
	e := newSeqEngine(KindO)
	if e.Apply(CmdMoveLeft) {
		t.Fatal("expected command ignored while spawning")
	}
	e.Settle()
	e.HardDrop()
	if e.Apply(CmdMoveLeft) || e.HardDrop() != 0 {
		t.Fatal("expected commands ignored while locking")
	}
}

func TestEngineLevelUpSpeedsGravity(t *testing.T) {
	e := newSeqEngine(KindI)
	e.lines = LinesPerLevel - 1
	fillRow(&e.board, Height-1, 5)
	e.Settle()
	slow := e.GravityInterval()

	e.Apply(CmdRotateCW)
	e.HardDrop()
	e.Settle()

	if e.Level() != 1 {
		t.Fatalf("expected level 1, got %d", e.Level())
	}
	if e.Score() != 100 {
		t.Fatalf("expected score at previous level multiplier 100, got %d", e.Score())
	}
	if fast := e.GravityInterval(); fast >= slow {
		t.Fatalf("expected faster gravity, got %s then %s", slow, fast)
	}

	var kinds []EventKind
	for _, ev := range e.DrainEvents(nil) {
		kinds = append(kinds, ev.Kind)
	}
	want := []EventKind{EventSpawned, EventLocked, EventCleared, EventLevelUp, EventSpawned}
	if len(kinds) != len(want) {
		t.Fatalf("expected events %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, kinds)
		}
	}
	if len(e.DrainEvents(nil)) != 0 {
		t.Fatal("expected drained queue")
	}
}

func TestEngineEventQueueDropsOldest(t *testing.T) {
	e := newSeqEngine(KindO)
	for i := 0; i < maxEvents+3; i++ {
		e.emit(Event{Kind: EventCleared, Rows: i})
	}
	evs := e.DrainEvents(nil)
	if len(evs) != maxEvents {
		t.Fatalf("expected %d events, got %d", maxEvents, len(evs))
	}
	if evs[0].Rows != 3 || e.DroppedEvents() != 3 {
		t.Fatalf("expected oldest 3 dropped, got first=%d dropped=%d", evs[0].Rows, e.DroppedEvents())
	}
}

func TestEngineSnapshot(t *testing.T) {
	e := newSeqEngine(KindI, KindS)
	e.Settle()

	var s Snapshot
	e.Snapshot(&s)
	if !s.HasPiece || s.Piece.Kind != KindI {
		t.Fatalf("expected active I, got %+v", s.Piece)
	}
	if s.Next != KindS {
		t.Fatalf("expected next S, got %s", s.Next)
	}
	if s.GhostRow != Height-1 {
		t.Fatalf("expected ghost on row %d, got %d", Height-1, s.GhostRow)
	}
	if !s.PieceAt(SpawnCol, 0) || s.PieceAt(0, 0) {
		t.Fatal("unexpected PieceAt result")
	}
	if !s.GhostAt(SpawnCol, Height-1) {
		t.Fatal("expected ghost at bottom")
	}

	var again Snapshot
	e.Snapshot(&again)
	if s != again {
		t.Fatal("expected identical snapshots without mutation")
	}
}

func TestGravityInterval(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		level uint32
		want  time.Duration
	}{
		{0, 800 * time.Millisecond},
		{1, 730 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{1000, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := r.GravityInterval(tt.level); got != tt.want {
			t.Fatalf("level %d: expected %s, got %s", tt.level, tt.want, got)
		}
	}
	prev := r.GravityInterval(0)
	for lvl := uint32(1); lvl < 20; lvl++ {
		cur := r.GravityInterval(lvl)
		if cur > prev {
			t.Fatalf("level %d: interval grew from %s to %s", lvl, prev, cur)
		}
		prev = cur
	}
}

func TestLineScoreMonotonic(t *testing.T) {
	for lvl := uint32(0); lvl < 5; lvl++ {
		prev := LineScore(0, lvl)
		for n := 1; n <= 4; n++ {
			cur := LineScore(n, lvl)
			if cur <= prev {
				t.Fatalf("level %d rows %d: expected > %d, got %d", lvl, n, prev, cur)
			}
			// Super-linear: more than n single clears.
			if n > 1 && cur <= uint32(n)*LineScore(1, lvl) {
				t.Fatalf("level %d rows %d: expected bonus over %d singles", lvl, n, n)
			}
			prev = cur
		}
	}
}

func TestBagIsPermutationPerSeven(t *testing.T) {
	b := NewBag(12345)
	for round := 0; round < 20; round++ {
		var seen [KindCount]bool
		for i := 0; i < KindCount; i++ {
			peek := b.Peek()
			k := b.Next()
			if k != peek {
				t.Fatalf("expected Next to match Peek %s, got %s", peek, k)
			}
			if !k.Valid() || seen[k] {
				t.Fatalf("round %d: repeated or invalid kind %s", round, k)
			}
			seen[k] = true
		}
	}
}

func TestBagDeterministic(t *testing.T) {
	a, b := NewBag(99), NewBag(99)
	for i := 0; i < 50; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d: expected equal kinds, got %s and %s", i, x, y)
		}
	}
	if NewBag(0).Seed() != FallbackSeed {
		t.Fatal("expected zero seed to select the fallback")
	}
}

func TestBagPeekLeavesGeneratorAlone(t *testing.T) {
	peeked, plain := NewBag(7), NewBag(7)
	for i := 0; i < 3*KindCount; i++ {
		before := *peeked
		for j := 0; j < 3; j++ {
			peeked.Peek()
		}
		if *peeked != before {
			t.Fatalf("draw %d: expected Peek to leave the bag unchanged", i)
		}
		if x, y := peeked.Next(), plain.Next(); x != y {
			t.Fatalf("draw %d: expected %s, got %s", i, y, x)
		}
	}
}

func TestSnapshotLeavesBagAlone(t *testing.T) {
	bag := NewBag(21)
	e := NewEngine(bag, DefaultRules())
	e.Step()
	before := *bag
	var s Snapshot
	for i := 0; i < 4; i++ {
		e.Snapshot(&s)
	}
	if *bag != before {
		t.Fatal("expected snapshots to leave the bag unchanged")
	}
	if s.Next != bag.Peek() {
		t.Fatalf("expected preview %s, got %s", bag.Peek(), s.Next)
	}
}

type entropyFunc func() (uint32, error)

func (f entropyFunc) Uint32() (uint32, error) { return f() }

func TestSeedFrom(t *testing.T) {
	tests := []struct {
		name string
		src  EntropySource
		want uint32
	}{
		{"nil", nil, FallbackSeed},
		{"error", entropyFunc(func() (uint32, error) { return 7, errors.New("rng busy") }), FallbackSeed},
		{"zero", entropyFunc(func() (uint32, error) { return 0, nil }), FallbackSeed},
		{"ok", entropyFunc(func() (uint32, error) { return 42, nil }), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeedFrom(tt.src); got != tt.want {
				t.Fatalf("expected %#x, got %#x", tt.want, got)
			}
		})
	}
}
