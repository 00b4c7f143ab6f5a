package tetris

import "time"

// State is the engine's position in the game state machine.
type State uint8

const (
	StateSpawning State = iota
	StateFalling
	StateLocking
	StateLineClear
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateLocking:
		return "locking"
	case StateLineClear:
		return "line-clear"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Transient reports whether the state resolves on its own via Step.
func (s State) Transient() bool {
	return s == StateSpawning || s == StateLocking || s == StateLineClear
}

// Command is one debounced player action.
type Command uint8

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdRotateCW
	CmdRotateCCW
	CmdSoftDrop
	CmdHardDrop
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdMoveLeft:
		return "left"
	case CmdMoveRight:
		return "right"
	case CmdRotateCW:
		return "rotate-cw"
	case CmdRotateCCW:
		return "rotate-ccw"
	case CmdSoftDrop:
		return "soft-drop"
	case CmdHardDrop:
		return "hard-drop"
	default:
		return "unknown"
	}
}

// EventKind classifies engine events.
type EventKind uint8

const (
	EventSpawned EventKind = iota + 1
	EventLocked
	EventCleared
	EventLevelUp
	EventGameOver
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventCleared:
		return "cleared"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event records a notable transition. Rows is set for EventCleared.
type Event struct {
	Kind  EventKind
	Piece Kind
	Rows  int
	Score uint32
	Level uint32
}

const maxEvents = 16

// Engine owns the board, the active piece and the counters. Every method
// runs one complete transition; nothing is left half-applied between calls.
type Engine struct {
	src   PieceSource
	rules Rules

	board    Board
	piece    Piece
	hasPiece bool
	state    State

	score uint32
	lines uint32
	level uint32

	fullBuf  [Height]int
	clearing []int

	events  [maxEvents]Event
	nEvents int
	dropped int
}

// NewEngine returns an engine in StateSpawning with an empty board.
func NewEngine(src PieceSource, rules Rules) *Engine {
	if src == nil {
		src = NewBag(FallbackSeed)
	}
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	return &Engine{src: src, rules: rules, state: StateSpawning}
}

func (e *Engine) State() State       { return e.state }
func (e *Engine) Score() uint32      { return e.score }
func (e *Engine) Lines() uint32      { return e.lines }
func (e *Engine) Level() uint32      { return e.level }
func (e *Engine) Board() Board       { return e.board }
func (e *Engine) Rules() Rules       { return e.rules }
func (e *Engine) DroppedEvents() int { return e.dropped }

// Piece returns the active piece, if any.
func (e *Engine) Piece() (Piece, bool) { return e.piece, e.hasPiece }

// GravityInterval returns the fall interval for the current level.
func (e *Engine) GravityInterval() time.Duration {
	return e.rules.GravityInterval(e.level)
}

// ClearingRows returns the rows waiting to be removed in StateLineClear.
func (e *Engine) ClearingRows() []int {
	if e.state != StateLineClear {
		return nil
	}
	return e.clearing
}

func (e *Engine) emit(ev Event) {
	if e.nEvents == maxEvents {
		copy(e.events[:], e.events[1:])
		e.nEvents--
		e.dropped++
	}
	e.events[e.nEvents] = ev
	e.nEvents++
}

// DrainEvents appends pending events to dst and clears the queue.
func (e *Engine) DrainEvents(dst []Event) []Event {
	dst = append(dst, e.events[:e.nEvents]...)
	e.nEvents = 0
	return dst
}

// Step resolves one transient state. It returns false when the engine is
// in Falling or GameOver and there is nothing to do.
func (e *Engine) Step() bool {
	switch e.state {
	case StateSpawning:
		e.spawn()
	case StateLocking:
		e.lock()
	case StateLineClear:
		e.clear()
	default:
		return false
	}
	return true
}

// Settle runs Step until the engine reaches Falling or GameOver.
func (e *Engine) Settle() {
	for e.Step() {
	}
}

func (e *Engine) spawn() {
	p := NewPiece(e.src.Next())
	if !p.Fits(&e.board) {
		e.hasPiece = false
		e.state = StateGameOver
		e.emit(Event{Kind: EventGameOver, Piece: p.Kind, Score: e.score, Level: e.level})
		return
	}
	e.piece = p
	e.hasPiece = true
	e.state = StateFalling
	e.emit(Event{Kind: EventSpawned, Piece: p.Kind, Score: e.score, Level: e.level})
}

func (e *Engine) lock() {
	e.board.Place(e.piece)
	e.hasPiece = false
	e.emit(Event{Kind: EventLocked, Piece: e.piece.Kind, Score: e.score, Level: e.level})

	e.clearing = e.board.FindFullRows(e.fullBuf[:0])
	if len(e.clearing) > 0 {
		e.state = StateLineClear
		return
	}
	e.state = StateSpawning
}

func (e *Engine) clear() {
	n := len(e.clearing)
	e.board.ClearRows(e.clearing)
	e.clearing = nil

	e.score += LineScore(n, e.level)
	e.lines += uint32(n)
	e.emit(Event{Kind: EventCleared, Rows: n, Score: e.score, Level: e.level})

	if lvl := LevelFor(e.lines); lvl != e.level {
		e.level = lvl
		e.emit(Event{Kind: EventLevelUp, Score: e.score, Level: e.level})
	}
	e.state = StateSpawning
}

// Gravity applies one gravity tick. A piece that cannot fall moves the
// engine to Locking. It reports whether the piece moved.
func (e *Engine) Gravity() bool {
	if e.state != StateFalling {
		return false
	}
	if e.piece.TryMove(&e.board, 0, 1) {
		return true
	}
	e.state = StateLocking
	return false
}

// Apply handles a player command. Outside Falling commands are ignored,
// except HardDrop at GameOver which restarts the game. It reports whether
// anything changed.
func (e *Engine) Apply(cmd Command) bool {
	if e.state == StateGameOver {
		if cmd == CmdHardDrop {
			e.Reset()
			return true
		}
		return false
	}
	if e.state != StateFalling {
		return false
	}

	switch cmd {
	case CmdMoveLeft:
		return e.piece.TryMove(&e.board, -1, 0)
	case CmdMoveRight:
		return e.piece.TryMove(&e.board, 1, 0)
	case CmdRotateCW:
		return e.piece.TryRotate(&e.board, CW)
	case CmdRotateCCW:
		return e.piece.TryRotate(&e.board, CCW)
	case CmdSoftDrop:
		return e.piece.TryMove(&e.board, 0, 1)
	case CmdHardDrop:
		e.HardDrop()
		return true
	}
	return false
}

// HardDrop moves the piece down until it rests and forces Locking. It returns
// the number of rows dropped.
func (e *Engine) HardDrop() int {
	if e.state != StateFalling {
		return 0
	}
	n := 0
	for e.piece.TryMove(&e.board, 0, 1) {
		n++
	}
	e.state = StateLocking
	return n
}

// Reset empties the board, zeroes the counters and returns to Spawning.
// The piece source keeps its sequence.
func (e *Engine) Reset() {
	e.board.Reset()
	e.hasPiece = false
	e.clearing = nil
	e.score, e.lines, e.level = 0, 0, 0
	e.state = StateSpawning
	e.emit(Event{Kind: EventReset})
}

// Snapshot copies the state visible to a renderer into dst.
func (e *Engine) Snapshot(dst *Snapshot) {
	*dst = Snapshot{
		Board: e.board,
		State: e.state,
		Score: e.score,
		Lines: e.lines,
		Level: e.level,
		Next:  e.src.Peek(),
	}
	if e.hasPiece {
		dst.Piece = e.piece
		dst.HasPiece = true
		dst.GhostRow = e.piece.Row + e.piece.DropDistance(&e.board)
	}
	if e.state == StateLineClear {
		for _, y := range e.clearing {
			dst.Clearing[y] = true
		}
	}
}
