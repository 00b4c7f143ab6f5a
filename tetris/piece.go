package tetris

// Spawn anchor for every new piece.
const (
	SpawnCol = 3
	SpawnRow = 0
)

// Rotation directions accepted by TryRotate.
const (
	CW  = 1
	CCW = -1
)

// kicks are the column nudges tried, in order, when a rotation collides.
var kicks = [...]int{0, -1, 1, -2, 2}

// Piece is the active tetromino: kind, rotation index and anchor.
type Piece struct {
	Kind Kind
	Rot  int
	Col  int
	Row  int
}

// NewPiece returns a piece of kind k at the spawn anchor in rotation 0.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, Col: SpawnCol, Row: SpawnRow}
}

// Blocks returns the relative offsets for the current rotation.
func (p Piece) Blocks() Blocks { return ShapeBlocks(p.Kind, p.Rot) }

// Cells returns the absolute board coordinates of the piece.
func (p Piece) Cells() [4][2]int {
	var out [4][2]int
	for i, o := range p.Blocks() {
		out[i] = [2]int{p.Col + int(o.X), p.Row + int(o.Y)}
	}
	return out
}

// Fits reports whether the piece lies entirely on free board cells.
func (p Piece) Fits(b *Board) bool {
	return b.Fits(p.Blocks(), p.Col, p.Row)
}

// TryMove translates the piece by (dx, dy) if every resulting cell is free.
// On failure the piece is left untouched.
func (p *Piece) TryMove(b *Board, dx, dy int) bool {
	if !b.Fits(p.Blocks(), p.Col+dx, p.Row+dy) {
		return false
	}
	p.Col += dx
	p.Row += dy
	return true
}

// TryRotate turns the piece a quarter in dir (CW or CCW), trying the kick
// offsets in fixed order. The first fitting candidate is committed.
func (p *Piece) TryRotate(b *Board, dir int) bool {
	if dir >= 0 {
		dir = CW
	} else {
		dir = CCW
	}
	rot := wrapRotation(p.Rot + dir)
	blocks := ShapeBlocks(p.Kind, rot)
	for _, dx := range kicks {
		if b.Fits(blocks, p.Col+dx, p.Row) {
			p.Rot = rot
			p.Col += dx
			return true
		}
	}
	return false
}

// DropDistance returns how many rows the piece can still fall.
func (p Piece) DropDistance(b *Board) int {
	n := 0
	for b.Fits(p.Blocks(), p.Col, p.Row+n+1) {
		n++
	}
	return n
}
