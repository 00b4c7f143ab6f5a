package tetris

// Board dimensions of the playfield.
const (
	Width  = 10
	Height = 20
)

// Cell is one playfield square: 0 is empty, 1..7 is the Kind.Cell of the
// piece that was locked there.
type Cell uint8

const CellEmpty Cell = 0

func (c Cell) Empty() bool { return c == CellEmpty }

// Kind returns the piece kind stored in an occupied cell.
func (c Cell) Kind() (Kind, bool) {
	if c == CellEmpty || c > KindCount {
		return 0, false
	}
	return Kind(c - 1), true
}

// Board is the row-major playfield, row 0 at the top.
//
// The zero value is an empty board. Board is a plain value: copying it takes
// a snapshot.
type Board struct {
	cells [Width * Height]Cell
}

func inBounds(col, row int) bool {
	return col >= 0 && col < Width && row >= 0 && row < Height
}

// Cell returns the content at (col, row). Out-of-bounds reads report empty.
func (b *Board) Cell(col, row int) Cell {
	if !inBounds(col, row) {
		return CellEmpty
	}
	return b.cells[row*Width+col]
}

// IsCellFree reports whether (col, row) is inside the playfield and empty.
// Everything outside acts as wall or floor.
func (b *Board) IsCellFree(col, row int) bool {
	if !inBounds(col, row) {
		return false
	}
	return b.cells[row*Width+col] == CellEmpty
}

func (b *Board) set(col, row int, c Cell) {
	if !inBounds(col, row) {
		return
	}
	b.cells[row*Width+col] = c
}

// Fits reports whether blocks translated to (col, row) land on free cells only.
func (b *Board) Fits(blocks Blocks, col, row int) bool {
	for _, o := range blocks {
		if !b.IsCellFree(col+int(o.X), row+int(o.Y)) {
			return false
		}
	}
	return true
}

// Place writes the piece cells into the grid. The caller must have checked
// Fits first; Place does not validate again.
func (b *Board) Place(p Piece) {
	c := p.Kind.Cell()
	for _, o := range p.Blocks() {
		b.set(p.Col+int(o.X), p.Row+int(o.Y), c)
	}
}

// IsRowFull reports whether every column of row is occupied.
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	off := row * Width
	for x := 0; x < Width; x++ {
		if b.cells[off+x] == CellEmpty {
			return false
		}
	}
	return true
}

// IsTopRowBlocked reports whether any cell of row 0 is occupied.
func (b *Board) IsTopRowBlocked() bool {
	for x := 0; x < Width; x++ {
		if b.cells[x] != CellEmpty {
			return true
		}
	}
	return false
}

// FindFullRows appends the indices of all full rows to dst[:0] in ascending
// order and returns the result.
func (b *Board) FindFullRows(dst []int) []int {
	dst = dst[:0]
	for y := 0; y < Height; y++ {
		if b.IsRowFull(y) {
			dst = append(dst, y)
		}
	}
	return dst
}

// ClearRows removes the given rows and shifts everything above them down,
// inserting empty rows at the top. Duplicates and out-of-range indices are
// ignored.
func (b *Board) ClearRows(rows []int) {
	var skip [Height]bool
	n := 0
	for _, y := range rows {
		if y < 0 || y >= Height || skip[y] {
			continue
		}
		skip[y] = true
		n++
	}
	if n == 0 {
		return
	}

	writeY := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if skip[y] {
			continue
		}
		if writeY != y {
			copy(b.cells[writeY*Width:(writeY+1)*Width], b.cells[y*Width:(y+1)*Width])
		}
		writeY--
	}
	for y := writeY; y >= 0; y-- {
		row := b.cells[y*Width : (y+1)*Width]
		for x := range row {
			row[x] = CellEmpty
		}
	}
}

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c != CellEmpty {
			n++
		}
	}
	return n
}

// Reset empties the board.
func (b *Board) Reset() {
	b.cells = [Width * Height]Cell{}
}
