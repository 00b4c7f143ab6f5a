package tetris

// Snapshot is a consistent copy of everything a renderer may show. It is a
// comparable value: equal snapshots describe identical screens.
type Snapshot struct {
	Board    Board
	Piece    Piece
	HasPiece bool
	GhostRow int
	Next     Kind
	State    State
	Score    uint32
	Lines    uint32
	Level    uint32
	Clearing [Height]bool
}

// PieceAt reports whether the active piece covers (col, row).
func (s *Snapshot) PieceAt(col, row int) bool {
	if !s.HasPiece {
		return false
	}
	for _, c := range s.Piece.Cells() {
		if c[0] == col && c[1] == row {
			return true
		}
	}
	return false
}

// GhostAt reports whether the landing preview of the active piece covers
// (col, row).
func (s *Snapshot) GhostAt(col, row int) bool {
	if !s.HasPiece || s.GhostRow == s.Piece.Row {
		return false
	}
	g := s.Piece
	g.Row = s.GhostRow
	for _, c := range g.Cells() {
		if c[0] == col && c[1] == row {
			return true
		}
	}
	return false
}
