package tetris

import "time"

// lineScores is the base award per simultaneous clear, indexed by row count.
var lineScores = [5]uint32{0, 100, 300, 500, 800}

// LinesPerLevel is the number of cleared rows that raises the level by one.
const LinesPerLevel = 10

// Rules are the timing and scoring parameters of the engine.
type Rules struct {
	BaseGravity time.Duration
	GravityStep time.Duration
	MinGravity  time.Duration
}

// DefaultRules returns the stock gravity curve: 800ms minus 70ms per level,
// floored at 100ms.
func DefaultRules() Rules {
	return Rules{
		BaseGravity: 800 * time.Millisecond,
		GravityStep: 70 * time.Millisecond,
		MinGravity:  100 * time.Millisecond,
	}
}

// GravityInterval returns the time between gravity ticks at level.
func (r Rules) GravityInterval(level uint32) time.Duration {
	d := r.BaseGravity - time.Duration(level)*r.GravityStep
	if d < r.MinGravity || d > r.BaseGravity {
		return r.MinGravity
	}
	return d
}

// LineScore returns the points for clearing rows at once at level.
func LineScore(rows int, level uint32) uint32 {
	if rows <= 0 {
		return 0
	}
	if rows >= len(lineScores) {
		rows = len(lineScores) - 1
	}
	return lineScores[rows] * (level + 1)
}

// LevelFor returns the level reached after lines cleared rows in total.
func LevelFor(lines uint32) uint32 { return lines / LinesPerLevel }
