// Package music holds the background theme and its timing.
package music

// Note is a pitch in the theme.
type Note uint8

const (
	Rest Note = iota
	A4
	Gs4
	B4
	C5
	D5
	E5
	F5
	G5
	Gs5
	A5
)

// Hz returns the note frequency; Rest is 0.
func (n Note) Hz() uint32 {
	switch n {
	case A4:
		return 440
	case Gs4:
		return 415
	case B4:
		return 494
	case C5:
		return 523
	case D5:
		return 587
	case E5:
		return 659
	case F5:
		return 698
	case G5:
		return 784
	case Gs5:
		return 831
	case A5:
		return 880
	default:
		return 0
	}
}

// Step is one entry of a melody: a note held for Whole/Divider, or 1.5x that
// when Dotted.
type Step struct {
	Note    Note
	Divider uint8
	Dotted  bool
}

// DefaultBPM is the tempo of Theme.
const DefaultBPM = 144

// Theme is Korobeiniki as arranged for a single voice.
var Theme = []Step{
	{E5, 4, false}, {B4, 8, false}, {C5, 8, false}, {D5, 4, false},
	{C5, 8, false}, {B4, 8, false}, {A4, 4, false}, {A4, 8, false},
	{C5, 8, false}, {E5, 4, false}, {D5, 8, false}, {C5, 8, false},
	{B4, 4, true}, {C5, 8, false}, {D5, 4, false}, {E5, 4, false},
	{C5, 4, false}, {A4, 4, false}, {A4, 8, false}, {A4, 4, false},
	{B4, 8, false}, {C5, 8, false}, {D5, 4, true}, {F5, 8, false},
	{A5, 4, false}, {G5, 8, false}, {F5, 8, false}, {E5, 4, true},
	{C5, 8, false}, {E5, 4, false}, {D5, 8, false}, {C5, 8, false},
	{B4, 4, false}, {B4, 8, false}, {C5, 8, false}, {D5, 4, false},
	{E5, 4, false}, {C5, 4, false}, {A4, 4, false}, {A4, 4, false},
	{Rest, 4, false},

	{E5, 4, false}, {B4, 8, false}, {C5, 8, false}, {D5, 4, false},
	{C5, 8, false}, {B4, 8, false}, {A4, 4, false}, {A4, 8, false},
	{C5, 8, false}, {E5, 4, false}, {D5, 8, false}, {C5, 8, false},
	{B4, 4, true}, {C5, 8, false}, {D5, 4, false}, {E5, 4, false},
	{C5, 4, false}, {A4, 4, false}, {A4, 8, false}, {A4, 4, false},
	{B4, 8, false}, {C5, 8, false}, {D5, 4, true}, {F5, 8, false},
	{A5, 4, false}, {G5, 8, false}, {F5, 8, false}, {E5, 4, true},
	{C5, 8, false}, {E5, 4, false}, {D5, 8, false}, {C5, 8, false},
	{B4, 4, false}, {B4, 8, false}, {C5, 8, false}, {D5, 4, false},
	{E5, 4, false}, {C5, 4, false}, {A4, 4, false}, {A4, 4, false},
	{Rest, 4, false},

	{E5, 2, false}, {C5, 2, false}, {D5, 2, false}, {B4, 2, false},
	{C5, 2, false}, {A4, 2, false}, {Gs4, 2, false}, {B4, 4, false},
	{Rest, 8, false},
	{E5, 2, false}, {C5, 2, false}, {D5, 2, false}, {B4, 2, false},
	{C5, 4, false}, {E5, 4, false}, {A5, 2, false}, {Gs5, 2, false},
}

// Tempo converts melody steps to millisecond durations.
type Tempo struct {
	BPM uint32
}

// Whole returns the length of a whole note in ms.
func (t Tempo) Whole() uint32 {
	bpm := t.BPM
	if bpm == 0 {
		bpm = DefaultBPM
	}
	return 60000 * 4 / bpm
}

// Gap returns the silence inserted at the end of every note so repeated
// pitches stay distinct.
func (t Tempo) Gap() uint32 { return t.Whole() / 64 }

// Duration returns the full length of s in ms, gap included.
func (t Tempo) Duration(s Step) uint32 {
	div := uint32(s.Divider)
	if div == 0 {
		div = 1
	}
	d := t.Whole() / div
	if s.Dotted {
		d = d * 3 / 2
	}
	return d
}

// Player walks a melody in a loop.
type Player struct {
	steps []Step
	tempo Tempo
	pos   int
}

func NewPlayer(steps []Step, tempo Tempo) *Player {
	return &Player{steps: steps, tempo: tempo}
}

// Next returns the next note, how long to sound it and how long to stay
// silent after it. It wraps at the end of the melody.
func (p *Player) Next() (n Note, sound, gap uint32) {
	if len(p.steps) == 0 {
		return Rest, p.tempo.Whole(), 0
	}
	s := p.steps[p.pos]
	p.pos = (p.pos + 1) % len(p.steps)
	d := p.tempo.Duration(s)
	gap = p.tempo.Gap()
	if gap >= d {
		gap = 0
	}
	return s.Note, d - gap, gap
}

// Rewind restarts from the first step.
func (p *Player) Rewind() { p.pos = 0 }
