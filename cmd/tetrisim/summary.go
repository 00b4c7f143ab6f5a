package main

import (
	"fmt"

	"picotris/internal/sim"
)

// Summary aggregates a batch of simulated games.
type Summary struct {
	Games     int
	GameOvers int
	Best      uint32
	Total     uint64
	Lines     uint64
}

func (s *Summary) Add(r sim.Result) {
	s.Games++
	if r.GameOver {
		s.GameOvers++
	}
	if r.Score > s.Best {
		s.Best = r.Score
	}
	s.Total += uint64(r.Score)
	s.Lines += uint64(r.Lines)
}

// Mean returns the average score.
func (s Summary) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Games)
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d over=%d best=%d mean=%.1f lines=%d",
		s.Games, s.GameOvers, s.Best, s.Mean(), s.Lines)
}
