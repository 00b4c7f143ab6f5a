package main

import (
	"testing"

	"picotris/internal/sim"
)

func TestSummary(t *testing.T) {
	var s Summary
	if s.Mean() != 0 {
		t.Fatalf("expected 0 mean for no games, got %f", s.Mean())
	}
	s.Add(sim.Result{Score: 100, Lines: 1, GameOver: true})
	s.Add(sim.Result{Score: 400, Lines: 3})
	if s.Games != 2 || s.GameOvers != 1 || s.Best != 400 || s.Lines != 4 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Mean() != 250 {
		t.Fatalf("expected mean 250, got %f", s.Mean())
	}
	if got, want := s.String(), "games=2 over=1 best=400 mean=250.0 lines=4"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
