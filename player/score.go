package player

import "math"

// Score tracks the run's max height and coins
// Height score only grows when the previous max is passed, so it pauses during a fall
// Best height survives run resets but is not persisted
type Score struct {
	start   float64
	runMax  float64
	best    float64
	coins   int
	hasBest bool
}

// NewScore creates a tracker measuring height from start
func NewScore(start float64) *Score {
	return &Score{start: start, runMax: start}
}

// Update records height h; returns true when h set a new all-time best
func (s *Score) Update(h float64) bool {
	if h <= s.runMax {
		return false
	}
	s.runMax = h
	if !s.hasBest || s.Height() > s.best {
		s.best = s.Height()
		s.hasBest = true
		return true
	}
	return false
}

// AddCoins adds n coins, ignoring negative amounts
func (s *Score) AddCoins(n int) {
	if n > 0 {
		s.coins += n
	}
}

// Height returns the run's max height above start
func (s *Score) Height() float64 {
	return s.runMax - s.start
}

// Meters returns Height floored to whole units
func (s *Score) Meters() int {
	return int(math.Floor(s.Height()))
}

// Best returns the best height seen across runs
func (s *Score) Best() float64 {
	return s.best
}

// Coins returns coins collected this run
func (s *Score) Coins() int {
	return s.coins
}

// Reset starts a new run, keeping the best height
func (s *Score) Reset() {
	s.runMax = s.start
	s.coins = 0
}
