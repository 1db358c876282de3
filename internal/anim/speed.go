package anim

import "math"

// Speed limits as exposed by the control panel.
const (
	DefaultSpeedFactor = 0.1
	DefaultMultiplier  = 1.0
	MinMultiplier      = 0.0
	MaxMultiplier      = 2.0
	MultiplierStep     = 0.1
)

// Speed is the global animation speed: a fixed factor scaled by a
// user-adjustable multiplier.
type Speed struct {
	Factor     float64
	Multiplier float64
}

// DefaultSpeed returns factor 0.1 at multiplier 1.
func DefaultSpeed() Speed {
	return Speed{Factor: DefaultSpeedFactor, Multiplier: DefaultMultiplier}
}

// Value returns the effective speed scalar fed to the updater.
func (s Speed) Value() float64 {
	return s.Factor * s.Multiplier
}

// SetMultiplier sets the multiplier, clamped to [0, 2]. NaN restores the
// default.
func (s *Speed) SetMultiplier(m float64) {
	if math.IsNaN(m) {
		m = DefaultMultiplier
	}
	s.Multiplier = math.Max(MinMultiplier, math.Min(MaxMultiplier, m))
}

// Step moves the multiplier by n slider steps of 0.1. The result is rounded
// to one decimal so repeated steps do not drift.
func (s *Speed) Step(n int) {
	m := s.Multiplier + float64(n)*MultiplierStep
	s.SetMultiplier(math.Round(m*10) / 10)
}

// Reset restores the default multiplier, keeping the factor.
func (s *Speed) Reset() {
	s.Multiplier = DefaultMultiplier
}
