// Package anim advances the orrery's rotations from elapsed time.
//
// Angles are recomputed from absolute elapsed time on every call rather than
// integrated frame by frame, so an update is a pure function of
// (elapsed, speed): repeating it changes nothing and speed 0 returns every
// body to its reference angle.
package anim

import (
	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/scene"
)

// OrbitAngle returns the orbit pivot angle of d in radians. Root bodies do
// not orbit and always report 0.
func OrbitAngle(d celestial.Descriptor, elapsed, speed float64) float64 {
	if d.IsRoot() {
		return 0
	}
	return elapsed * speed / d.OrbitalPeriodDivisor
}

// SpinAngle returns the self-rotation angle of d in radians.
func SpinAngle(d celestial.Descriptor, elapsed, speed float64) float64 {
	return elapsed * speed / d.RotationPeriodDivisor
}

// Updater applies orbit and spin angles to a scene graph. It never touches
// axial tilt, which is fixed when the graph is built.
type Updater struct {
	graph   *scene.Graph
	entries []scene.Entry
}

// NewUpdater returns an updater for g.
func NewUpdater(g *scene.Graph) *Updater {
	return &Updater{graph: g, entries: g.Entries()}
}

// Graph returns the graph being animated.
func (u *Updater) Graph() *scene.Graph {
	return u.graph
}

// Apply sets every pivot angle and node spin for the given elapsed seconds
// and speed. It does no validation: a negative elapsed time simply yields
// reversed angles.
func (u *Updater) Apply(elapsed, speed float64) {
	for _, e := range u.entries {
		e.Pivot.Angle = OrbitAngle(e.Descriptor, elapsed, speed)
		e.Node.Spin = SpinAngle(e.Descriptor, elapsed, speed)
	}
}
