// Package state owns the running orrery: the scene graph, the updater that
// animates it, and every control that mutates it.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/scene"
)

// BodyState is a body's animated state at one frame.
type BodyState struct {
	Name       string         `json:"name"`
	Kind       celestial.Kind `json:"kind"`
	Parent     string         `json:"parent,omitempty"`
	Depth      int            `json:"depth"`
	Radius     float64        `json:"radius"`
	World      scene.Vec3     `json:"world"`
	OrbitAngle float64        `json:"orbit_angle"`
	SpinAngle  float64        `json:"spin_angle"`
	Tilt       float64        `json:"tilt"`
	SpinAxis   scene.Vec3     `json:"spin_axis"`
	Color      string         `json:"color,omitempty"`
	Emissive   string         `json:"emissive,omitempty"`

	Textures celestial.TextureRefs `json:"textures,omitempty"`
}

// Distance returns the body's distance from the scene origin.
func (b BodyState) Distance() float64 {
	return b.World.Norm()
}

// Snapshot is an immutable copy of the orrery at one frame.
type Snapshot struct {
	Elapsed      float64
	Speed        anim.Speed
	Lights       Lights
	MaterialMode scene.MaterialMode
	Follow       string
	Paused       bool
	FPS          float64
	FrameTime    time.Duration
	Frames       uint64
	Bodies       []BodyState // Hierarchy order: each body before its moons
}

// Body returns the named body, or nil.
func (s Snapshot) Body(name string) *BodyState {
	for i := range s.Bodies {
		if s.Bodies[i].Name == name {
			return &s.Bodies[i]
		}
	}
	return nil
}

// Config holds construction options for a Manager.
type Config struct {
	Table       *celestial.Table // Nil selects the built-in table
	Speed       anim.Speed
	Lights      Lights
	StatsWindow int
	Now         func() time.Time // Nil selects time.Now
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Speed:       anim.DefaultSpeed(),
		Lights:      DefaultLights(),
		StatsWindow: 60,
	}
}

// Manager is the single owner of the scene graph. The updater, the control
// panel and the follow camera all mutate the graph through it, one call at
// a time.
type Manager struct {
	mu sync.Mutex

	graph   *scene.Graph
	updater *anim.Updater
	clock   *anim.Clock
	stats   *anim.FrameStats
	now     func() time.Time

	speed   anim.Speed
	lights  Lights
	follow  string
	elapsed float64
}

// NewManager builds the scene graph from cfg. A bad body table surfaces as
// the *celestial.ConfigurationError from construction.
func NewManager(cfg Config) (*Manager, error) {
	table := cfg.Table
	if table == nil {
		table = celestial.DefaultTable()
	}
	graph, err := scene.Build(table)
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	speed := cfg.Speed
	if speed == (anim.Speed{}) {
		speed = anim.DefaultSpeed()
	}
	speed.SetMultiplier(speed.Multiplier)
	lights := cfg.Lights
	if lights == (Lights{}) {
		lights = DefaultLights()
	}

	return &Manager{
		graph:   graph,
		updater: anim.NewUpdater(graph),
		clock:   anim.NewClockWithSource(now),
		stats:   anim.NewFrameStats(cfg.StatsWindow),
		now:     now,
		speed:   speed,
		lights:  lights.Clamped(),
	}, nil
}

// Tick animates the graph to the given elapsed seconds at the current
// speed. Callers draw after Tick returns.
func (m *Manager) Tick(elapsed float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := m.now()
	m.elapsed = elapsed
	m.updater.Apply(elapsed, m.speed.Value())
	m.stats.Record(start, m.now())
}

// Advance ticks to the clock's current elapsed time and returns it.
func (m *Manager) Advance() float64 {
	m.mu.Lock()
	elapsed := m.clock.Elapsed()
	m.mu.Unlock()

	m.Tick(elapsed)
	return elapsed
}

// TogglePause freezes or resumes the clock and reports whether it is now
// paused. Ticks while paused redraw the same frame.
func (m *Manager) TogglePause() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clock.Paused() {
		m.clock.Resume()
	} else {
		m.clock.Pause()
	}
	return m.clock.Paused()
}

// Paused reports whether the clock is frozen.
func (m *Manager) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clock.Paused()
}

// Elapsed returns the elapsed seconds of the last tick.
func (m *Manager) Elapsed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// BodyNames returns body names in hierarchy order.
func (m *Manager) BodyNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var names []string
	m.graph.Walk(func(p *scene.Pivot, _ int) bool {
		names = append(names, p.Name)
		return true
	})
	return names
}

// Speed returns the current speed setting.
func (m *Manager) Speed() anim.Speed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// SetSpeedMultiplier sets the multiplier, clamped to its range.
func (m *Manager) SetSpeedMultiplier(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed.SetMultiplier(v)
}

// StepSpeed moves the multiplier by n slider steps.
func (m *Manager) StepSpeed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed.Step(n)
}

// ResetSpeed restores the default multiplier.
func (m *Manager) ResetSpeed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed.Reset()
}

// Lights returns the current lighting.
func (m *Manager) Lights() Lights {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lights
}

// SetLights replaces the lighting, clamping intensities.
func (m *Manager) SetLights(l Lights) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lights = l.Clamped()
}

// AdjustLight moves one light's intensity by delta.
func (m *Manager) AdjustLight(kind LightKind, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lights = m.lights.Adjusted(kind, delta)
}

// SetMaterialMode applies a debug material to every body.
func (m *Manager) SetMaterialMode(mode scene.MaterialMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graph.SetMaterialMode(mode)
}

// ToggleWireframe switches between wireframe and standard materials.
func (m *Manager) ToggleWireframe() {
	m.toggleMaterial(scene.MaterialWireframe)
}

// ToggleNormals switches between normal visualization and standard
// materials.
func (m *Manager) ToggleNormals() {
	m.toggleMaterial(scene.MaterialNormals)
}

func (m *Manager) toggleMaterial(mode scene.MaterialMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.graph.MaterialMode() == mode {
		mode = scene.MaterialStandard
	}
	m.graph.SetMaterialMode(mode)
}

// Follow makes the named body the camera target.
func (m *Manager) Follow(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graph.Lookup(name); !ok {
		return fmt.Errorf("follow: unknown body %q", name)
	}
	m.follow = name
	return nil
}

// Unfollow frees the camera.
func (m *Manager) Unfollow() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.follow = ""
}

// FollowTarget returns the followed body name, empty when free.
func (m *Manager) FollowTarget() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.follow
}

// FollowPosition returns the followed body's current world position.
func (m *Manager) FollowPosition() (scene.Vec3, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.follow == "" {
		return scene.Vec3{}, false
	}
	pos, err := m.graph.WorldPosition(m.follow)
	if err != nil {
		return scene.Vec3{}, false
	}
	return pos, true
}

// Snapshot copies the current frame.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Elapsed:      m.elapsed,
		Speed:        m.speed,
		Lights:       m.lights,
		MaterialMode: m.graph.MaterialMode(),
		Follow:       m.follow,
		Paused:       m.clock.Paused(),
		FPS:          m.stats.FPS(),
		FrameTime:    m.stats.FrameTime(),
		Frames:       m.stats.Frames(),
		Bodies:       make([]BodyState, 0, m.graph.Len()),
	}

	m.graph.Walk(func(p *scene.Pivot, depth int) bool {
		e, _ := m.graph.Lookup(p.Name)
		n := e.Node
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:       e.Descriptor.Name,
			Kind:       e.Descriptor.Kind,
			Parent:     e.Descriptor.Parent,
			Depth:      depth,
			Radius:     n.Radius,
			World:      n.WorldPosition(),
			OrbitAngle: p.Angle,
			SpinAngle:  n.Spin,
			Tilt:       n.Tilt,
			SpinAxis:   n.SpinAxis(),
			Color:      n.Material.Color,
			Emissive:   n.Material.Emissive,
			Textures:   n.Material.Textures,
		})
		return true
	})
	return snap
}
