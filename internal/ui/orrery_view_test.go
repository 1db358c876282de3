package ui

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// frameAt returns the default orrery's snapshot at elapsed seconds.
func frameAt(t *testing.T, elapsed float64, follow string) state.Snapshot {
	t.Helper()
	mgr, err := state.NewManager(state.DefaultConfig())
	require.NoError(t, err)
	mgr.Tick(elapsed)
	if follow != "" {
		require.NoError(t, mgr.Follow(follow))
	}
	return mgr.Snapshot()
}

func TestOrreryModelInit(t *testing.T) {
	m := NewOrreryModel(30)

	assert.Equal(t, 0, m.focusIdx)
	assert.Equal(t, 1.0, m.scale())
	assert.Equal(t, ScaleLog, m.scaleMode)
	assert.True(t, m.showStars, "starfield on by default")
	assert.Len(t, m.stars, starCount)
	assert.False(t, m.hasFollowPos)
}

func TestStarfieldIsStable(t *testing.T) {
	assert.Equal(t, newStarfield(10), newStarfield(10))
}

func TestProjectBodies(t *testing.T) {
	snap := frameAt(t, 0, "")

	lin := projectBodies(snap.Bodies, ScaleLinear)
	assert.InDelta(t, 55, lin["Earth"].X, 1e-9)
	assert.InDelta(t, 0, lin["Earth"].Y, 1e-9)
	assert.InDelta(t, 57.5, lin["Luna"].X, 1e-9)

	logp := projectBodies(snap.Bodies, ScaleLog)
	wantEarth := math.Log10(56)
	assert.InDelta(t, wantEarth, logp["Earth"].X, 1e-9)
	// Moons are compressed relative to their planet, not the origin
	assert.InDelta(t, wantEarth+math.Log10(3.5), logp["Luna"].X, 1e-9)
	assert.Less(t, logp["Deimos"].X, logp["Mars"].X, "Deimos sits on the inner side of Mars")
	assert.Equal(t, point{}, logp["Sun"])
}

func TestProjectBodies_FollowsRotation(t *testing.T) {
	// A quarter turn of Earth's orbit moves it from +X onto the Z axis
	snap := frameAt(t, math.Pi/2/0.1, "")
	p := projectBodies(snap.Bodies, ScaleLinear)["Earth"]
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 55, math.Abs(p.Y), 1e-9)
}

func TestOrreryModelFocusNavigation(t *testing.T) {
	m := NewOrreryModel(30).UpdateData(frameAt(t, 0, ""))
	n := len(m.snapshot.Bodies)

	m, _ = m.Update(keyRune('k'))
	assert.Equal(t, 1, m.focusIdx)
	assert.Equal(t, "Mercury", m.FocusedBody().Name)
	// Free camera snaps to the focused body
	assert.Equal(t, m.proj["Mercury"].X, m.camX)

	m, _ = m.Update(keyRune('j'))
	m, _ = m.Update(keyRune('j'))
	assert.Equal(t, n-1, m.focusIdx, "prev wraps")
}

func TestOrreryModelZoom(t *testing.T) {
	m := NewOrreryModel(30)

	m, _ = m.Update(keyRune('+'))
	assert.Equal(t, 1.5, m.scale())
	m, _ = m.Update(keyRune('-'))
	m, _ = m.Update(keyRune('-'))
	assert.Equal(t, 0.75, m.scale())
	m, _ = m.Update(keyRune('0'))
	assert.Equal(t, 1.0, m.scale())

	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyRune('-'))
	}
	assert.Equal(t, zoomLevels[0], m.scale(), "zoom clamps")
}

func TestOrreryModelFollowKey(t *testing.T) {
	m := NewOrreryModel(30).UpdateData(frameAt(t, 0, ""))
	m.SetFocus("Earth")

	_, cmd := m.Update(keyRune('f'))
	require.NotNil(t, cmd, "f emits a follow command")
	assert.Equal(t, FollowMsg{Name: "Earth"}, cmd())

	// Pressing f on the followed body releases it
	m = m.UpdateData(frameAt(t, 0, "Earth"))
	_, cmd = m.Update(keyRune('f'))
	require.NotNil(t, cmd)
	assert.Equal(t, FollowMsg{}, cmd())
}

func TestOrreryModelPanReleasesFollow(t *testing.T) {
	m := NewOrreryModel(30).UpdateData(frameAt(t, 0, "Mars"))

	startX := m.camX
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Greater(t, m.camX, startX, "pan right")
	require.NotNil(t, cmd, "manual pan while following emits a release")
	assert.Equal(t, FollowMsg{}, cmd())

	// Free camera pans without commands
	m = m.UpdateData(frameAt(t, 0, ""))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, cmd)
}

func TestOrreryModelSpringConverges(t *testing.T) {
	snap := frameAt(t, 3, "Jupiter")
	m := NewOrreryModel(30)

	m = m.UpdateData(snap)
	target := m.proj["Jupiter"]
	first := math.Hypot(m.camX-target.X, m.camY-target.Y)
	require.NotZero(t, first, "camera eases, not jumps")
	assert.Less(t, first, target.norm(), "first step moves toward the target")

	for i := 0; i < 300; i++ {
		m = m.UpdateData(snap)
	}
	assert.Less(t, math.Hypot(m.camX-target.X, m.camY-target.Y), 1e-3, "camera settles after 10s")
}

func TestOrreryModelScaleModeToggle(t *testing.T) {
	m := NewOrreryModel(30).UpdateData(frameAt(t, 0, ""))

	m, _ = m.Update(keyRune('z'))
	require.Equal(t, ScaleLinear, m.scaleMode)
	assert.InDelta(t, 55, m.proj["Earth"].X, 1e-9, "projection rebuilt")
	m, _ = m.Update(keyRune('z'))
	assert.Equal(t, ScaleLog, m.scaleMode)
}

func TestOrreryModelLabelAndStarToggles(t *testing.T) {
	m := NewOrreryModel(30)

	m, _ = m.Update(keyRune('l'))
	assert.Equal(t, LabelAll, m.labelMode)
	m, _ = m.Update(keyRune('l'))
	assert.Equal(t, LabelNone, m.labelMode)
	m, _ = m.Update(keyRune('t'))
	assert.False(t, m.showStars, "t hides the starfield")
}

func TestOrreryModelView(t *testing.T) {
	m := NewOrreryModel(30).SetSize(120, 35).UpdateData(frameAt(t, 1, ""))

	view := m.View()
	for _, want := range []string{"☉", "◄ Sun", "◆ Sun", "Mode:", "Log", "Camera:", "free", "Point:"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "FPS:", "stats hidden by default")

	m = m.SetShowStats(true)
	assert.Contains(t, m.View(), "FPS:")

	small := NewOrreryModel(30).SetSize(20, 5)
	assert.Contains(t, small.View(), "too small")
}

func TestOrreryModelHUDFollowPosition(t *testing.T) {
	snap := frameAt(t, 2, "Earth")
	pos := scene.Vec3{X: 12.34, Y: 0, Z: -5.5}

	m := NewOrreryModel(30).SetSize(120, 35).SetFollowPosition(pos, true).UpdateData(snap)
	assert.Contains(t, m.View(), "Earth @ (12.3, 0.0, -5.5)")

	m = m.SetFollowPosition(scene.Vec3{}, false)
	view := m.View()
	assert.Contains(t, view, "Earth")
	assert.NotContains(t, view, "Earth @")
}

func TestOrreryModelWireframeGlyphs(t *testing.T) {
	mgr, err := state.NewManager(state.DefaultConfig())
	require.NoError(t, err)
	mgr.ToggleWireframe()
	mgr.Tick(1)

	view := NewOrreryModel(30).SetSize(120, 35).UpdateData(mgr.Snapshot()).View()
	assert.Contains(t, view, "◎", "wireframe star glyph")
	assert.NotContains(t, view, "☉", "standard glyph in wireframe mode")
}

func TestDrawCircle(t *testing.T) {
	c := newCanvas(40, 20)
	drawCircle(c, 20, 10, 8)

	count := 0
	for _, row := range c.cells {
		for _, cl := range row {
			if cl.ch == '·' {
				count++
			}
		}
	}
	assert.Positive(t, count, "circle drew nothing")

	c = newCanvas(40, 20)
	drawCircle(c, 20, 10, 1)
	for _, row := range c.cells {
		for _, cl := range row {
			require.Equal(t, ' ', cl.ch, "rings under two cells are skipped")
		}
	}
}

func TestAngleDeg(t *testing.T) {
	tests := []struct {
		rad, want float64
	}{
		{0, 0},
		{math.Pi, 180},
		{-math.Pi / 2, 270},
		{5 * math.Pi, 180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, angleDeg(tt.rad), 1e-9, "angleDeg(%v)", tt.rad)
	}
}
