package state

import (
	"bytes"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/scene"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestNewManager(t *testing.T) {
	m := newTestManager(t)

	assert.InDelta(t, 0.1, m.Speed().Value(), 1e-12)
	assert.Equal(t, DefaultLights(), m.Lights())
	assert.Len(t, m.BodyNames(), 22)
	assert.Empty(t, m.FollowTarget(), "camera should start free")
}

func TestNewManager_ZeroConfig(t *testing.T) {
	m, err := NewManager(Config{})
	require.NoError(t, err)
	assert.Equal(t, anim.DefaultSpeed(), m.Speed())
}

func TestNewManager_CustomTable(t *testing.T) {
	table, err := celestial.NewTable(
		celestial.Descriptor{Name: "Star", Kind: celestial.KindStar, Radius: 5, RotationPeriodDivisor: 10},
		celestial.Descriptor{Name: "Rock", Kind: celestial.KindPlanet, Radius: 1, OrbitalDistance: 12,
			OrbitalPeriodDivisor: 2, RotationPeriodDivisor: 1, Parent: "Star"},
	)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Table = table
	m, err := NewManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Star", "Rock"}, m.BodyNames())

	_, err = celestial.NewTable(celestial.Descriptor{Name: "Sun", Kind: celestial.KindStar, Radius: 1})
	assert.ErrorIs(t, err, celestial.ErrZeroValue)
}

func TestManager_Tick(t *testing.T) {
	m := newTestManager(t)
	m.Tick(18.8)

	snap := m.Snapshot()
	assert.Equal(t, 18.8, snap.Elapsed)

	mars := snap.Body("Mars")
	require.NotNil(t, mars)
	assert.InDelta(t, 1.0, mars.OrbitAngle, 1e-12)
	assert.InDelta(t, 70*math.Cos(1.0), mars.World.X, 1e-9)
	assert.Equal(t, uint64(1), snap.Frames)
}

func TestManager_SpeedZeroResetsAngles(t *testing.T) {
	m := newTestManager(t)
	m.Tick(40)
	m.SetSpeedMultiplier(0)
	m.Tick(41)

	for _, b := range m.Snapshot().Bodies {
		assert.Zero(t, b.OrbitAngle, b.Name)
		assert.Zero(t, b.SpinAngle, b.Name)
	}
}

func TestManager_SpeedControls(t *testing.T) {
	m := newTestManager(t)

	m.StepSpeed(5)
	assert.Equal(t, 1.5, m.Speed().Multiplier)
	m.SetSpeedMultiplier(9)
	assert.Equal(t, anim.MaxMultiplier, m.Speed().Multiplier)
	m.ResetSpeed()
	assert.Equal(t, anim.DefaultMultiplier, m.Speed().Multiplier)
}

func TestManager_NaNSpeedKeepsAnglesFinite(t *testing.T) {
	m := newTestManager(t)
	m.SetSpeedMultiplier(math.NaN())
	assert.Equal(t, anim.DefaultMultiplier, m.Speed().Multiplier)

	m.Tick(10)
	for _, b := range m.Snapshot().Bodies {
		assert.False(t, math.IsNaN(b.OrbitAngle), "%s orbit angle is NaN", b.Name)
		assert.False(t, math.IsNaN(b.World.X), "%s position is NaN", b.Name)
	}
}

func TestManager_Advance(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return now }

	m, err := NewManager(cfg)
	require.NoError(t, err)

	now = now.Add(10 * time.Second)
	assert.Equal(t, 10.0, m.Advance())

	earth := m.Snapshot().Body("Earth")
	require.NotNil(t, earth)
	assert.InDelta(t, 1.0, earth.OrbitAngle, 1e-12)
}

func TestManager_TogglePause(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return now }

	m, err := NewManager(cfg)
	require.NoError(t, err)

	now = now.Add(4 * time.Second)
	require.True(t, m.TogglePause(), "TogglePause should report paused")
	now = now.Add(30 * time.Second)
	assert.Equal(t, 4.0, m.Advance(), "clock frozen while paused")
	assert.True(t, m.Snapshot().Paused)

	require.False(t, m.TogglePause(), "TogglePause should report running")
	now = now.Add(time.Second)
	assert.Equal(t, 5.0, m.Advance())
}

func TestManager_Follow(t *testing.T) {
	m := newTestManager(t)

	assert.Error(t, m.Follow("Pluto"), "unknown body")
	_, ok := m.FollowPosition()
	assert.False(t, ok, "no position while free")

	require.NoError(t, m.Follow("Luna"))
	m.Tick(5)

	pos, ok := m.FollowPosition()
	require.True(t, ok)
	luna := m.Snapshot().Body("Luna")
	require.NotNil(t, luna)
	assert.Equal(t, luna.World, pos)

	m.Unfollow()
	assert.Empty(t, m.FollowTarget())
}

func TestManager_MaterialToggles(t *testing.T) {
	m := newTestManager(t)

	m.ToggleWireframe()
	assert.Equal(t, scene.MaterialWireframe, m.Snapshot().MaterialMode)
	m.ToggleNormals()
	assert.Equal(t, scene.MaterialNormals, m.Snapshot().MaterialMode)
	m.ToggleNormals()
	assert.Equal(t, scene.MaterialStandard, m.Snapshot().MaterialMode)
}

func TestManager_Lights(t *testing.T) {
	m := newTestManager(t)

	m.AdjustLight(LightPoint, 10000)
	assert.Equal(t, MaxPointIntensity, m.Lights().Point)
	m.AdjustLight(LightAmbient, -5)
	assert.Zero(t, m.Lights().Ambient)

	m.SetLights(Lights{Point: -1, Ambient: 0.5, Hemisphere: 3})
	l := m.Lights()
	assert.Zero(t, l.Point)
	assert.Equal(t, 0.5, l.Ambient)
	assert.Equal(t, 1.0, l.Hemisphere)
}

func TestLightsClampedNonFinite(t *testing.T) {
	def := DefaultLights()
	l := Lights{Point: math.NaN(), Ambient: math.NaN(), Hemisphere: math.Inf(1)}.Clamped()

	assert.Equal(t, def.Point, l.Point)
	assert.Equal(t, def.Ambient, l.Ambient)
	assert.Equal(t, MaxHemisphereIntensity, l.Hemisphere)

	l = def.Adjusted(LightAmbient, math.NaN())
	assert.Equal(t, def.Ambient, l.Ambient)
	l = def.Adjusted(LightPoint, math.Inf(-1))
	assert.Zero(t, l.Point)
}

func TestManager_SnapshotHierarchyOrder(t *testing.T) {
	m := newTestManager(t)
	snap := m.Snapshot()

	seen := make(map[string]int)
	for i, b := range snap.Bodies {
		seen[b.Name] = i
		if b.Parent == "" {
			continue
		}
		pi, ok := seen[b.Parent]
		if !assert.True(t, ok, "%s listed before its parent %s", b.Name, b.Parent) {
			continue
		}
		assert.Equal(t, snap.Bodies[pi].Depth+1, b.Depth, b.Name)
	}
}

func TestManager_SnapshotSpinAxisAndTextures(t *testing.T) {
	m := newTestManager(t)
	m.Tick(3)
	snap := m.Snapshot()

	sun := snap.Body("Sun")
	require.NotNil(t, sun)
	assert.InDelta(t, 1.0, sun.SpinAxis.Y, 1e-12, "untilted axis points up")

	earth := snap.Body("Earth")
	require.NotNil(t, earth)
	assert.InDelta(t, 1.0, earth.SpinAxis.Norm(), 1e-12)
	assert.InDelta(t, math.Cos(earth.Tilt), earth.SpinAxis.Y, 1e-12)
	assert.NotEmpty(t, earth.Textures.Color)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	iterations := 100

	// Single writer, like the frame loop
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Tick(float64(i))
			m.StepSpeed(1)
		}
	}()

	// Readers, like a headless exporter
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_, _ = m.FollowPosition()
				_ = m.Speed()
			}
		}()
	}

	wg.Wait()
}

func TestExportSnapshot(t *testing.T) {
	m := newTestManager(t)
	m.Tick(18.8)
	require.NoError(t, m.Follow("Mars"))

	generated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	export := ExportSnapshot(m.Snapshot(), generated)

	assert.Equal(t, generated, export.GeneratedAt)
	assert.Equal(t, "Mars", export.Follow)
	require.Len(t, export.Bodies, 22)

	var mars *BodyExport
	for i := range export.Bodies {
		if export.Bodies[i].Name == "Mars" {
			mars = &export.Bodies[i]
		}
	}
	require.NotNil(t, mars)
	assert.InDelta(t, 180/math.Pi, mars.OrbitDeg, 1e-9, "one radian")
	assert.Equal(t, "planet", mars.Kind)
	require.NotNil(t, mars.Textures)
	assert.NotEmpty(t, mars.Textures.Color)

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "standard", decoded["material_mode"])
}

func TestExportSnapshot_OmitsEmptyTextures(t *testing.T) {
	table, err := celestial.NewTable(
		celestial.Descriptor{Name: "Star", Kind: celestial.KindStar, Radius: 5, RotationPeriodDivisor: 10},
	)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Table = table
	m, err := NewManager(cfg)
	require.NoError(t, err)

	export := ExportSnapshot(m.Snapshot(), time.Time{})
	require.Len(t, export.Bodies, 1)
	assert.Nil(t, export.Bodies[0].Textures)

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf))
	assert.NotContains(t, buf.String(), "textures")
}

func TestWriteSummaryTable(t *testing.T) {
	m := newTestManager(t)
	m.Tick(10)

	var buf bytes.Buffer
	WriteSummaryTable(&buf, m.Snapshot())
	out := buf.String()

	for _, want := range []string{"Orrery @ t=10.00s", "Sun", " Earth", "  Luna", "Total: 22 bodies"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	WriteSummaryTable(&buf, Snapshot{})
	assert.Contains(t, buf.String(), "No bodies")
}

func TestWrapDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{370, 10},
		{-10, 350},
		{720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapDeg(tt.in), 1e-9, "wrapDeg(%v)", tt.in)
	}
}
