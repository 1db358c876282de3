package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesModelNavigation(t *testing.T) {
	m := NewBodiesModel().UpdateData(frameAt(t, 0, ""))
	n := len(m.snapshot.Bodies)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stops at 0")

	m, _ = m.Update(keyRune('j'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, n-1, m.cursor)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, n-1, m.cursor, "cursor stops at the last row")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if b := m.SelectedBody(); assert.NotNil(t, b) {
		assert.Equal(t, "Sun", b.Name)
	}
}

func TestBodiesModelEnterFollows(t *testing.T) {
	m := NewBodiesModel().UpdateData(frameAt(t, 0, ""))
	m, _ = m.Update(keyRune('j'))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "enter emits a follow command")
	assert.Equal(t, FollowMsg{Name: "Mercury", Open: true}, cmd())

	empty := NewBodiesModel()
	_, cmd = empty.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter with no bodies does nothing")
}

func TestBodiesModelCursorClampsOnSmallerFrame(t *testing.T) {
	m := NewBodiesModel().UpdateData(frameAt(t, 0, ""))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})

	snap := frameAt(t, 0, "")
	snap.Bodies = snap.Bodies[:3]
	m = m.UpdateData(snap)
	assert.Equal(t, 2, m.cursor, "cursor follows the shrunken table")
}

func TestBodiesModelView(t *testing.T) {
	m := NewBodiesModel().SetSize(100, 40).UpdateData(frameAt(t, 0, ""))
	view := m.View()

	for _, want := range []string{"Scene", "1 stars, 8 planets, 13 moons", "Name", "Distance", "Sun", "  Earth", "    Luna"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "Showing", "all rows fit")

	m = m.SetSize(100, 12)
	assert.Contains(t, m.View(), "Showing 1-5 of 22 bodies")

	assert.Contains(t, NewBodiesModel().View(), "No bodies")
}

func TestRenderLevelBar(t *testing.T) {
	tests := []struct {
		name       string
		frac       float64
		width      int
		wantFilled int
	}{
		{"empty", 0.0, 10, 0},
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"quarter", 0.25, 8, 2},
		{"over 100%", 1.5, 10, 10},
		{"negative", -0.5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderLevelBar(tt.frac, tt.width)

			assert.True(t, strings.HasPrefix(bar, "[") && strings.HasSuffix(bar, "]"), "brackets in %q", bar)
			assert.Equal(t, tt.wantFilled, strings.Count(bar, "█"))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Sun", 10, "Sun"},
		{"Ganymede", 6, "Gan..."},
		{"Europa", 2, "Eu"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max), "truncate(%q, %d)", tt.in, tt.max)
	}
}
