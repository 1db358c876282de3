package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/state"
)

// Styles for the bodies table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9D4EDD"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// BodiesModel lists every body in hierarchy order.
type BodiesModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewBodiesModel creates a new bodies table model.
func NewBodiesModel() BodiesModel {
	return BodiesModel{}
}

// SetSize updates the viewport size.
func (m BodiesModel) SetSize(width, height int) BodiesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new frame.
func (m BodiesModel) UpdateData(snapshot state.Snapshot) BodiesModel {
	m.snapshot = snapshot
	if m.cursor >= len(snapshot.Bodies) {
		m.cursor = max(len(snapshot.Bodies)-1, 0)
	}
	return m
}

// Update handles messages. Enter follows the selected body in the orrery.
func (m BodiesModel) Update(msg tea.Msg) (BodiesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	count := len(m.snapshot.Bodies)
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		if count > 0 {
			m.cursor = count - 1
		}
	case "enter":
		if b := m.SelectedBody(); b != nil {
			return m, followCmd(b.Name, true)
		}
	}
	return m, nil
}

// SelectedBody returns the body under the cursor, if any.
func (m BodiesModel) SelectedBody() *state.BodyState {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Bodies) {
		return nil
	}
	b := m.snapshot.Bodies[m.cursor]
	return &b
}

// View renders the summary and the table.
func (m BodiesModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())

	return b.String()
}

func (m BodiesModel) renderSummary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Scene"))
	b.WriteString("\n")

	counts := make(map[celestial.Kind]int)
	for _, body := range m.snapshot.Bodies {
		counts[body.Kind]++
	}
	b.WriteString(fmt.Sprintf("  %d stars, %d planets, %d moons  %s\n",
		counts[celestial.KindStar], counts[celestial.KindPlanet], counts[celestial.KindMoon],
		mutedStyle.Render(fmt.Sprintf("t=%.1fs", m.snapshot.Elapsed))))

	l := m.snapshot.Lights
	rows := []struct {
		label string
		value float64
		max   float64
		text  string
	}{
		{"Speed", m.snapshot.Speed.Multiplier, anim.MaxMultiplier, fmt.Sprintf("×%.1f", m.snapshot.Speed.Multiplier)},
		{"Point", l.Point, state.MaxPointIntensity, fmt.Sprintf("%.0f", l.Point)},
		{"Ambient", l.Ambient, state.MaxAmbientIntensity, fmt.Sprintf("%.2f", l.Ambient)},
		{"Hemisphere", l.Hemisphere, state.MaxHemisphereIntensity, fmt.Sprintf("%.2f", l.Hemisphere)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s %s\n", r.label, renderLevelBar(r.value/r.max, 10), r.text))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderLevelBar draws a fraction in [0, 1] as a bracketed bar.
func renderLevelBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + barStyle.Render(bar) + "]"
}

func (m BodiesModel) renderTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bodies"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-18s %-7s %-10s %9s %8s %8s %7s",
		"Name", "Kind", "Parent", "Distance", "Orbit", "Spin", "Tilt")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	bodies := m.snapshot.Bodies
	if len(bodies) == 0 {
		b.WriteString("  No bodies\n")
		return b.String()
	}

	// Leave room for the summary and header
	maxRows := max(m.height-10, 5)

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(bodies))

	for i := startIdx; i < endIdx; i++ {
		body := bodies[i]
		name := strings.Repeat("  ", body.Depth) + body.Name

		row := fmt.Sprintf("%-18s %-7s %-10s %9.1f %7.1f° %7.1f° %6.1f°",
			truncate(name, 18),
			body.Kind,
			truncate(body.Parent, 10),
			body.Distance(),
			angleDeg(body.OrbitAngle),
			angleDeg(body.SpinAngle),
			body.Tilt*180/math.Pi,
		)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(bodies) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d bodies", startIdx+1, endIdx, len(bodies)))
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
