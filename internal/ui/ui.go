// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrrery ViewMode = iota
	ViewBodies
)

const viewCount = 2

// Control steps for the light keys.
const (
	pointLightStep = 1000.0
	softLightStep  = 0.05
)

// FrameMsg drives one animation frame.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	FPS           int
	FrameInterval time.Duration // Zero derives it from FPS
	ShowStats     bool
	Logger        *logging.Logger // Nil discards
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	log   *logging.Logger

	// UI state
	viewMode      ViewMode
	width         int
	height        int
	ready         bool
	frameInterval time.Duration
	showStats     bool
	statusMsg     string

	// Sub-models
	orrery OrreryModel
	bodies BodiesModel

	// Last frame
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / time.Duration(fps)
	}

	snap := stateMgr.Snapshot()
	pos, ok := stateMgr.FollowPosition()
	orrery := NewOrreryModel(fps).SetShowStats(opts.ShowStats).SetFollowPosition(pos, ok).UpdateData(snap)
	if snap.Follow != "" {
		orrery.SetFocus(snap.Follow)
	}

	return Model{
		state:         stateMgr,
		log:           logger,
		viewMode:      ViewOrrery,
		frameInterval: interval,
		showStats:     opts.ShowStats,
		orrery:        orrery,
		bodies:        NewBodiesModel().UpdateData(snap),
		snapshot:      snap,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleGlobalKey(msg) {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		cmds = append(cmds, m.updateActiveView(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 3 lines, footer 2
		contentHeight := msg.Height - 5
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.bodies = m.bodies.SetSize(msg.Width, contentHeight)

	case FrameMsg:
		cmds = append(cmds, m.frameCmd())
		// Update strictly before draw
		m.state.Advance()
		m.refresh()

	case FollowMsg:
		m.applyFollow(msg)
		m.refresh()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey applies keys that work in every view and reports whether
// the key was consumed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true

	case "1":
		m.viewMode = ViewOrrery
	case "2":
		m.viewMode = ViewBodies
	case "tab":
		m.viewMode = (m.viewMode + 1) % viewCount

	// Speed
	case "<", ",":
		m.state.StepSpeed(-1)
	case ">", ".":
		m.state.StepSpeed(1)
	case "R":
		m.state.ResetSpeed()
	case " ", "space":
		if m.state.TogglePause() {
			m.statusMsg = "Paused"
		} else {
			m.statusMsg = ""
		}

	// Materials and stats
	case "w":
		m.state.ToggleWireframe()
	case "v":
		m.state.ToggleNormals()
	case "p":
		m.showStats = !m.showStats
		m.orrery = m.orrery.SetShowStats(m.showStats)

	// Lights
	case "i":
		m.state.AdjustLight(state.LightPoint, -pointLightStep)
	case "I":
		m.state.AdjustLight(state.LightPoint, pointLightStep)
	case "a":
		m.state.AdjustLight(state.LightAmbient, -softLightStep)
	case "A":
		m.state.AdjustLight(state.LightAmbient, softLightStep)
	case "h":
		m.state.AdjustLight(state.LightHemisphere, -softLightStep)
	case "H":
		m.state.AdjustLight(state.LightHemisphere, softLightStep)

	default:
		return false
	}

	m.refresh()
	return true
}

func (m *Model) applyFollow(msg FollowMsg) {
	if msg.Name == "" {
		m.state.Unfollow()
		m.log.Debug("camera released")
		return
	}
	if err := m.state.Follow(msg.Name); err != nil {
		m.log.Warn("follow %s: %v", msg.Name, err)
		m.statusMsg = err.Error()
		return
	}
	m.log.Debug("camera following %s", msg.Name)
	m.statusMsg = ""
	if msg.Open {
		m.orrery.SetFocus(msg.Name)
		m.viewMode = ViewOrrery
	}
}

// refresh pushes the manager's current frame to every view.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	pos, ok := m.state.FollowPosition()
	m.orrery = m.orrery.SetFollowPosition(pos, ok).UpdateData(m.snapshot)
	m.bodies = m.bodies.UpdateData(m.snapshot)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrrery:
		m.orrery, cmd = m.orrery.Update(msg)
	case ViewBodies:
		m.bodies, cmd = m.bodies.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrrery:
		content = m.orrery.View()
	case ViewBodies:
		content = m.bodies.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("  LS-ORRERY v%s", version.Version)

	var b strings.Builder
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Scene-graph solar system"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Orrery", "[2] Bodies"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	status := accentStyle.Render(fmt.Sprintf("t=%.1fs", m.snapshot.Elapsed))
	if m.showStats {
		status += dimStyle.Render(fmt.Sprintf(" %.0f fps", m.snapshot.FPS))
	}

	// View-specific help hints
	var help string
	switch m.viewMode {
	case ViewBodies:
		help = "↑↓: select | enter: follow | </>: speed | space: pause | tab: switch view"
	default:
		help = "j/k: focus | f: follow | +/-: zoom | arrows: pan | z: scale | l: labels | t: stars | </>: speed | w/v: material | i/a/h: lights"
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
