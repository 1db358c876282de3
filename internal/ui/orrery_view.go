package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// ScaleMode defines how orbital distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLog compresses each orbit radius to log10(r + 1).
	ScaleLog ScaleMode = iota
	// ScaleLinear keeps scene distances as they are.
	ScaleLinear
)

func (s ScaleMode) String() string {
	if s == ScaleLinear {
		return "Linear"
	}
	return "Log"
}

func (s ScaleMode) radial(r float64) float64 {
	if s == ScaleLinear {
		return r
	}
	return math.Log10(r + 1)
}

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Focused and followed bodies
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelAll:
		return "all"
	default:
		return "focus"
	}
}

// FollowMsg asks the root model to change the camera target. An empty
// Name frees the camera.
type FollowMsg struct {
	Name string
	Open bool // Switch to the orrery view as well
}

func followCmd(name string, open bool) tea.Cmd {
	return func() tea.Msg {
		return FollowMsg{Name: name, Open: open}
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0, 20.0}

const (
	defaultZoom = 3 // Index of 1.0 in zoomLevels
	hudLines    = 4
	aspect      = 0.5 // Terminal cells are about twice as tall as wide

	// Follow camera spring: critically damped, settles in about a second.
	springFrequency = 6.0
	springDamping   = 1.0

	starCount = 90
)

// point is a position on the display plane, before zoom is applied.
type point struct {
	X, Y float64
}

func (p point) norm() float64 {
	return math.Hypot(p.X, p.Y)
}

type star struct {
	u, v  float64 // Screen fractions
	depth float64 // Parallax factor
	glyph rune
}

// OrreryModel renders a top-down view of the scene graph on the X/Z plane.
type OrreryModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	proj     map[string]point
	extent   float64

	// View state
	focusIdx  int // Index into snapshot bodies
	zoomLevel int
	scaleMode ScaleMode
	labelMode LabelMode
	showStars bool
	showStats bool

	// Camera center in display units, eased by the spring while following.
	camX, camY float64
	velX, velY float64
	spring     harmonica.Spring

	// World position of the followed body
	followPos    scene.Vec3
	hasFollowPos bool

	stars []star
}

// NewOrreryModel creates an orrery view whose follow camera is stepped fps
// times a second.
func NewOrreryModel(fps int) OrreryModel {
	if fps <= 0 {
		fps = 30
	}
	return OrreryModel{
		zoomLevel: defaultZoom,
		scaleMode: ScaleLog,
		labelMode: LabelFocused,
		showStars: true,
		extent:    1,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		stars:     newStarfield(starCount),
	}
}

// newStarfield scatters a fixed background. The seed is constant so the sky
// does not change between runs.
func newStarfield(n int) []star {
	r := rand.New(rand.NewPCG(0x6f72, 0x7279))
	glyphs := []rune{'·', '·', '·', '˙', '∗'}
	stars := make([]star, n)
	for i := range stars {
		stars[i] = star{
			u:     r.Float64(),
			v:     r.Float64(),
			depth: 0.02 + 0.08*r.Float64(),
			glyph: glyphs[r.IntN(len(glyphs))],
		}
	}
	return stars
}

func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// SetShowStats toggles the frame statistics line in the HUD.
func (m OrreryModel) SetShowStats(show bool) OrreryModel {
	m.showStats = show
	return m
}

// UpdateData takes the frame's snapshot and steps the follow camera toward
// its target.
func (m OrreryModel) UpdateData(snap state.Snapshot) OrreryModel {
	m.snapshot = snap
	m.reproject()

	if m.focusIdx >= len(snap.Bodies) {
		m.focusIdx = 0
	}

	if snap.Follow != "" {
		if target, ok := m.proj[snap.Follow]; ok {
			m.camX, m.velX = m.spring.Update(m.camX, m.velX, target.X)
			m.camY, m.velY = m.spring.Update(m.camY, m.velY, target.Y)
		}
	}
	return m
}

func (m *OrreryModel) reproject() {
	m.proj = projectBodies(m.snapshot.Bodies, m.scaleMode)
	m.extent = extentOf(m.proj)
}

// projectBodies lays bodies out on the X/Z plane. Each body is placed
// relative to its parent so moons stay visible around their planet when the
// scale compresses distance. Bodies must be in hierarchy order.
func projectBodies(bodies []state.BodyState, mode ScaleMode) map[string]point {
	world := make(map[string]scene.Vec3, len(bodies))
	out := make(map[string]point, len(bodies))

	for _, b := range bodies {
		world[b.Name] = b.World

		var origin point
		local := b.World
		if b.Parent != "" {
			origin = out[b.Parent]
			local = b.World.Sub(world[b.Parent])
		}

		r := math.Hypot(local.X, local.Z)
		if r == 0 {
			out[b.Name] = origin
			continue
		}
		d := mode.radial(r)
		out[b.Name] = point{
			X: origin.X + local.X/r*d,
			Y: origin.Y + local.Z/r*d,
		}
	}
	return out
}

func extentOf(proj map[string]point) float64 {
	extent := 0.0
	for _, p := range proj {
		extent = math.Max(extent, p.norm())
	}
	if extent == 0 {
		return 1
	}
	return extent
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	following := m.snapshot.Follow != ""
	var cmd tea.Cmd
	pan := func(dx, dy float64) {
		step := 0.1 * m.extent / m.scale()
		m.camX += dx * step
		m.camY += dy * step
		m.velX, m.velY = 0, 0
		// Manual camera control releases the follow target
		if following {
			cmd = followCmd("", false)
		}
	}

	switch keyMsg.String() {
	// Focus navigation
	case "j", "[":
		m.focusPrev()
	case "k", "]":
		m.focusNext()

	// Viewport panning
	case "up":
		pan(0, -1)
	case "down":
		pan(0, 1)
	case "left":
		pan(-1, 0)
	case "right":
		pan(1, 0)
	case "c":
		pan(0, 0)
		m.camX, m.camY = 0, 0

	// Follow the focused body, or release it
	case "f":
		name := m.focusedName()
		if name == "" {
			break
		}
		if m.snapshot.Follow == name {
			cmd = followCmd("", false)
		} else {
			cmd = followCmd(name, false)
		}

	// Zoom (discrete levels)
	case "+", "=":
		if m.zoomLevel < len(zoomLevels)-1 {
			m.zoomLevel++
		}
	case "-":
		if m.zoomLevel > 0 {
			m.zoomLevel--
		}
	case "0":
		m.zoomLevel = defaultZoom

	case "z":
		m.scaleMode = (m.scaleMode + 1) % 2
		m.reproject()
		if !following {
			m.centerOnFocused()
		}

	case "l":
		m.labelMode = (m.labelMode + 1) % 3
	case "t":
		m.showStars = !m.showStars

	// Reset view
	case "r":
		m.zoomLevel = defaultZoom
		pan(0, 0)
		m.camX, m.camY = 0, 0
	}
	return m, cmd
}

func (m *OrreryModel) focusNext() {
	n := len(m.snapshot.Bodies)
	if n == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + 1) % n
	if m.snapshot.Follow == "" {
		m.centerOnFocused()
	}
}

func (m *OrreryModel) focusPrev() {
	n := len(m.snapshot.Bodies)
	if n == 0 {
		return
	}
	m.focusIdx = (m.focusIdx - 1 + n) % n
	if m.snapshot.Follow == "" {
		m.centerOnFocused()
	}
}

// centerOnFocused snaps the free camera onto the focused body.
func (m *OrreryModel) centerOnFocused() {
	p, ok := m.proj[m.focusedName()]
	if !ok {
		return
	}
	m.camX, m.camY = p.X, p.Y
	m.velX, m.velY = 0, 0
}

func (m OrreryModel) focusedName() string {
	if b := m.FocusedBody(); b != nil {
		return b.Name
	}
	return ""
}

// FocusedBody returns the focused body, or nil before the first frame.
func (m OrreryModel) FocusedBody() *state.BodyState {
	if m.focusIdx >= 0 && m.focusIdx < len(m.snapshot.Bodies) {
		return &m.snapshot.Bodies[m.focusIdx]
	}
	return nil
}

// SetFocus focuses the named body.
func (m *OrreryModel) SetFocus(name string) {
	for i, b := range m.snapshot.Bodies {
		if b.Name == name {
			m.focusIdx = i
			return
		}
	}
}

// SetFollowPosition records the followed body's world position for the HUD.
func (m OrreryModel) SetFollowPosition(pos scene.Vec3, ok bool) OrreryModel {
	m.followPos, m.hasFollowPos = pos, ok
	return m
}

// View renders the orrery view.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

type cell struct {
	ch   rune
	fg   string
	bold bool
	bg   bool // Stars and rings, which labels may cover
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{ch: ' '}
		}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) empty(x, y int) bool {
	return c.inside(x, y) && c.cells[y][x].ch == ' '
}

func (c *canvas) set(x, y int, cl cell) {
	if c.inside(x, y) {
		c.cells[y][x] = cl
	}
}

const (
	ringColor  = "#3a3a4a"
	labelColor = "#b3b3b3"
	focusColor = "#fff3b0"
)

// displayScale converts display units to terminal columns.
func (m OrreryModel) displayScale(cx, cy int) float64 {
	maxDisplayR := float64(min(cx, cy*2)) * 0.9
	return maxDisplayR / m.extent * m.scale()
}

func (m OrreryModel) buildCanvas() string {
	canvasH := max(m.height-hudLines, 5)
	canvasW := m.width
	c := newCanvas(canvasW, canvasH)

	cx, cy := canvasW/2, canvasH/2
	ds := m.displayScale(cx, cy)
	toScreen := func(p point) (float64, float64) {
		return float64(cx) + (p.X-m.camX)*ds, float64(cy) + (p.Y-m.camY)*ds*aspect
	}

	if m.showStars {
		m.drawStarfield(c, ds)
	}
	m.drawOrbitRings(c, toScreen, ds)

	// Deepest bodies first so planets sit on top of their moons and the
	// focused body on top of everything.
	order := make([]int, len(m.snapshot.Bodies))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ba, bb := m.snapshot.Bodies[order[a]], m.snapshot.Bodies[order[b]]
		if (order[a] == m.focusIdx) != (order[b] == m.focusIdx) {
			return order[b] == m.focusIdx
		}
		return ba.Depth > bb.Depth
	})

	var labels []bodyPos
	for _, i := range order {
		b := m.snapshot.Bodies[i]
		fx, fy := toScreen(m.proj[b.Name])
		sx, sy := int(math.Round(fx)), int(math.Round(fy))
		if !c.inside(sx, sy) {
			continue
		}

		focused := i == m.focusIdx
		fg := shade(b, m.snapshot.Lights, m.snapshot.MaterialMode)
		c.set(sx, sy, cell{ch: bodyGlyph(b.Kind, m.snapshot.MaterialMode), fg: fg, bold: focused})

		labels = append(labels, bodyPos{
			x:         sx,
			y:         sy,
			name:      b.Name,
			isFocused: focused,
			followed:  b.Name == m.snapshot.Follow,
		})
	}

	m.renderLabels(c, labels)
	return renderCanvas(c)
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	isFocused bool
	followed  bool
}

// drawStarfield draws the fixed background, shifted slightly against camera
// movement.
func (m OrreryModel) drawStarfield(c *canvas, ds float64) {
	for _, s := range m.stars {
		x := int(s.u*float64(c.w) - m.camX*ds*s.depth)
		y := int(s.v*float64(c.h) - m.camY*ds*aspect*s.depth)
		x = ((x % c.w) + c.w) % c.w
		y = ((y % c.h) + c.h) % c.h
		if c.empty(x, y) {
			c.set(x, y, cell{ch: s.glyph, fg: starColor(s.depth), bg: true})
		}
	}
}

// drawOrbitRings traces each body's orbit around its parent. Rings too small
// to read are skipped.
func (m OrreryModel) drawOrbitRings(c *canvas, toScreen func(point) (float64, float64), ds float64) {
	for _, b := range m.snapshot.Bodies {
		if b.Parent == "" {
			continue
		}
		center := m.proj[b.Parent]
		p := m.proj[b.Name]
		r := point{X: p.X - center.X, Y: p.Y - center.Y}.norm()
		ccx, ccy := toScreen(center)
		drawCircle(c, ccx, ccy, r*ds)
	}
}

func drawCircle(c *canvas, cx, cy, r float64) {
	if r < 2 {
		return
	}

	steps := int(2 * math.Pi * r)
	steps = max(steps, 8)
	steps = min(steps, 720)

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + r*math.Cos(theta)))
		y := int(math.Round(cy + r*math.Sin(theta)*aspect))
		if c.empty(x, y) {
			c.set(x, y, cell{ch: '·', fg: ringColor, bg: true})
		}
	}
}

// renderLabels writes body names to the right of their glyphs.
func (m OrreryModel) renderLabels(c *canvas, positions []bodyPos) {
	if m.labelMode == LabelNone {
		return
	}

	for _, pos := range positions {
		show := m.labelMode == LabelAll || pos.isFocused || pos.followed
		if !show {
			continue
		}

		text := pos.name
		fg := labelColor
		if pos.isFocused {
			text = "◄ " + pos.name
			fg = focusColor
		}
		if pos.followed {
			text += " ⌖"
		}

		x := pos.x + 2
		for _, r := range text {
			if x >= c.w {
				break
			}
			if c.inside(x, pos.y) && (c.cells[pos.y][x].ch == ' ' || c.cells[pos.y][x].bg) {
				c.set(x, pos.y, cell{ch: r, fg: fg, bold: pos.isFocused})
			}
			x++
		}
	}
}

func bodyGlyph(kind celestial.Kind, mode scene.MaterialMode) rune {
	glyphs := map[scene.MaterialMode][3]rune{
		scene.MaterialStandard:  {'☉', '●', '•'},
		scene.MaterialWireframe: {'◎', '○', '∘'},
		scene.MaterialNormals:   {'◍', '◐', '◦'},
	}
	set, ok := glyphs[mode]
	if !ok {
		set = glyphs[scene.MaterialStandard]
	}
	switch kind {
	case celestial.KindStar:
		return set[0]
	case celestial.KindPlanet:
		return set[1]
	default:
		return set[2]
	}
}

func renderCanvas(c *canvas) string {
	styles := make(map[cell]lipgloss.Style)
	var b strings.Builder

	for _, row := range c.cells {
		for _, cl := range row {
			if cl.ch == ' ' {
				b.WriteRune(' ')
				continue
			}
			key := cell{fg: cl.fg, bold: cl.bold}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(cl.fg)).Bold(cl.bold)
				styles[key] = style
			}
			b.WriteString(style.Render(string(cl.ch)))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pauseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(label + " "))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("  ")
	}

	snap := m.snapshot

	// Focused body
	if focused := m.FocusedBody(); focused != nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("◆ %s", focused.Name)))
		b.WriteString("  ")
		field("Kind:", focused.Kind.String())
		if focused.Parent != "" {
			field("Parent:", focused.Parent)
		}
		field("Dist:", fmt.Sprintf("%.1f", focused.Distance()))
		field("Orbit:", fmt.Sprintf("%.1f°", angleDeg(focused.OrbitAngle)))
		field("Spin:", fmt.Sprintf("%.1f°", angleDeg(focused.SpinAngle)))
		field("Tilt:", fmt.Sprintf("%.1f°", focused.Tilt*180/math.Pi))
	} else {
		b.WriteString(dimStyle.Render("No bodies"))
	}
	b.WriteString("\n")

	// Speed and view state
	field("Speed:", fmt.Sprintf("%.2f (×%.1f)", snap.Speed.Value(), snap.Speed.Multiplier))
	if snap.Paused {
		b.WriteString(pauseStyle.Render("PAUSED"))
		b.WriteString("  ")
	}
	field("Mode:", m.scaleMode.String())
	field("Zoom:", fmt.Sprintf("%.2gx", m.scale()))
	field("Labels:", m.labelMode.String())
	field("Stars:", onOff(m.showStars))
	field("Material:", snap.MaterialMode.String())
	follow := snap.Follow
	switch {
	case follow == "":
		follow = "free"
	case m.hasFollowPos:
		follow += fmt.Sprintf(" @ (%.1f, %.1f, %.1f)", m.followPos.X, m.followPos.Y, m.followPos.Z)
	}
	field("Camera:", follow)
	b.WriteString("\n")

	// Lights, then frame stats when enabled
	field("Point:", fmt.Sprintf("%.0f", snap.Lights.Point))
	field("Ambient:", fmt.Sprintf("%.2f", snap.Lights.Ambient))
	field("Hemi:", fmt.Sprintf("%.2f", snap.Lights.Hemisphere))
	if m.showStats {
		field("FPS:", fmt.Sprintf("%.1f", snap.FPS))
		field("Frame:", snap.FrameTime.String())
		field("Frames:", fmt.Sprintf("%d", snap.Frames))
	}

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// angleDeg converts radians to degrees in [0, 360).
func angleDeg(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}
