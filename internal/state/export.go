package state

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/celestial"
)

// SnapshotExport is the JSON-serializable representation of one frame.
type SnapshotExport struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	Elapsed      float64      `json:"elapsed_seconds"`
	Speed        float64      `json:"speed"`
	Multiplier   float64      `json:"speed_multiplier"`
	MaterialMode string       `json:"material_mode"`
	Follow       string       `json:"follow,omitempty"`
	Lights       Lights       `json:"lights"`
	Bodies       []BodyExport `json:"bodies"`
}

// BodyExport is a JSON-friendly body with angles in degrees.
type BodyExport struct {
	Name         string     `json:"name"`
	Kind         string     `json:"kind"`
	Parent       string     `json:"parent,omitempty"`
	Position     [3]float64 `json:"position"`
	Distance     float64    `json:"distance"`
	OrbitDeg     float64    `json:"orbit_deg"`
	SpinDeg      float64    `json:"spin_deg"`
	AxialTiltDeg float64    `json:"axial_tilt_deg"`
	SpinAxis     [3]float64 `json:"spin_axis"`

	Textures *celestial.TextureRefs `json:"textures,omitempty"`
}

// ExportSnapshot converts a snapshot to its exportable form.
func ExportSnapshot(snap Snapshot, generatedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt:  generatedAt,
		Elapsed:      snap.Elapsed,
		Speed:        snap.Speed.Value(),
		Multiplier:   snap.Speed.Multiplier,
		MaterialMode: snap.MaterialMode.String(),
		Follow:       snap.Follow,
		Lights:       snap.Lights,
		Bodies:       make([]BodyExport, 0, len(snap.Bodies)),
	}
	for _, b := range snap.Bodies {
		var tex *celestial.TextureRefs
		if !b.Textures.Empty() {
			t := b.Textures
			tex = &t
		}
		export.Bodies = append(export.Bodies, BodyExport{
			Name:         b.Name,
			Kind:         b.Kind.String(),
			Parent:       b.Parent,
			Position:     [3]float64{b.World.X, b.World.Y, b.World.Z},
			Distance:     b.Distance(),
			OrbitDeg:     radToDeg(b.OrbitAngle),
			SpinDeg:      radToDeg(b.SpinAngle),
			AxialTiltDeg: radToDeg(b.Tilt),
			SpinAxis:     [3]float64{b.SpinAxis.X, b.SpinAxis.Y, b.SpinAxis.Z},
			Textures:     tex,
		})
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes a fixed-width text table of every body.
func WriteSummaryTable(w io.Writer, snap Snapshot) {
	fmt.Fprintf(w, "Orrery @ t=%.2fs  speed %.3f (x%.1f)\n",
		snap.Elapsed, snap.Speed.Value(), snap.Speed.Multiplier)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(snap.Bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-14s %-7s %-9s %10s %10s %10s %9s\n",
		"Body", "Kind", "Parent", "Orbit°", "Spin°", "Distance", "Tilt°")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, b := range snap.Bodies {
		name := strings.Repeat(" ", b.Depth) + b.Name
		fmt.Fprintf(w, "%-14s %-7s %-9s %10.1f %10.1f %10.2f %9.1f\n",
			truncateStr(name, 14),
			b.Kind,
			truncateStr(b.Parent, 9),
			wrapDeg(radToDeg(b.OrbitAngle)),
			wrapDeg(radToDeg(b.SpinAngle)),
			b.Distance(),
			radToDeg(b.Tilt),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(snap.Bodies))
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}

// wrapDeg folds an angle into [0, 360).
func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
