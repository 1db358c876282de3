package ui

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// hemiWeight scales how much the hemisphere light contributes to a body's
// brightness and tint.
const hemiWeight = 0.5

// shade returns the hex colour of a body's glyph under the scene lights.
func shade(b state.BodyState, l state.Lights, mode scene.MaterialMode) string {
	base := bodyColor(b)

	switch mode {
	case scene.MaterialWireframe:
		return base.Hex()
	case scene.MaterialNormals:
		return normalColor(b.World).Hex()
	}

	// Hemisphere light tints toward the sky/ground blend.
	if sky, err := colorful.Hex(l.SkyColor); err == nil {
		if ground, err := colorful.Hex(l.GroundColor); err == nil {
			tint := ground.BlendLab(sky, 0.5)
			base = base.BlendLab(tint, l.Hemisphere*hemiWeight*0.5)
		}
	}

	lit := l.Ambient + l.Hemisphere*hemiWeight + directLight(b, l.Point)
	lit = math.Max(0, math.Min(1, lit))
	c := colorful.Color{}.BlendLab(base, lit)

	if b.Emissive != "" {
		if e, err := colorful.Hex(b.Emissive); err == nil {
			c = colorful.Color{R: c.R + e.R, G: c.G + e.G, B: c.B + e.B}.Clamped()
		}
	}
	return c.Hex()
}

// directLight is the point light's contribution at the body, falling off
// with the square of its distance from the origin.
func directLight(b state.BodyState, intensity float64) float64 {
	d := b.Distance()
	if d <= b.Radius {
		return math.Min(1, intensity)
	}
	return math.Min(1, intensity/(d*d))
}

// bodyColor parses the body's colour. Bodies without one get a stable hue
// derived from their name.
func bodyColor(b state.BodyState) colorful.Color {
	if c, err := colorful.Hex(b.Color); err == nil {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(b.Name))
	return colorful.Hcl(float64(h.Sum32()%360), 0.4, 0.7).Clamped()
}

// normalColor maps a direction onto RGB the way normal materials do.
func normalColor(v scene.Vec3) colorful.Color {
	n := v.Norm()
	if n == 0 {
		v, n = scene.Vec3{Y: 1}, 1
	}
	return colorful.Color{
		R: (v.X/n + 1) / 2,
		G: (v.Y/n + 1) / 2,
		B: (v.Z/n + 1) / 2,
	}
}

// starColor dims background stars by depth.
func starColor(depth float64) string {
	near := colorful.Color{R: 0.55, G: 0.55, B: 0.6}
	far := colorful.Color{R: 0.18, G: 0.18, B: 0.22}
	return far.BlendLab(near, (depth-0.02)/0.08).Clamped().Hex()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue, purple, magenta, then pink.
func gradientColor(col, width int) string {
	stops := []colorful.Color{
		{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
		{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
		{R: 217.0 / 255, G: 70.0 / 255, B: 239.0 / 255},
		{R: 236.0 / 255, G: 72.0 / 255, B: 153.0 / 255},
	}
	if width <= 1 {
		return stops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(stops)-1)
	i := min(int(t), len(stops)-2)
	return stops[i].BlendLab(stops[i+1], t-float64(i)).Clamped().Hex()
}
