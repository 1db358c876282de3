package state

import "math"

// LightKind names one adjustable light.
type LightKind int

const (
	LightPoint LightKind = iota
	LightAmbient
	LightHemisphere
)

// String returns the light name.
func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightAmbient:
		return "ambient"
	case LightHemisphere:
		return "hemisphere"
	default:
		return "unknown"
	}
}

// Light ranges as offered by the control panel.
const (
	MaxPointIntensity      = 20000.0
	MaxAmbientIntensity    = 1.0
	MaxHemisphereIntensity = 1.0
)

// Lights holds the scene lighting. The point light sits on the sun.
type Lights struct {
	Point       float64 `json:"point" toml:"point"`
	Ambient     float64 `json:"ambient" toml:"ambient"`
	Hemisphere  float64 `json:"hemisphere" toml:"hemisphere"`
	SkyColor    string  `json:"sky_color" toml:"sky_color"`
	GroundColor string  `json:"ground_color" toml:"ground_color"`
}

// DefaultLights returns the stock sunlight setup.
func DefaultLights() Lights {
	return Lights{
		Point:       16000,
		Ambient:     0.1,
		Hemisphere:  0.3,
		SkyColor:    "#87ceeb",
		GroundColor: "#4b0082",
	}
}

// clamp limits v to [lo, hi]; NaN becomes def.
func clamp(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(lo, math.Min(hi, v))
}

// Clamped returns l with every intensity inside its range.
func (l Lights) Clamped() Lights {
	def := DefaultLights()
	l.Point = clamp(l.Point, 0, MaxPointIntensity, def.Point)
	l.Ambient = clamp(l.Ambient, 0, MaxAmbientIntensity, def.Ambient)
	l.Hemisphere = clamp(l.Hemisphere, 0, MaxHemisphereIntensity, def.Hemisphere)
	return l
}

// Adjusted returns l with one intensity moved by delta and clamped.
func (l Lights) Adjusted(kind LightKind, delta float64) Lights {
	switch kind {
	case LightPoint:
		l.Point += delta
	case LightAmbient:
		l.Ambient += delta
	case LightHemisphere:
		l.Hemisphere += delta
	}
	return l.Clamped()
}
