// Package celestial holds the static body descriptor table of the orrery.
package celestial

import "fmt"

// Kind categorizes a celestial body.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindMoon
)

// String returns the body kind name.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as written in body table files.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "star", "Star", "STAR":
		return KindStar, nil
	case "planet", "Planet", "PLANET":
		return KindPlanet, nil
	case "moon", "Moon", "MOON":
		return KindMoon, nil
	default:
		return 0, fmt.Errorf("unknown body kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TextureRefs names the surface maps of a body. The names are opaque asset
// references handed to whatever draws the body.
type TextureRefs struct {
	Color     string `json:"color,omitempty"`
	Bump      string `json:"bump,omitempty"`
	Normal    string `json:"normal,omitempty"`
	Metalness string `json:"metalness,omitempty"`
}

// Empty reports whether no texture is set.
func (t TextureRefs) Empty() bool {
	return t == TextureRefs{}
}

// Descriptor is the static record for one sun, planet or moon.
//
// Angles derived from the divisors are elapsed * speed / divisor, so a
// negative divisor runs the motion backwards (retrograde).
type Descriptor struct {
	Name                  string
	Kind                  Kind
	Radius                float64     // Visual sphere radius
	OrbitalDistance       float64     // Signed offset from the parent along +X
	OrbitalPeriodDivisor  float64     // Orbit pivot divisor, negative = retrograde
	RotationPeriodDivisor float64     // Self-rotation divisor, negative = retrograde
	AxialTilt             float64     // Degrees, applied once around X
	Parent                string      // Parent body name, empty for a root
	Textures              TextureRefs // Opaque asset names
	Emissive              string      // Emissive hex colour, empty for none
	Color                 string      // Display colour (hex)
}

// IsRoot reports whether the body has no parent.
func (d Descriptor) IsRoot() bool {
	return d.Parent == ""
}
