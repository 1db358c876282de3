package celestial

// Divisors are hand-tuned for visual pacing, not derived from real periods.
// Earth's orbit and spin are the unit; the moon divisor is shared by every
// moon. Signs on moon distances are curated per body so siblings start on
// opposite sides of their planet.
const (
	moonDivisor = 0.0748
	sunRadius   = 10
)

var (
	sun = Descriptor{
		Name:                  "Sun",
		Kind:                  KindStar,
		Radius:                sunRadius,
		RotationPeriodDivisor: 25.38,
		Color:                 "#fdb813",
		Emissive:              "#ff6b00",
	}

	mercury = planet("Mercury", 0.38, 25, 0.24, 0.01, 0.034, "#b5b5b5",
		TextureRefs{Color: "textures/2k_mercury.jpg"})
	venus = planet("Venus", 0.95, 40, 0.62, -0.01, 177.4, "#e8cda2",
		TextureRefs{Color: "textures/2k_venus_atmosphere.jpg"})
	earth = planet("Earth", 1, 55, 1, 1, 23.5, "#2e86ab",
		TextureRefs{
			Color:     "textures/2k_earth_daymap.jpg",
			Bump:      "textures/8081_earthbump4k.jpg",
			Metalness: "textures/8081_earthspec4k.jpg",
		})
	mars = planet("Mars", 0.53, 70, 1.88, 1.03, 25.2, "#c1440e",
		TextureRefs{Color: "textures/2k_mars.jpg"})
	jupiter = withEmissive(planet("Jupiter", 3.5, 100, 11.86, 0.41, 3.1, "#d8ca9d",
		TextureRefs{Color: "textures/2k_jupiter.jpg"}), "#1a1a1a")
	saturn = planet("Saturn", 3, 130, 29.46, 0.43, 26.7, "#e3c16f",
		TextureRefs{Color: "textures/2k_saturn.jpg"})
	uranus = planet("Uranus", 1.25, 160, 84.01, 0.72, 97.8, "#a6e1e6",
		TextureRefs{Color: "textures/2k_uranus.jpg"})
	neptune = planet("Neptune", 1.2, 190, 164.8, 0.67, 28.3, "#4b70dd",
		TextureRefs{Color: "textures/2k_neptune.jpg"})
)

func planet(name string, radius, distance, orbit, spin, tilt float64, color string, tex TextureRefs) Descriptor {
	return Descriptor{
		Name:                  name,
		Kind:                  KindPlanet,
		Radius:                radius,
		OrbitalDistance:       distance,
		OrbitalPeriodDivisor:  orbit,
		RotationPeriodDivisor: spin,
		AxialTilt:             tilt,
		Parent:                sun.Name,
		Textures:              tex,
		Color:                 color,
	}
}

func withEmissive(d Descriptor, emissive string) Descriptor {
	d.Emissive = emissive
	return d
}

// moon sizes a moon relative to its planet and places it gap units beyond
// the planet's surface, on the side given by sign.
func moon(name string, parent Descriptor, sizeFactor, gap, sign float64, texture string) Descriptor {
	return Descriptor{
		Name:                  name,
		Kind:                  KindMoon,
		Radius:                parent.Radius * sizeFactor,
		OrbitalDistance:       sign * (parent.Radius + gap),
		OrbitalPeriodDivisor:  moonDivisor,
		RotationPeriodDivisor: moonDivisor,
		Parent:                parent.Name,
		Textures:              TextureRefs{Color: texture},
		Color:                 "#c8c8c8",
	}
}

func retrogradeOrbit(d Descriptor) Descriptor {
	d.OrbitalPeriodDivisor = -d.OrbitalPeriodDivisor
	return d
}

func retrogradeSpin(d Descriptor) Descriptor {
	d.RotationPeriodDivisor = -d.RotationPeriodDivisor
	return d
}

// DefaultDescriptors returns the built-in sun, planets and moons.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		sun,
		mercury, venus, earth, mars, jupiter, saturn, uranus, neptune,

		moon("Luna", earth, 0.273, 1.5, +1, "textures/2k_moon.jpg"),
		moon("Phobos", mars, 0.209, 1.67, +1, "textures/phobos.jpg"),
		moon("Deimos", mars, 0.423, 1.97, -1, "textures/deimos.jpg"),
		moon("Io", jupiter, 0.058, 3, +1, "textures/io.jpg"),
		moon("Europa", jupiter, 0.036, 3.5, -1, "textures/europa.jpg"),
		moon("Ganymede", jupiter, 0.026, 0.8, -1, "textures/ganymede.jpg"),
		moon("Callisto", jupiter, 0.021, 0.5, +1, "textures/callisto.jpg"),
		moon("Titan", saturn, 0.128, 4, +1, "textures/titan.jpg"),
		moon("Rhea", saturn, 0.067, 4.5, -1, "textures/rhea.jpg"),
		moon("Titania", uranus, 0.16, 5, +1, "textures/titania.jpg"),
		moon("Oberon", uranus, 0.08, 5.5, -1, "textures/oberon.jpg"),
		retrogradeSpin(moon("Triton", neptune, 0.45, 9, +1, "textures/triton.jpg")),
		retrogradeOrbit(moon("Proteus", neptune, 0.17, 3, -1, "textures/triton.jpg")),
	}
}

// DefaultTable returns the built-in table. It panics if the built-in data is
// inconsistent, which the package tests rule out.
func DefaultTable() *Table {
	t, err := NewTable(DefaultDescriptors()...)
	if err != nil {
		panic(err)
	}
	return t
}
