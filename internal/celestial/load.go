package celestial

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a body table file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the table format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", configErr("", "", ErrUnsupportedFormat, "cannot infer format of %q", path)
	}
}

// textureRecord and bodyRecord mirror the on-disk layout of a body table.
type textureRecord struct {
	Color     string `toml:"color" yaml:"color"`
	Bump      string `toml:"bump" yaml:"bump"`
	Normal    string `toml:"normal" yaml:"normal"`
	Metalness string `toml:"metalness" yaml:"metalness"`
}

type bodyRecord struct {
	Name                  string        `toml:"name" yaml:"name"`
	Kind                  string        `toml:"kind" yaml:"kind"`
	Radius                float64       `toml:"radius" yaml:"radius"`
	OrbitalDistance       float64       `toml:"orbital_distance" yaml:"orbital_distance"`
	OrbitalPeriodDivisor  float64       `toml:"orbital_period_divisor" yaml:"orbital_period_divisor"`
	RotationPeriodDivisor float64       `toml:"rotation_period_divisor" yaml:"rotation_period_divisor"`
	AxialTilt             float64       `toml:"axial_tilt" yaml:"axial_tilt"`
	Parent                string        `toml:"parent" yaml:"parent"`
	Textures              textureRecord `toml:"textures" yaml:"textures"`
	Emissive              string        `toml:"emissive" yaml:"emissive"`
	Color                 string        `toml:"color" yaml:"color"`
}

type tomlFile struct {
	Bodies []bodyRecord `toml:"body"`
}

type yamlFile struct {
	Bodies []bodyRecord `yaml:"bodies"`
}

func (r bodyRecord) descriptor() (Descriptor, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return Descriptor{}, configErr(r.Name, "Kind", ErrInvalidValue, "%v", err)
	}
	return Descriptor{
		Name:                  r.Name,
		Kind:                  kind,
		Radius:                r.Radius,
		OrbitalDistance:       r.OrbitalDistance,
		OrbitalPeriodDivisor:  r.OrbitalPeriodDivisor,
		RotationPeriodDivisor: r.RotationPeriodDivisor,
		AxialTilt:             r.AxialTilt,
		Parent:                r.Parent,
		Textures: TextureRefs{
			Color:     r.Textures.Color,
			Bump:      r.Textures.Bump,
			Normal:    r.Textures.Normal,
			Metalness: r.Textures.Metalness,
		},
		Emissive: r.Emissive,
		Color:    r.Color,
	}, nil
}

// DecodeTable reads a body table in the given format and validates it.
func DecodeTable(r io.Reader, format Format) (*Table, error) {
	var records []bodyRecord
	switch format {
	case FormatTOML:
		var f tomlFile
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode toml body table: %w", err)
		}
		records = f.Bodies
	case FormatYAML:
		var f yamlFile
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml body table: %w", err)
		}
		records = f.Bodies
	default:
		return nil, configErr("", "", ErrUnsupportedFormat, "format %q", format)
	}

	descs := make([]Descriptor, 0, len(records))
	for _, rec := range records {
		d, err := rec.descriptor()
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return NewTable(descs...)
}

// LoadTable reads and validates a body table file. The format follows the
// file extension.
func LoadTable(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open body table: %w", err)
	}
	defer f.Close()
	return DecodeTable(f, format)
}
