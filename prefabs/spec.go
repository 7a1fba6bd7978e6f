package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MixerSpec describes the output buses and the snapshots the scene blends
// between.
type MixerSpec struct {
	SampleRate int                     `yaml:"sample_rate"`
	Groups     []MixerGroupSpec        `yaml:"groups"`
	Snapshots  map[string]SnapshotSpec `yaml:"snapshots"`
	Initial    string                  `yaml:"initial"`
	Params     map[string]float64      `yaml:"params"`
}

type MixerGroupSpec struct {
	Name string `yaml:"name"`
	// Cutoff names a mixer parameter driving this group's low-pass filter.
	Cutoff string `yaml:"cutoff"`
}

// SnapshotSpec maps group names to linear gains.
type SnapshotSpec struct {
	Gains map[string]float64 `yaml:"gains"`
}

func LoadMixerSpec() (*MixerSpec, error) {
	spec, err := LoadSpec[MixerSpec]("mixer.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the color back as #rrggbbaa so decoded component
// maps survive a DecodeComponentSpec round trip.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
