package starmap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a plot by name or by number
func (p *Plot) UnmarshalYAML(value *yaml.Node) error {
	if n, err := strconv.ParseUint(value.Value, 10, 8); err == nil {
		if Plot(n) >= NumPlots {
			return fmt.Errorf("line %d: plot %d out of range", value.Line, n)
		}
		*p = Plot(n)
		return nil
	}
	parsed, err := ParsePlot(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

func (p Plot) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

var (
	sizeNames  = []string{"dwarf", "giant", "supergiant"}
	colorNames = []string{"blue", "green", "orange", "red", "white", "yellow"}
)

func indexOf(names []string, s string) (uint8, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return uint8(i), true
		}
	}
	return 0, false
}

type catalogStar struct {
	X       int32  `yaml:"x"`
	Y       int32  `yaml:"y"`
	Size    string `yaml:"size"`
	Color   string `yaml:"color"`
	Prefix  uint8  `yaml:"prefix"`
	Postfix uint8  `yaml:"postfix"`
	Plot    *Plot  `yaml:"plot,omitempty"`
}

type catalogFile struct {
	Stars []catalogStar `yaml:"stars"`
}

type constraintFile struct {
	// Replace drops the built-in constraints instead of adding to them
	Replace     bool             `yaml:"replace"`
	Constraints []PlotConstraint `yaml:"constraints"`
}

// ParseCatalog reads a star catalog. Every plot but the rift must be
// hosted by exactly one star.
func ParseCatalog(data []byte) ([]Star, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cf.Stars) == 0 {
		return nil, fmt.Errorf("catalog has no stars")
	}

	var hosted [NumPlots]bool
	stars := make([]Star, 0, len(cf.Stars))
	for i, cs := range cf.Stars {
		if cs.X < 0 || cs.X > MaxX || cs.Y < 0 || cs.Y > MaxY {
			return nil, fmt.Errorf("star %d at (%d,%d) is off the map", i, cs.X, cs.Y)
		}
		size, ok := indexOf(sizeNames, cs.Size)
		if !ok {
			return nil, fmt.Errorf("star %d: unknown size %q", i, cs.Size)
		}
		color, ok := indexOf(colorNames, cs.Color)
		if !ok {
			return nil, fmt.Errorf("star %d: unknown color %q", i, cs.Color)
		}
		s := Star{
			Point:   Point{X: cs.X, Y: cs.Y},
			Type:    MakeStar(size, color, 0),
			Prefix:  cs.Prefix,
			Postfix: cs.Postfix,
		}
		if cs.Plot != nil {
			p := *cs.Plot
			if p == Arilou {
				return nil, fmt.Errorf("star %d: %s cannot sit on a star", i, p)
			}
			if hosted[p] {
				return nil, fmt.Errorf("star %d: %s is hosted twice", i, p)
			}
			hosted[p] = true
			s.Index = p
		}
		stars = append(stars, s)
	}
	for p := Sol; p < NumPlots; p++ {
		if !hosted[p] {
			return nil, fmt.Errorf("catalog does not host %s", p)
		}
	}
	return stars, nil
}

// ParseConstraints reads constraint overrides and merges them onto the
// built-in graph.
func ParseConstraints(data []byte) ([]PlotConstraint, error) {
	var cf constraintFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse constraints: %w", err)
	}
	for i, c := range cf.Constraints {
		if c.A == c.B {
			return nil, fmt.Errorf("constraint %d ties %s to itself", i, c.A)
		}
		if c.Max != 0 && c.Max < c.Min {
			return nil, fmt.Errorf("constraint %d: %s-%s max %d below min %d", i, c.A, c.B, c.Max, c.Min)
		}
	}
	if cf.Replace {
		return cf.Constraints, nil
	}
	return append(DefaultConstraints(), cf.Constraints...), nil
}

// LoadCatalog reads a catalog file, or returns the reference catalog when
// path is empty
func LoadCatalog(path string) ([]Star, error) {
	if path == "" {
		return DefaultStarmap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

func LoadConstraints(path string) ([]PlotConstraint, error) {
	if path == "" {
		return DefaultConstraints(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConstraints(data)
}

// MarshalCatalog writes stars in the format ParseCatalog reads
func MarshalCatalog(stars []Star) ([]byte, error) {
	cf := catalogFile{Stars: make([]catalogStar, len(stars))}
	for i, s := range stars {
		cs := catalogStar{
			X:       s.X,
			Y:       s.Y,
			Size:    sizeNames[min(int(s.Size()), len(sizeNames)-1)],
			Color:   colorNames[min(int(s.Color()), len(colorNames)-1)],
			Prefix:  s.Prefix,
			Postfix: s.Postfix,
		}
		if s.HasPlot() {
			p := s.Index
			cs.Plot = &p
		}
		cf.Stars[i] = cs
	}
	return yaml.Marshal(&cf)
}
