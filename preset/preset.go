// Package preset holds the named difficulty configurations mazes are built from.
package preset

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultCellSize = 1.0
)

// Preset errors.
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidConfig     = errors.New("invalid maze configuration")
)

// Config is the immutable parameter set for one difficulty tier.
type Config struct {
	Name   string `yaml:"name" json:"name"`
	Width  int    `yaml:"width" json:"nx"`  // Number of columns (nx)
	Height int    `yaml:"height" json:"nz"` // Number of rows (nz)

	// ExtraOpenRatio is the number of extra walls opened per cell; higher means more loops.
	ExtraOpenRatio float64 `yaml:"extraOpenRatio" json:"extraOpenRatio"`
	// TrapDensity is the fraction of off-path cells turned into traps.
	TrapDensity float64 `yaml:"trapDensity" json:"trapDensity"`
	// CellSize is a rendering scale, opaque to generation.
	CellSize float64 `yaml:"cellSize" json:"cellSize"`
}

// Validate checks the ranges generation relies on.
func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidConfig)
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: %s has size %dx%d", ErrInvalidConfig, c.Name, c.Width, c.Height)
	case c.ExtraOpenRatio < 0 || c.ExtraOpenRatio >= 1:
		return fmt.Errorf("%w: %s extra open ratio %v not in [0,1)", ErrInvalidConfig, c.Name, c.ExtraOpenRatio)
	case c.TrapDensity < 0 || c.TrapDensity > 1:
		return fmt.Errorf("%w: %s trap density %v not in [0,1]", ErrInvalidConfig, c.Name, c.TrapDensity)
	case c.CellSize < 0:
		return fmt.Errorf("%w: %s cell size %v is negative", ErrInvalidConfig, c.Name, c.CellSize)
	}
	return nil
}

// WithDefaults fills the fields whose zero value means "use the default".
func (c Config) WithDefaults() Config {
	if c.CellSize == 0 {
		c.CellSize = defaultCellSize
	}
	return c
}

// Registry maps difficulty names to configurations. It is never mutated
// after construction; Merge returns a new Registry.
type Registry struct {
	configs map[string]Config
}

// NewRegistry validates configs and indexes them by name.
func NewRegistry(configs ...Config) (*Registry, error) {
	r := &Registry{configs: make(map[string]Config, len(configs))}
	for _, c := range configs {
		c = c.WithDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		r.configs[c.Name] = c
	}
	return r, nil
}

// Defaults returns the built-in easy, medium and hard tiers.
func Defaults() *Registry {
	r, _ := NewRegistry(
		Config{Name: "easy", Width: 12, Height: 12, ExtraOpenRatio: 0.02, TrapDensity: 0.00, CellSize: 1.0},
		Config{Name: "medium", Width: 20, Height: 20, ExtraOpenRatio: 0.05, TrapDensity: 0.03, CellSize: 1.0},
		Config{Name: "hard", Width: 28, Height: 28, ExtraOpenRatio: 0.10, TrapDensity: 0.06, CellSize: 1.0},
	)
	return r
}

// Lookup resolves a difficulty name.
func (r *Registry) Lookup(name string) (Config, error) {
	c, ok := r.configs[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q, should be one of [%s]", ErrUnknownDifficulty, name, strings.Join(r.Names(), ", "))
	}
	return c, nil
}

// Names returns the known difficulty names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.configs))
}

// All returns every configuration ordered by name.
func (r *Registry) All() []Config {
	all := make([]Config, 0, len(r.configs))
	for _, name := range r.Names() {
		all = append(all, r.configs[name])
	}
	return all
}

// Merge returns a registry holding r's presets overridden by other's.
func (r *Registry) Merge(other *Registry) *Registry {
	merged := &Registry{configs: maps.Clone(r.configs)}
	maps.Copy(merged.configs, other.configs)
	return merged
}

// file is the on-disk preset layout.
type file struct {
	Presets []Config `yaml:"presets"`
}

// Parse decodes a YAML preset document.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return NewRegistry(f.Presets...)
}

// LoadFile reads a YAML preset file and layers it over the defaults.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}

	extra, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Defaults().Merge(extra), nil
}
