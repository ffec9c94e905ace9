// Package style holds per-category marker and shading appearance settings,
// loaded from an optional YAML file with restorable defaults.
package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/band-atlas/internal/domain"
)

// MarkerStyle describes how one band category's markers render.
type MarkerStyle struct {
	Color string `yaml:"color" json:"color"`
	Shape string `yaml:"shape" json:"shape"` // circle, square, diamond, cross
	Size  int    `yaml:"size" json:"size"`   // icon size in pixels
}

// ShadingStyle holds the grid-cell fill colors. Both-shaded cells take
// priority over ring-only, which takes priority over stripe-only.
type ShadingStyle struct {
	Both    string  `yaml:"both" json:"both"`
	Ring    string  `yaml:"ring" json:"ring"`
	Stripe  string  `yaml:"stripe" json:"stripe"`
	Opacity float64 `yaml:"opacity" json:"opacity"`
}

// Config is the complete appearance configuration.
type Config struct {
	Markers map[string]MarkerStyle `yaml:"markers" json:"markers"`
	Shading ShadingStyle           `yaml:"shading" json:"shading"`
}

// Default returns the built-in appearance, matching the shipped map client.
func Default() Config {
	return Config{
		Markers: map[string]MarkerStyle{
			string(domain.CategoryRing):   {Color: "#d62728", Shape: "circle", Size: 16},
			string(domain.CategoryStripe): {Color: "#1f77b4", Shape: "square", Size: 16},
			string(domain.CategoryBoth):   {Color: "#9467bd", Shape: "diamond", Size: 18},
			string(domain.CategoryNone):   {Color: "#7f7f7f", Shape: "cross", Size: 12},
		},
		Shading: ShadingStyle{
			Both:    "#c994c7",
			Ring:    "#fcae91",
			Stripe:  "#9ecae1",
			Opacity: 0.35,
		},
	}
}

// Load reads a YAML style file, filling omitted categories from Default.
// A missing file is not an error; it simply yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read style file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("parse style file %s: %w", path, err)
	}

	for name, ms := range loaded.Markers {
		base := cfg.Markers[name]
		if ms.Color != "" {
			base.Color = ms.Color
		}
		if ms.Shape != "" {
			base.Shape = ms.Shape
		}
		if ms.Size > 0 {
			base.Size = ms.Size
		}
		cfg.Markers[name] = base
	}
	if loaded.Shading.Both != "" {
		cfg.Shading.Both = loaded.Shading.Both
	}
	if loaded.Shading.Ring != "" {
		cfg.Shading.Ring = loaded.Shading.Ring
	}
	if loaded.Shading.Stripe != "" {
		cfg.Shading.Stripe = loaded.Shading.Stripe
	}
	if loaded.Shading.Opacity > 0 {
		cfg.Shading.Opacity = loaded.Shading.Opacity
	}
	return cfg, nil
}

// Fill returns the fill color for a shaded cell per the priority
// both > ring > stripe. Returns "" for an unshaded cell.
func (c Config) Fill(cell domain.ShadedCell) string {
	switch {
	case cell.Ring && cell.Stripe:
		return c.Shading.Both
	case cell.Ring:
		return c.Shading.Ring
	case cell.Stripe:
		return c.Shading.Stripe
	}
	return ""
}
