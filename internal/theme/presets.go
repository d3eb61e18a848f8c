package theme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned when a requested palette preset does not exist.
var ErrUnknownPreset = errors.New("unknown palette preset")

// Preset is a named five-swatch palette offered as a one-click theme.
type Preset struct {
	ID     string              `json:"id" yaml:"id"`
	Name   string              `json:"name" yaml:"name"`
	Colors [PaletteSize]string `json:"colors" yaml:"-"`
}

// Theme returns the roles derived from the preset swatches.
func (p Preset) Theme() Roles {
	return FromPalette(p.Colors)
}

// defaultPresets ships with the binary and is used when no palette file is
// configured.
var defaultPresets = []Preset{
	{ID: "agrumes", Name: "Agrumes", Colors: [PaletteSize]string{"#FFF7ED", "#FDBA74", "#F97316", "#9A3412", "#1F2937"}},
	{ID: "menthe", Name: "Menthe", Colors: [PaletteSize]string{"#ECFDF5", "#6EE7B7", "#10B981", "#065F46", "#0F172A"}},
	{ID: "vrilles", Name: "Vrilles", Colors: [PaletteSize]string{"#FEFCE8", "#A3E635", "#65A30D", "#365314", "#111827"}},
	{ID: "encre", Name: "Encre", Colors: [PaletteSize]string{"#F8FAFC", "#CBD5E1", "#3B82F6", "#1E3A8A", "#020617"}},
	{ID: "lavande", Name: "Lavande", Colors: [PaletteSize]string{"#FAF5FF", "#D8B4FE", "#A855F7", "#6B21A8", "#1E1B4B"}},
}

// DefaultPresets returns a copy of the built-in presets.
func DefaultPresets() []Preset {
	return append([]Preset(nil), defaultPresets...)
}

// presetFile is the on-disk shape of a palette file. JSON is valid YAML, so
// a single decoder serves both.
type presetFile struct {
	Presets []struct {
		ID     string   `yaml:"id"`
		Name   string   `yaml:"name"`
		Colors []string `yaml:"colors"`
	} `yaml:"presets"`
}

// LoadPresets reads palette presets from a YAML or JSON file.
func LoadPresets(path string) ([]Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}
	return ParsePresets(raw)
}

// ParsePresets decodes palette presets from YAML or JSON bytes.
func ParsePresets(raw []byte) ([]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse palette file: %w", err)
	}

	presets := make([]Preset, 0, len(file.Presets))
	for i, p := range file.Presets {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("palette preset #%d has no id", i+1)
		}
		if len(p.Colors) != PaletteSize {
			return nil, fmt.Errorf("palette preset %q has %d colors, want %d", id, len(p.Colors), PaletteSize)
		}
		preset := Preset{ID: id, Name: p.Name}
		if preset.Name == "" {
			preset.Name = id
		}
		copy(preset.Colors[:], p.Colors)
		presets = append(presets, preset)
	}
	return presets, nil
}

// manifestRegistry is the part of the go-theme registry used here.
type manifestRegistry interface {
	Register(*gotheme.Manifest) error
}

// Catalog holds the palette presets available to documents. Each preset is
// also registered as a go-theme manifest whose tokens are the swatches and
// the derived roles.
type Catalog struct {
	presets  map[string]Preset
	order    []string
	registry manifestRegistry
}

// NewCatalog validates and registers the presets. Duplicate ids are rejected.
func NewCatalog(presets []Preset) (*Catalog, error) {
	c := &Catalog{
		presets:  make(map[string]Preset, len(presets)),
		registry: gotheme.NewRegistry(),
	}
	for _, p := range presets {
		if _, exists := c.presets[p.ID]; exists {
			return nil, fmt.Errorf("duplicate palette preset %q", p.ID)
		}
		if err := c.registry.Register(manifestFor(p)); err != nil {
			return nil, fmt.Errorf("register palette preset %q: %w", p.ID, err)
		}
		c.presets[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// List returns the presets in registration order.
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}

// Get returns the preset with the given id.
func (c *Catalog) Get(id string) (Preset, error) {
	p, ok := c.presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, id)
	}
	return p, nil
}

func manifestFor(p Preset) *gotheme.Manifest {
	tokens := make(map[string]string, PaletteSize+4)
	for i, c := range p.Colors {
		tokens[fmt.Sprintf("swatch-%d", i+1)] = c
	}
	for role, c := range p.Theme().Map() {
		tokens[role] = c
	}
	return &gotheme.Manifest{
		Name:    p.ID,
		Version: "1.0.0",
		Tokens:  tokens,
	}
}

// RendererConfig exposes a merged theme as go-theme renderer configuration:
// the roles as tokens and as "--role" CSS custom properties.
func RendererConfig(templateID string, merged map[string]string) *gotheme.RendererConfig {
	tokens := make(map[string]string, len(merged))
	vars := make(map[string]string, len(merged))
	for k, v := range merged {
		tokens[k] = v
		vars["--"+k] = v
	}
	return &gotheme.RendererConfig{
		Theme:   templateID,
		Variant: "document",
		Tokens:  tokens,
		CSSVars: vars,
	}
}
