// SPDX-License-Identifier: MIT
package themes

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrPaletteTable is returned when the palette table cannot be read or is malformed
var ErrPaletteTable = errors.New("invalid palette table")

// Shade is one step of a color ramp
type Shade struct {
	Step int    `yaml:"step" validate:"min=0,max=1000"`
	Hex  string `yaml:"hex" validate:"required,hexcolor"`
}

// Palette defines a named color ramp, e.g. "pumpkin" with shades 50..950
type Palette struct {
	Name   string  `yaml:"name" validate:"required"`
	Shades []Shade `yaml:"shades" validate:"required,min=1,dive"`
}

// Table is the read-only color lookup data loaded for a single render
type Table struct {
	Palettes []Palette `yaml:"palettes" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadPalettes decodes and validates a palette table
func LoadPalettes(r io.Reader) (*Table, error) {
	var table Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaletteTable, err)
	}

	if err := validate.Struct(&table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaletteTable, err)
	}

	seen := make(map[string]bool)
	for i := range table.Palettes {
		p := &table.Palettes[i]
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate palette name: %s", ErrPaletteTable, p.Name)
		}
		seen[p.Name] = true
		sort.SliceStable(p.Shades, func(a, b int) bool { return p.Shades[a].Step < p.Shades[b].Step })
	}

	return &table, nil
}

// LoadPaletteFile reads the palette table at name from fsys
func LoadPaletteFile(fsys fs.FS, name string) (*Table, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette table: %w", err)
	}
	defer f.Close()

	return LoadPalettes(f)
}

// GetPalette returns a palette by name, or nil
func (t *Table) GetPalette(name string) *Palette {
	if t == nil {
		return nil
	}
	for i := range t.Palettes {
		if t.Palettes[i].Name == name {
			return &t.Palettes[i]
		}
	}
	return nil
}

// ListPalettes returns all palettes in table order
func (t *Table) ListPalettes() []*Palette {
	if t == nil {
		return nil
	}
	palettes := make([]*Palette, 0, len(t.Palettes))
	for i := range t.Palettes {
		palettes = append(palettes, &t.Palettes[i])
	}
	return palettes
}

// Shade returns the hex value of the closest shade at or above step.
// Palettes are sorted by LoadPalettes, so the last shade is the darkest.
func (p *Palette) Shade(step int) string {
	if p == nil || len(p.Shades) == 0 {
		return ""
	}
	for _, s := range p.Shades {
		if s.Step >= step {
			return s.Hex
		}
	}
	return p.Shades[len(p.Shades)-1].Hex
}
