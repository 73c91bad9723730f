// SPDX-License-Identifier: MIT
package themes

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestPaletteExists(t *testing.T) {
	table := loadTestTable(t)
	if table.GetPalette("pumpkin") == nil {
		t.Fatal("pumpkin palette not found")
	}
	if table.GetPalette("missing") != nil {
		t.Error("expected nil for unknown palette")
	}
}

func TestListPalettesKeepsOrder(t *testing.T) {
	palettes := loadTestTable(t).ListPalettes()
	if len(palettes) != 3 {
		t.Fatalf("expected 3 palettes, got %d", len(palettes))
	}
	if palettes[0].Name != "pumpkin" || palettes[2].Name != "slate" {
		t.Errorf("unexpected order: %s, %s", palettes[0].Name, palettes[2].Name)
	}
}

func TestShadesAreSorted(t *testing.T) {
	azure := loadTestTable(t).GetPalette("azure")
	for i := 1; i < len(azure.Shades); i++ {
		if azure.Shades[i-1].Step > azure.Shades[i].Step {
			t.Fatalf("shades not sorted: %+v", azure.Shades)
		}
	}
}

func TestShadeLookup(t *testing.T) {
	pumpkin := loadTestTable(t).GetPalette("pumpkin")

	if got := pumpkin.Shade(550); got != "#d24317" {
		t.Errorf("Shade(550) = %s", got)
	}
	// Falls forward to the next available step
	if got := pumpkin.Shade(500); got != "#d24317" {
		t.Errorf("Shade(500) = %s", got)
	}
	// Past the end returns the darkest shade
	if got := pumpkin.Shade(1000); got != "#200b02" {
		t.Errorf("Shade(1000) = %s", got)
	}
}

func TestLoadPalettesRejectsBadHex(t *testing.T) {
	_, err := LoadPalettes(strings.NewReader(`
palettes:
  - name: broken
    shades:
      - {step: 50, hex: "orange"}
`))
	if !errors.Is(err, ErrPaletteTable) {
		t.Fatalf("expected ErrPaletteTable, got %v", err)
	}
}

func TestLoadPalettesRejectsDuplicates(t *testing.T) {
	_, err := LoadPalettes(strings.NewReader(`
palettes:
  - name: red
    shades: [{step: 50, hex: "#fff"}]
  - name: red
    shades: [{step: 50, hex: "#000"}]
`))
	if !errors.Is(err, ErrPaletteTable) {
		t.Fatalf("expected ErrPaletteTable, got %v", err)
	}
}

func TestLoadPalettesRejectsUnknownFields(t *testing.T) {
	_, err := LoadPalettes(strings.NewReader("colours: []\n"))
	if !errors.Is(err, ErrPaletteTable) {
		t.Fatalf("expected ErrPaletteTable, got %v", err)
	}
}

func TestLoadPaletteFileMissing(t *testing.T) {
	_, err := LoadPaletteFile(fstest.MapFS{}, "palettes.yaml")
	if err == nil {
		t.Fatal("expected error for missing palette file")
	}
}

func TestLoadPaletteFile(t *testing.T) {
	fsys := fstest.MapFS{"palettes.yaml": {Data: []byte(testPaletteYAML)}}
	table, err := LoadPaletteFile(fsys, "palettes.yaml")
	if err != nil {
		t.Fatalf("LoadPaletteFile failed: %v", err)
	}
	if len(table.Palettes) != 3 {
		t.Errorf("expected 3 palettes, got %d", len(table.Palettes))
	}
}
