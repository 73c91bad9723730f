// SPDX-License-Identifier: MIT
package themes

import (
	"strings"
	"testing"
)

const testPaletteYAML = `
palettes:
  - name: pumpkin
    shades:
      - {step: 50, hex: "#fcf2e7"}
      - {step: 300, hex: "#f9a25a"}
      - {step: 400, hex: "#ff9500"}
      - {step: 550, hex: "#d24317"}
      - {step: 650, hex: "#a8370f"}
      - {step: 950, hex: "#200b02"}
  - name: azure
    shades:
      - {step: 650, hex: "#0f4ea9"}
      - {step: 300, hex: "#8fb3f4"}
      - {step: 550, hex: "#0172ad"}
  - name: slate
    shades:
      - {step: 400, hex: "#6f7888"}
      - {step: 550, hex: "#525f7a"}
`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := LoadPalettes(strings.NewReader(testPaletteYAML))
	if err != nil {
		t.Fatalf("LoadPalettes failed: %v", err)
	}
	return table
}
