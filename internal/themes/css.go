// SPDX-License-Identifier: MIT
package themes

import "fmt"

// selector scopes a theme's variables. Light also applies when no theme is set.
func selector(theme Theme) string {
	if theme == Dark {
		return `[data-theme="dark"]`
	}
	return `:root:not([data-theme="dark"]), [data-theme="light"]`
}

// GenerateCSS generates CSS with color variables from colors struct
func GenerateCSS(colors *Colors, theme Theme) string {
	return fmt.Sprintf(`%s {
  --demo-primary: %s;
  --demo-primary-hover: %s;
  --demo-primary-contrast: %s;
  --demo-bg: %s;
  --demo-surface: %s;
  --demo-text: %s;
  --demo-text-muted: %s;
  --demo-border: %s;
  --demo-code-bg: %s;
}
`, selector(theme), colors.Primary, colors.PrimaryHover, colors.PrimaryContrast,
		colors.Background, colors.Surface, colors.Text, colors.TextMuted,
		colors.Border, colors.CodeBackground)
}

// GenerateStylesheet emits the variables for both themes plus the swatch styles
// used by palette blocks
func GenerateStylesheet(palette *Palette) string {
	return GenerateCSS(GenerateColors(palette, Light), Light) + "\n" +
		GenerateCSS(GenerateColors(palette, Dark), Dark) + `
/* Palette swatches */
.swatches {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(6rem, 1fr));
  gap: 0.5rem;
}

.swatch {
  border: 1px solid var(--demo-border);
  border-radius: 0.25rem;
  padding: 2.5rem 0.5rem 0.5rem;
  font-size: 0.75rem;
}

pre.prismjs {
  background: var(--demo-code-bg);
}

#theme-toggle {
  width: auto;
}
`
}
