// SPDX-License-Identifier: MIT
package themes

// Colors represents all generated colors for a theme
type Colors struct {
	Primary         string // Main brand color
	PrimaryHover    string // Hover/active state of primary
	PrimaryContrast string // Text on primary backgrounds
	Background      string // Page background
	Surface         string // Card/container background
	Text            string // Main text color
	TextMuted       string // Secondary/muted text
	Border          string // Border/divider color
	CodeBackground  string // Code sample background
}

// GenerateColors generates full color set from palette for the given theme
func GenerateColors(palette *Palette, theme Theme) *Colors {
	if theme == Dark {
		return generateDarkColors(palette)
	}
	return generateLightColors(palette)
}

// generateLightColors creates colors for light mode
func generateLightColors(palette *Palette) *Colors {
	return &Colors{
		Primary:         palette.Shade(550),
		PrimaryHover:    palette.Shade(650),
		PrimaryContrast: "#ffffff",
		Background:      "#ffffff",
		Surface:         "#fbfcfc",
		Text:            "#373c44",
		TextMuted:       "#646b79",
		Border:          "#e7eaf0",
		CodeBackground:  "#f3f5f7",
	}
}

// generateDarkColors creates colors for dark mode
func generateDarkColors(palette *Palette) *Colors {
	return &Colors{
		Primary:         palette.Shade(400),
		PrimaryHover:    palette.Shade(300),
		PrimaryContrast: "#000000",
		Background:      "#13171f",
		Surface:         "#181c25",
		Text:            "#c2c7d0",
		TextMuted:       "#7b8495",
		Border:          "#2a3140",
		CodeBackground:  "#1a1f28",
	}
}
