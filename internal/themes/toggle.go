// SPDX-License-Identifier: MIT
package themes

import (
	"html/template"
	"strings"

	"github.com/thatcatcamp/picodemo/internal/markup"
)

// Theme is the active color scheme on the client
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ToggleEndpoint is where the toggle control posts to
const ToggleEndpoint = "/theme/toggle"

// SlotID identifies the element each toggle reply replaces
const SlotID = "theme-toggle-slot"

// toggleName prefixes the control's name attribute; the advertised theme
// follows in parentheses, e.g. "theme-toggle(dark)"
const toggleName = "theme-toggle"

// ParseTheme maps a theme name to a Theme, defaulting to Light
func ParseTheme(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), string(Dark)) {
		return Dark
	}
	return Light
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// HintFromTrigger extracts the theme hint from a trigger value such as
// "theme-toggle(dark)": the text between the last "(" and the ")" after it.
// Values without parentheses are returned trimmed.
func HintFromTrigger(value string) string {
	open := strings.LastIndex(value, "(")
	if open < 0 {
		return strings.TrimSpace(value)
	}
	rest := value[open+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// ToggleResult is the reply to a toggle request
type ToggleResult struct {
	NewTheme  Theme
	Fragment  markup.Node // replacement toggle control advertising NewTheme
	Directive markup.Node // script applying the hint to the root element
}

// Toggle computes the reply for a client whose control carried hint.
// Only "dark" flips to light; any other hint, including an empty or
// unrecognized one, resolves to dark. The control advertises the theme a
// click will apply, so the hint is the theme to apply now and NewTheme is
// what the replacement control advertises next.
func Toggle(hint string) ToggleResult {
	next := Dark
	if hint == string(Dark) {
		next = Light
	}

	return ToggleResult{
		NewTheme:  next,
		Fragment:  Control(next),
		Directive: Directive(hint),
	}
}

// Control renders the toggle button advertising theme
func Control(theme Theme) markup.Node {
	label := "🌙 Dark"
	if theme == Light {
		label = "☀️ Light"
	}

	return markup.El("button", markup.A(
		"id", "theme-toggle",
		"name", toggleName+"("+string(theme)+")",
		"class", "outline secondary",
		"hx-post", ToggleEndpoint,
		"hx-target", "#"+SlotID,
		"hx-swap", "outerHTML",
	), markup.Text(label))
}

// Slot wraps the toggle control and anything sent with it. A reply replaces
// the whole slot, so the previous reply's directive goes with it.
func Slot(children ...markup.Node) markup.Node {
	return markup.El("span", markup.A("id", SlotID), children...)
}

// Reply is the markup sent back for a toggle request
func (r ToggleResult) Reply() markup.Node {
	return Slot(r.Fragment, r.Directive)
}

// Directive renders the inline script that sets data-theme on the root element
func Directive(theme string) markup.Node {
	script := `document.documentElement.setAttribute("data-theme", "` +
		template.JSEscapeString(theme) + `");`
	return markup.El("script", nil, markup.Raw(script))
}
