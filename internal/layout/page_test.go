// SPDX-License-Identifier: MIT
package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/picodemo/internal/markup"
	"github.com/thatcatcamp/picodemo/internal/themes"
)

func testChrome() Chrome {
	return Chrome{
		Title:       "FastHTML 🧡 Pico CSS",
		Footer:      "Made by kit",
		Stylesheets: []string{"/style/demo.css", "/theme.css"},
		Scripts:     []string{"https://unpkg.com/htmx.org@2.0.3"},
		Menu:        []MenuItem{{Label: "Basic", Href: "/basic"}},
	}
}

func TestWriteDocument(t *testing.T) {
	main := markup.El("main", markup.A("class", "container"), markup.Text("body"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testChrome(), "", main))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!doctype html>\n<html lang=\"en\" data-theme=\"light\">"))
	assert.Contains(t, html, `<meta charset="utf-8">`)
	assert.Contains(t, html, `<meta name="color-scheme" content="light dark">`)
	assert.Contains(t, html, `<link rel="stylesheet" href="/theme.css" type="text/css">`)
	assert.Contains(t, html, `<title>FastHTML 🧡 Pico CSS</title>`)
	assert.Contains(t, html, `<a href="/basic">Basic</a>`)
	assert.Contains(t, html, `<footer class="container"><p>Made by kit</p></footer>`)
	assert.Contains(t, html, `<script src="https://unpkg.com/htmx.org@2.0.3"></script></body></html>`)

	// header, main, footer, scripts
	assert.Less(t, strings.Index(html, "<header"), strings.Index(html, "<main"))
	assert.Less(t, strings.Index(html, "<main"), strings.Index(html, "<footer"))
	assert.Less(t, strings.Index(html, "<footer"), strings.Index(html, "<script"))
}

func TestToggleAdvertisesOpposite(t *testing.T) {
	chrome := testChrome()

	page := Page(chrome, "", markup.El("main", nil))
	buttons := markup.Find(page, func(n markup.Node) bool { return n.TagName() == "button" })
	require.Len(t, buttons, 1)
	name, _ := buttons[0].Attr("name")
	assert.Equal(t, "theme-toggle(dark)", name)

	slots := markup.Find(page, func(n markup.Node) bool {
		id, _ := n.Attr("id")
		return id == themes.SlotID
	})
	require.Len(t, slots, 1, "the control sits in the slot toggle replies replace")

	chrome.Theme = themes.Dark
	page = Page(chrome, "", markup.El("main", nil))
	theme, _ := page.Attr("data-theme")
	assert.Equal(t, "dark", theme)
	buttons = markup.Find(page, func(n markup.Node) bool { return n.TagName() == "button" })
	name, _ = buttons[0].Attr("name")
	assert.Equal(t, "theme-toggle(light)", name)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Site", pageTitle("Site", ""))
	assert.Equal(t, "Site", pageTitle("Site", "Site"))
	assert.Equal(t, "Basic - Site", pageTitle("Site", "Basic"))
	assert.Equal(t, "Basic", pageTitle("", "Basic"))
}

func TestErrorPageEscapes(t *testing.T) {
	html := ErrorPage("Not found", "no page <b>x</b>").String()
	assert.Contains(t, html, "no page &lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, html, `<a href="/" role="button">Home</a>`)
}
