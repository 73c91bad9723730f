// SPDX-License-Identifier: MIT

// Package layout wraps compiled outlines in the site's page chrome.
package layout

import (
	"io"

	"github.com/thatcatcamp/picodemo/internal/markup"
	"github.com/thatcatcamp/picodemo/internal/themes"
)

// MenuItem is one link in the header menu
type MenuItem struct {
	Label string `mapstructure:"label"`
	Href  string `mapstructure:"href"`
}

// Chrome holds everything around the page's main element
type Chrome struct {
	Title       string
	Footer      string
	Stylesheets []string
	Scripts     []string
	Menu        []MenuItem
	Theme       themes.Theme
}

// Page builds the html element for main. The toggle control in the header
// advertises the theme opposite to the initial one.
func Page(chrome Chrome, title string, main markup.Node) markup.Node {
	theme := chrome.Theme
	if theme == "" {
		theme = themes.Light
	}

	return markup.El("html", markup.A("lang", "en", "data-theme", string(theme)),
		head(chrome, title),
		markup.El("body", nil, body(chrome, theme, main)...),
	)
}

// Write renders the full document for main to w
func Write(w io.Writer, chrome Chrome, title string, main markup.Node) error {
	return markup.Document(w, Page(chrome, title, main))
}

func head(chrome Chrome, title string) markup.Node {
	nodes := []markup.Node{
		markup.El("meta", markup.A("charset", "utf-8")),
		markup.El("meta", markup.A("name", "viewport", "content", "width=device-width, initial-scale=1")),
		markup.El("meta", markup.A("name", "color-scheme", "content", "light dark")),
	}
	for _, href := range chrome.Stylesheets {
		nodes = append(nodes, markup.El("link", markup.A("rel", "stylesheet", "href", href, "type", "text/css")))
	}
	nodes = append(nodes, markup.El("title", nil, markup.Text(pageTitle(chrome.Title, title))))
	return markup.El("head", nil, nodes...)
}

func pageTitle(site, page string) string {
	switch {
	case page == "" || page == site:
		return site
	case site == "":
		return page
	default:
		return page + " - " + site
	}
}

func body(chrome Chrome, theme themes.Theme, main markup.Node) []markup.Node {
	header := markup.El("header", markup.A("class", "container"),
		markup.Heading(1, nil, markup.Text(chrome.Title)),
		menu(chrome.Menu, theme),
	)

	nodes := []markup.Node{header, main}
	if chrome.Footer != "" {
		nodes = append(nodes, markup.El("footer", markup.A("class", "container"),
			markup.Paragraph(markup.Text(chrome.Footer))))
	}
	for _, src := range chrome.Scripts {
		nodes = append(nodes, markup.El("script", markup.A("src", src)))
	}
	return nodes
}

func menu(items []MenuItem, theme themes.Theme) markup.Node {
	cells := make([]markup.Node, 0, len(items)+1)
	for _, item := range items {
		cells = append(cells, markup.Paragraph(markup.Link(item.Href, nil, markup.Text(item.Label))))
	}
	cells = append(cells, markup.Paragraph(themes.Slot(themes.Control(theme.Opposite()))))
	return markup.El("div", markup.A("class", "grid"), cells...)
}

// ErrorPage is a minimal main element for error responses
func ErrorPage(heading, message string) markup.Node {
	return markup.El("main", markup.A("class", "container"),
		markup.El("article", nil,
			markup.El("header", nil, markup.Heading(2, nil, markup.Text(heading))),
			markup.Paragraph(markup.Text(message)),
			markup.El("footer", nil, markup.Link("/", markup.A("role", "button"), markup.Text("Home"))),
		),
	)
}
