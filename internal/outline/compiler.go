// SPDX-License-Identifier: MIT

// Package outline compiles declarative section outlines into markup trees
// with anchored headings.
//
// Rendering is a pure transform: descriptors are never modified and every
// public call starts from a fresh anchor registry, so rendering the same
// outline twice yields identical trees.
package outline

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/thatcatcamp/picodemo/internal/blocks"
	"github.com/thatcatcamp/picodemo/internal/markup"
)

// SectionDescriptor is one node of a page outline
type SectionDescriptor struct {
	Title       string
	Level       int
	Description string        // rich text rendered after the heading, sanitized
	Content     []markup.Node // opaque blocks, rendered before children
	Children    []SectionDescriptor
}

// Options configures a Compiler
type Options struct {
	Separator string
	Policy    AnchorPolicy
	Sanitizer *bluemonday.Policy
}

// Compiler renders outlines. The zero value is not usable; call New.
type Compiler struct {
	sep       string
	policy    AnchorPolicy
	sanitizer *bluemonday.Policy
}

// New creates a Compiler, filling unset options with defaults
func New(opts Options) *Compiler {
	c := &Compiler{
		sep:       opts.Separator,
		policy:    opts.Policy,
		sanitizer: opts.Sanitizer,
	}
	if c.sep == "" {
		c.sep = DefaultSeparator
	}
	if c.policy == "" {
		c.policy = AnchorSuffix
	}
	if c.sanitizer == nil {
		c.sanitizer = blocks.DefaultPolicy()
	}
	return c
}

// RenderHeading builds the heading for title at level plus, when description
// is non-empty, the paragraph that follows it. The anchor is the plain slug of
// title; uniqueness is not checked.
func (c *Compiler) RenderHeading(level int, title, description string) ([]markup.Node, error) {
	return c.heading(level, title, description, Slugify(title, c.sep))
}

func (c *Compiler) heading(level int, title, description, anchor string) ([]markup.Node, error) {
	if level < 1 || level > 6 {
		return nil, &LevelError{Level: level, Title: title}
	}

	nodes := []markup.Node{
		markup.Heading(level, nil,
			markup.Text(title+" "),
			markup.Link("#"+anchor, markup.A(
				"id", anchor,
				"class", "secondary",
				"tabindex", "-1",
			), markup.Text("🔗")),
		),
	}
	if description != "" {
		nodes = append(nodes, markup.Paragraph(markup.Raw(c.sanitizer.Sanitize(description))))
	}
	return nodes, nil
}

// RenderSection renders descriptor and its subtree inside a section element
func (c *Compiler) RenderSection(descriptor SectionDescriptor) (markup.Node, error) {
	return c.section(descriptor, newAnchorSet(c.policy, c.sep))
}

func (c *Compiler) section(d SectionDescriptor, anchors *anchorSet) (markup.Node, error) {
	anchor, err := anchors.next(d.Title)
	if err != nil {
		return markup.Node{}, err
	}

	children, err := c.heading(d.Level, d.Title, d.Description, anchor)
	if err != nil {
		return markup.Node{}, err
	}
	children = append(children, d.Content...)

	for _, child := range d.Children {
		rendered, err := c.section(child, anchors)
		if err != nil {
			return markup.Node{}, err
		}
		children = append(children, rendered)
	}

	return markup.El("section", nil, children...), nil
}

// RenderPage renders the top-level sections inside the document container,
// preceded by aside when one is given. Anchors are unique across the page
// according to the compiler's policy.
func (c *Compiler) RenderPage(sections []SectionDescriptor, aside *markup.Node) (markup.Node, error) {
	anchors := newAnchorSet(c.policy, c.sep)

	rendered := make([]markup.Node, 0, len(sections))
	for _, s := range sections {
		node, err := c.section(s, anchors)
		if err != nil {
			return markup.Node{}, err
		}
		rendered = append(rendered, node)
	}

	var children []markup.Node
	if aside != nil {
		children = append(children, *aside)
	}
	children = append(children, markup.El("div", markup.A("id", "content", "role", "document"), rendered...))

	return markup.El("main", markup.A("class", "container"), children...), nil
}
