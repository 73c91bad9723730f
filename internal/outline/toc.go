// SPDX-License-Identifier: MIT
package outline

import "github.com/thatcatcamp/picodemo/internal/markup"

// Entry is one heading of a page as it will be anchored
type Entry struct {
	Title  string
	Level  int
	Anchor string
	Depth  int // nesting depth in the outline, 0 for top-level sections
}

// Anchors walks the page in render order and returns every heading with
// the anchor RenderPage will assign, plus any slug collisions found.
// Under AnchorReject the first collision is returned as an error.
func (c *Compiler) Anchors(sections []SectionDescriptor) ([]Entry, []Collision, error) {
	anchors := newAnchorSet(c.policy, c.sep)
	var entries []Entry

	var walk func(d SectionDescriptor, depth int) error
	walk = func(d SectionDescriptor, depth int) error {
		anchor, err := anchors.next(d.Title)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Title: d.Title, Level: d.Level, Anchor: anchor, Depth: depth})
		for _, child := range d.Children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, s := range sections {
		if err := walk(s, 0); err != nil {
			return nil, anchors.collisions, err
		}
	}
	return entries, anchors.collisions, nil
}

// TableOfContents builds an aside with a nested list linking every heading
// of the page. maxDepth limits how deep the list goes; 0 means no limit.
func (c *Compiler) TableOfContents(sections []SectionDescriptor, maxDepth int) (markup.Node, error) {
	anchors := newAnchorSet(c.policy, c.sep)

	var list func(ds []SectionDescriptor, depth int) ([]markup.Node, error)
	list = func(ds []SectionDescriptor, depth int) ([]markup.Node, error) {
		items := make([]markup.Node, 0, len(ds))
		for _, d := range ds {
			anchor, err := anchors.next(d.Title)
			if err != nil {
				return nil, err
			}

			// Children are always walked so anchors stay aligned with the page
			nested, err := list(d.Children, depth+1)
			if err != nil {
				return nil, err
			}

			item := []markup.Node{markup.Link("#"+anchor, nil, markup.Text(d.Title))}
			if len(nested) > 0 && (maxDepth == 0 || depth+1 < maxDepth) {
				item = append(item, markup.El("ul", nil, nested...))
			}
			items = append(items, markup.El("li", nil, item...))
		}
		return items, nil
	}

	items, err := list(sections, 0)
	if err != nil {
		return markup.Node{}, err
	}

	return markup.El("aside", nil,
		markup.El("nav", markup.A("aria-label", "Table of contents"),
			markup.El("ul", nil, items...),
		),
	), nil
}
