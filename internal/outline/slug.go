// SPDX-License-Identifier: MIT
package outline

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultSeparator replaces whitespace runs in anchors
const DefaultSeparator = "-"

// Slugify lowercases title and replaces each run of whitespace with sep.
// Leading and trailing whitespace is dropped. Punctuation is left alone, so
// a title with characters unsafe in URL fragments yields an unsafe anchor.
func Slugify(title, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(strings.FieldsFunc(strings.ToLower(title), unicode.IsSpace), sep)
}

// AnchorPolicy decides what happens when two headings on a page share a slug
type AnchorPolicy string

const (
	// AnchorIgnore keeps duplicate ids; the browser resolves to the first one
	AnchorIgnore AnchorPolicy = "ignore"
	// AnchorSuffix appends -2, -3, ... to later duplicates
	AnchorSuffix AnchorPolicy = "suffix"
	// AnchorReject fails the render
	AnchorReject AnchorPolicy = "reject"
)

// ParseAnchorPolicy validates a policy name; empty selects AnchorSuffix
func ParseAnchorPolicy(name string) (AnchorPolicy, error) {
	switch p := AnchorPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return AnchorSuffix, nil
	case AnchorIgnore, AnchorSuffix, AnchorReject:
		return p, nil
	default:
		return "", &ConfigError{Reason: "unknown anchor policy " + strconv.Quote(name)}
	}
}

// Collision records a slug produced by more than one heading
type Collision struct {
	Slug   string
	Title  string // title of the later heading
	Anchor string // anchor actually assigned to it
}

// anchorSet hands out anchors for one render, in document order
type anchorSet struct {
	policy     AnchorPolicy
	sep        string
	seen       map[string]int
	used       map[string]bool
	collisions []Collision
}

func newAnchorSet(policy AnchorPolicy, sep string) *anchorSet {
	return &anchorSet{
		policy: policy,
		sep:    sep,
		seen:   make(map[string]int),
		used:   make(map[string]bool),
	}
}

// next returns the anchor for the next heading titled title
func (a *anchorSet) next(title string) (string, error) {
	slug := Slugify(title, a.sep)
	a.seen[slug]++
	if a.seen[slug] == 1 && !a.used[slug] {
		a.used[slug] = true
		return slug, nil
	}

	anchor := slug
	switch a.policy {
	case AnchorReject:
		return "", &CollisionError{Slug: slug, Title: title}
	case AnchorSuffix:
		for n := max(a.seen[slug], 2); ; n++ {
			candidate := slug + a.sep + strconv.Itoa(n)
			if !a.used[candidate] {
				anchor = candidate
				break
			}
		}
	}

	a.used[anchor] = true
	a.collisions = append(a.collisions, Collision{Slug: slug, Title: title, Anchor: anchor})
	return anchor, nil
}
