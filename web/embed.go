// SPDX-License-Identifier: MIT

// Package web provides the embedded demo outlines, palettes, and static files.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:content
var contentFS embed.FS

//go:embed all:static
var staticFS embed.FS

// ContentFS returns the bundled outline pages and palette table, rooted so
// that pages open as "index.yaml" rather than "content/index.yaml".
func ContentFS() (fs.FS, error) {
	return fs.Sub(contentFS, "content")
}

// StaticFS returns the bundled static assets
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
