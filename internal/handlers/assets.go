// SPDX-License-Identifier: MIT
package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServeStaticAsset serves files with an allowed extension from the static
// tree. Everything else, including missing assets, gets the 404 page.
func (s *Site) ServeStaticAsset(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		s.renderNotFound(c)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if s.static == nil || ext == "" || !s.extensions[ext] {
		s.renderNotFound(c)
		return
	}

	info, err := fs.Stat(s.static, name)
	if err != nil || info.IsDir() {
		s.renderNotFound(c)
		return
	}

	c.FileFromFS(name, http.FS(s.static))
}
