// SPDX-License-Identifier: MIT
package handlers

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/picodemo/internal/layout"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/markup"
	"github.com/thatcatcamp/picodemo/internal/outline"
)

const htmlContentType = "text/html; charset=utf-8"

// ServePage renders the outline named by the path (index for "/")
func (s *Site) ServePage(c *gin.Context) {
	name := c.Param("page")
	if name == "" {
		name = "index"
	}

	// Single-segment asset paths such as /favicon.ico land here
	if path.Ext(name) != "" {
		s.ServeStaticAsset(c)
		return
	}

	log := logging.FromContext(c, s.logger).With("page", name)

	doc, err := outline.LoadDocument(s.content, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.renderNotFound(c)
			return
		}
		log.Error("failed to load page", err)
		s.renderError(c)
		return
	}

	main, err := s.compiler.CompileDocument(doc, s.env(c))
	if err != nil {
		log.Error("failed to compile page", err)
		s.renderError(c)
		return
	}

	chrome, _ := s.snapshot()
	s.writeDocument(c, http.StatusOK, chrome, doc.Title, main)
}

// writeDocument buffers the whole document so a failure never leaves a
// partial page on the wire
func (s *Site) writeDocument(c *gin.Context, status int, chrome layout.Chrome, title string, main markup.Node) {
	var buf bytes.Buffer
	if err := layout.Write(&buf, chrome, title, main); err != nil {
		logging.FromContext(c, s.logger).Error("failed to render document", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

func (s *Site) renderNotFound(c *gin.Context) {
	chrome, _ := s.snapshot()
	s.writeDocument(c, http.StatusNotFound, chrome, "Page Not Found",
		layout.ErrorPage("Page Not Found", "The page you're looking for doesn't exist."))
}

func (s *Site) renderError(c *gin.Context) {
	chrome, _ := s.snapshot()
	s.writeDocument(c, http.StatusInternalServerError, chrome, "Error",
		layout.ErrorPage("Something went wrong", "This page could not be rendered."))
}

// HealthHandler reports liveness
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "picodemo",
	})
}
