// SPDX-License-Identifier: MIT
package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/themes"
)

// Request headers htmx sends with the triggering element's name and id
const (
	headerTriggerName = "HX-Trigger-Name"
	headerTrigger     = "HX-Trigger"
)

// toggleHint finds the theme hint: the trigger's name first, then its id,
// then a plain "theme" form field
func toggleHint(c *gin.Context) string {
	for _, h := range []string{headerTriggerName, headerTrigger} {
		if v := c.GetHeader(h); v != "" {
			return themes.HintFromTrigger(v)
		}
	}
	return themes.HintFromTrigger(c.PostForm("theme"))
}

// ToggleTheme swaps the toggle control and applies the requested theme
func (s *Site) ToggleTheme(c *gin.Context) {
	hint := toggleHint(c)
	result := themes.Toggle(hint)

	logging.FromContext(c, s.logger).Debug("theme toggled", "hint", hint, "new_theme", string(result.NewTheme))

	var buf bytes.Buffer
	if err := result.Reply().Render(&buf); err != nil {
		logging.FromContext(c, s.logger).Error("failed to render toggle", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// ServeThemeCSS serves the configured palette's variables for both themes
func (s *Site) ServeThemeCSS(c *gin.Context) {
	log := logging.FromContext(c, s.logger)
	_, name := s.snapshot()

	table, err := themes.LoadPaletteFile(s.content, s.paletteFile)
	if err != nil {
		log.Error("failed to load palette table", err, "file", s.paletteFile)
		c.String(http.StatusInternalServerError, "/* palette table unavailable */")
		return
	}

	palette := table.GetPalette(name)
	if palette == nil {
		log.Warn("unknown palette", "palette", name)
		c.String(http.StatusNotFound, "/* unknown palette */")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(themes.GenerateStylesheet(palette)))
}
