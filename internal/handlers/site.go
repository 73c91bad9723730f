// SPDX-License-Identifier: MIT
package handlers

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/thatcatcamp/picodemo/internal/blocks"
	"github.com/thatcatcamp/picodemo/internal/layout"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/middleware"
	"github.com/thatcatcamp/picodemo/internal/outline"
	"github.com/thatcatcamp/picodemo/internal/themes"
)

// SiteOptions configures a Site
type SiteOptions struct {
	Content          fs.FS
	Static           fs.FS
	PaletteFile      string
	PaletteName      string
	StaticExtensions []string
	Compiler         *outline.Compiler
	Policy           *bluemonday.Policy
	Logger           *logging.Logger
	Chrome           layout.Chrome
}

// Site serves outline pages, the theme toggle, and static assets
type Site struct {
	content     fs.FS
	static      fs.FS
	paletteFile string
	compiler    *outline.Compiler
	policy      *bluemonday.Policy
	logger      *logging.Logger
	extensions  map[string]bool

	mu          sync.RWMutex
	chrome      layout.Chrome
	paletteName string
}

// NewSite creates a Site from opts
func NewSite(opts SiteOptions) *Site {
	s := &Site{
		content:     opts.Content,
		static:      opts.Static,
		paletteFile: opts.PaletteFile,
		compiler:    opts.Compiler,
		policy:      opts.Policy,
		logger:      opts.Logger,
		extensions:  make(map[string]bool, len(opts.StaticExtensions)),
		chrome:      opts.Chrome,
		paletteName: opts.PaletteName,
	}
	if s.compiler == nil {
		s.compiler = outline.New(outline.Options{Sanitizer: opts.Policy})
	}
	if s.policy == nil {
		s.policy = blocks.DefaultPolicy()
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.paletteFile == "" {
		s.paletteFile = "palettes.yaml"
	}
	for _, ext := range opts.StaticExtensions {
		s.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return s
}

// SetChrome replaces the page chrome and palette used by later requests
func (s *Site) SetChrome(chrome layout.Chrome, paletteName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chrome = chrome
	s.paletteName = paletteName
}

func (s *Site) snapshot() (layout.Chrome, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chrome, s.paletteName
}

// env loads the palette table for one request. A missing or broken table
// only fails pages that use palette blocks.
func (s *Site) env(c *gin.Context) *blocks.Env {
	env := &blocks.Env{Policy: s.policy}

	table, err := themes.LoadPaletteFile(s.content, s.paletteFile)
	if err != nil {
		logging.FromContext(c, s.logger).Debug("palette table unavailable", "file", s.paletteFile, "error", err.Error())
		return env
	}
	env.Palettes = table
	return env
}

// Mount registers the site's routes on r
func (s *Site) Mount(r *gin.Engine, toggleLimiter *middleware.RateLimiter) {
	r.GET("/health", HealthHandler)
	r.GET("/theme.css", s.ServeThemeCSS)

	toggle := []gin.HandlerFunc{s.ToggleTheme}
	if toggleLimiter != nil {
		toggle = append([]gin.HandlerFunc{middleware.RateLimitMiddleware(toggleLimiter, themes.ToggleEndpoint)}, toggle...)
	}
	r.POST(themes.ToggleEndpoint, toggle...)

	r.GET("/", s.ServePage)
	r.GET("/:page", s.ServePage)
	r.NoRoute(s.ServeStaticAsset)
}
