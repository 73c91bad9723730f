// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/thatcatcamp/picodemo/internal/blocks"
	"github.com/thatcatcamp/picodemo/internal/config"
	"github.com/thatcatcamp/picodemo/internal/handlers"
	"github.com/thatcatcamp/picodemo/internal/layout"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/outline"
	"github.com/thatcatcamp/picodemo/internal/themes"
	"github.com/thatcatcamp/picodemo/web"
)

// newLogger builds the process logger from log.* settings
func newLogger() (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:         config.GetString("log.level"),
		HumanReadable: config.GetBool("log.human"),
		Writer:        os.Stderr,
	})
}

// dirOrEmbedded opens dir from disk, or the bundled tree when dir is empty
func dirOrEmbedded(dir string, embedded func() (fs.FS, error)) (fs.FS, error) {
	if dir == "" {
		return embedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// compilerFromConfig builds the outline compiler from outline.* settings
func compilerFromConfig(policyOverride string) (*outline.Compiler, error) {
	name := config.GetString("outline.anchor_policy")
	if policyOverride != "" {
		name = policyOverride
	}
	policy, err := outline.ParseAnchorPolicy(name)
	if err != nil {
		return nil, err
	}

	return outline.New(outline.Options{
		Separator: config.GetString("outline.anchor_separator"),
		Policy:    policy,
		Sanitizer: blocks.DefaultPolicy(),
	}), nil
}

// chromeFromConfig reads the site.* and theme.default settings
func chromeFromConfig() (layout.Chrome, error) {
	var menu []layout.MenuItem
	if err := config.UnmarshalKey("site.menu", &menu); err != nil {
		return layout.Chrome{}, fmt.Errorf("invalid site.menu: %w", err)
	}

	return layout.Chrome{
		Title:       config.GetString("site.title"),
		Footer:      config.GetString("site.footer"),
		Stylesheets: config.GetStringSlice("site.stylesheets"),
		Scripts:     config.GetStringSlice("site.scripts"),
		Menu:        menu,
		Theme:       themes.ParseTheme(config.GetString("theme.default")),
	}, nil
}

// newSite assembles the HTTP site from the current configuration
func newSite(logger *logging.Logger) (*handlers.Site, error) {
	content, err := dirOrEmbedded(config.GetString("content.dir"), web.ContentFS)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	static, err := dirOrEmbedded(config.GetString("content.static_dir"), web.StaticFS)
	if err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}

	compiler, err := compilerFromConfig("")
	if err != nil {
		return nil, err
	}
	chrome, err := chromeFromConfig()
	if err != nil {
		return nil, err
	}

	return handlers.NewSite(handlers.SiteOptions{
		Content:          content,
		Static:           static,
		PaletteFile:      config.GetString("content.palette_file"),
		PaletteName:      config.GetString("theme.palette"),
		StaticExtensions: config.GetStringSlice("content.static_extensions"),
		Compiler:         compiler,
		Policy:           blocks.DefaultPolicy(),
		Logger:           logger,
		Chrome:           chrome,
	}), nil
}
