// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var v *viper.Viper

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	// Set defaults
	setDefaults()

	// Set config file path
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Environment overrides, e.g. PICODEMO_SERVER_HTTP_PORT
	v.SetEnvPrefix("picodemo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Try to read existing config
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, create it with defaults
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	v.SetDefault("server.http_port", "5001")
	v.SetDefault("server.https_port", "443")
	v.SetDefault("server.base_domain", "localhost")
	v.SetDefault("server.tls_enabled", false)
	v.SetDefault("server.trusted_proxies", []string{}) // forwarding headers are ignored unless the peer is listed
	v.SetDefault("server.shutdown_timeout", "10s")

	// Site chrome
	v.SetDefault("site.title", "FastHTML 🧡 Pico CSS")
	v.SetDefault("site.footer", "Made by kit using FastHTML & Pico CSS + PrismJS, June 2024.")
	v.SetDefault("site.stylesheets", []string{
		"https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.pumpkin.min.css",
		"https://cdn.jsdelivr.net/npm/prismjs@1.29.0/themes/prism-okaidia.min.css",
		"/style/demo.css",
		"/theme.css",
	})
	v.SetDefault("site.scripts", []string{
		"https://unpkg.com/htmx.org@2.0.3",
		"https://cdn.jsdelivr.net/npm/prismjs@1.29.0/prism.min.js",
	})
	v.SetDefault("site.menu", []map[string]string{
		{"label": "Home", "href": "/"},
		{"label": "Basic", "href": "/basic"},
	})

	// Content defaults. Empty dirs select the embedded defaults.
	v.SetDefault("content.dir", "")
	v.SetDefault("content.static_dir", "")
	v.SetDefault("content.palette_file", "palettes.yaml")
	v.SetDefault("content.static_extensions", []string{
		"css", "js", "map", "ico", "png", "jpg", "jpeg", "gif", "svg", "webp",
		"woff", "woff2", "ttf", "otf", "txt", "xml",
	})

	// Outline compiler
	v.SetDefault("outline.anchor_policy", "suffix")
	v.SetDefault("outline.anchor_separator", "-")

	// Theme defaults
	v.SetDefault("theme.default", "light")
	v.SetDefault("theme.palette", "pumpkin")
	v.SetDefault("theme.toggle_rate_limit", 60) // requests per window per client
	v.SetDefault("theme.toggle_rate_window", "1m")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", true)

	// TLS defaults
	v.SetDefault("tls.email", "")
	v.SetDefault("tls.cert_dir", "/var/lib/picodemo/certs")
	v.SetDefault("tls.staging", false)
	v.SetDefault("tls.domains", []string{})
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetStringSlice returns a config value as a string slice
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// UnmarshalKey decodes a nested config value into out
func UnmarshalKey(key string, out interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}
	return v.UnmarshalKey(key, out)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}

// Watch calls onChange whenever the config file is rewritten.
// Values read through the getters pick up the change immediately.
func Watch(onChange func(path string)) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(e.Name)
	})
	v.WatchConfig()

	return nil
}
